package api

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ProcessAudioResponse is returned to the device for every handled recording
type ProcessAudioResponse struct {
	Success    bool   `json:"success"`
	Transcript string `json:"transcript"`
	Response   string `json:"response"`
}

// ProcessAudioErrorResponse is returned when the pipeline itself fails
type ProcessAudioErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// StatusResponse describes the static configuration of the relay
type StatusResponse struct {
	Ready  bool         `json:"ready"`
	Status string       `json:"status"`
	Mode   string       `json:"mode"`
	Models StatusModels `json:"models"`
}

type StatusModels struct {
	STT string `json:"stt"`
	LLM string `json:"llm"`
	TTS string `json:"tts"`
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
