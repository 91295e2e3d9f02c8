package llm

// Generation settings shared by every provider
const (
	// SystemPrompt keeps replies short enough for the device's small display
	SystemPrompt = "You are a helpful AI voice assistant for an ESP32 device with limited display. " +
		"Keep responses SHORT (1-2 sentences max, under 100 characters when possible). " +
		"Be conversational and friendly. Do NOT generate code, long explanations, or lists. " +
		"Just provide brief, natural conversational responses."

	DefaultMaxTokens   = 100
	DefaultTemperature = float32(0.7)
)
