package entities

import "time"

// Fixed user-facing texts substituted when a remote service cannot answer
const (
	UnintelligibleTranscript = "Sorry, I couldn't understand that."
	FailedTranscript         = "Sorry, transcription failed."

	ListeningReply = "I'm listening. Please speak clearly."
	GreetingReply  = "Hello! How can I help you?"
	ThanksReply    = "You're welcome!"
	DefaultReply   = "I heard you!"
)

// TranscriptOutcome tells how a transcript was produced
type TranscriptOutcome string

const (
	TranscriptRecognized     TranscriptOutcome = "recognized"
	TranscriptUnintelligible TranscriptOutcome = "unintelligible"
	TranscriptFailed         TranscriptOutcome = "failed"
)

// TranscriptResult is the text handed from transcription to generation
type TranscriptResult struct {
	Text    string            `json:"text"`
	Outcome TranscriptOutcome `json:"outcome"`
}

// IsFallback reports whether the text is one of the fixed transcription fallbacks
func (r TranscriptResult) IsFallback() bool {
	return r.Outcome != TranscriptRecognized
}

// ReplyOutcome tells how a reply was produced
type ReplyOutcome string

const (
	ReplyGenerated    ReplyOutcome = "generated"
	ReplyShortCircuit ReplyOutcome = "short_circuit"
	ReplyFallback     ReplyOutcome = "fallback"
)

// ReplyResult is the assistant reply returned to the device
type ReplyResult struct {
	Text    string       `json:"text"`
	Outcome ReplyOutcome `json:"outcome"`
}

// Exchange summarizes one processed audio request
type Exchange struct {
	RequestID   string           `json:"request_id"`
	AudioBytes  int              `json:"audio_bytes"`
	Transcript  TranscriptResult `json:"transcript"`
	Reply       ReplyResult      `json:"reply"`
	DurationMs  int64            `json:"duration_ms"`
	CompletedAt time.Time        `json:"completed_at"`
}
