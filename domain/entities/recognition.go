package entities

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Recognition is the raw result of a speech recognition call.
// Providers answer with different shapes, so a result is exactly one of
// StructuredText, PlainText or Opaque.
type Recognition interface {
	isRecognition()
}

// StructuredText is a record carrying a text field, e.g. {"text": "..."}
type StructuredText struct {
	Text string
}

// PlainText is a bare string result
type PlainText struct {
	Text string
}

// Opaque is any other result, kept in its serialized form
type Opaque struct {
	Raw string
}

func (StructuredText) isRecognition() {}
func (PlainText) isRecognition()      {}
func (Opaque) isRecognition()         {}

// ParseRecognition classifies a JSON response body from a recognition API
func ParseRecognition(body []byte) Recognition {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Opaque{}
	}

	var record map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &record); err == nil {
		if raw, ok := record["text"]; ok {
			var text string
			if err := json.Unmarshal(raw, &text); err == nil {
				return StructuredText{Text: text}
			}
		}
		return Opaque{Raw: string(trimmed)}
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		return PlainText{Text: text}
	}

	return Opaque{Raw: string(trimmed)}
}

// Normalize reduces a recognition result to trimmed plain text
func Normalize(r Recognition) string {
	switch v := r.(type) {
	case StructuredText:
		return strings.TrimSpace(v.Text)
	case PlainText:
		return strings.TrimSpace(v.Text)
	case Opaque:
		return strings.TrimSpace(v.Raw)
	default:
		return ""
	}
}
