package entities

import "testing"

func TestParseRecognition(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Recognition
	}{
		{"record with text", `{"text": "  hello world  "}`, StructuredText{Text: "  hello world  "}},
		{"record with extra fields", `{"text":"hi","chunks":[]}`, StructuredText{Text: "hi"}},
		{"bare string", `"hi"`, PlainText{Text: "hi"}},
		{"record without text", `{"transcript":"hello"}`, Opaque{Raw: `{"transcript":"hello"}`}},
		{"record with non-string text", `{"text":42}`, Opaque{Raw: `{"text":42}`}},
		{"list", `[{"text":"hello"}]`, Opaque{Raw: `[{"text":"hello"}]`}},
		{"null", `null`, Opaque{}},
		{"empty body", ``, Opaque{}},
		{"not json", `hello there`, Opaque{Raw: "hello there"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRecognition([]byte(tt.body))
			if got != tt.want {
				t.Errorf("ParseRecognition(%q) = %#v, want %#v", tt.body, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Recognition
		want string
	}{
		{"structured text is trimmed", StructuredText{Text: "  hello world  "}, "hello world"},
		{"plain text is trimmed", PlainText{Text: "hi"}, "hi"},
		{"opaque uses raw form", Opaque{Raw: " [1,2] "}, "[1,2]"},
		{"empty opaque", Opaque{}, ""},
		{"nil result", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranscriptResult_IsFallback(t *testing.T) {
	if (TranscriptResult{Text: "hello", Outcome: TranscriptRecognized}).IsFallback() {
		t.Error("recognized transcript should not be a fallback")
	}
	if !(TranscriptResult{Text: FailedTranscript, Outcome: TranscriptFailed}).IsFallback() {
		t.Error("failed transcript should be a fallback")
	}
	if !(TranscriptResult{Text: UnintelligibleTranscript, Outcome: TranscriptUnintelligible}).IsFallback() {
		t.Error("unintelligible transcript should be a fallback")
	}
}
