package stt

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/satriahrh/arunika/relay/domain/entities"
)

func writeAudio(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

func TestHuggingFaceSTT_Recognize(t *testing.T) {
	audio := []byte("RIFF....WAVEfmt fake audio")

	tests := []struct {
		name     string
		token    string
		status   int
		body     string
		want     entities.Recognition
		wantErr  bool
		wantAuth string
	}{
		{
			name:     "structured text with token",
			token:    "hf_secret",
			status:   http.StatusOK,
			body:     `{"text":" hello world "}`,
			want:     entities.StructuredText{Text: " hello world "},
			wantAuth: "Bearer hf_secret",
		},
		{
			name:   "anonymous plain string",
			status: http.StatusOK,
			body:   `"hi"`,
			want:   entities.PlainText{Text: "hi"},
		},
		{
			name:   "null body",
			status: http.StatusOK,
			body:   `null`,
			want:   entities.Opaque{},
		},
		{
			name:    "model loading",
			status:  http.StatusServiceUnavailable,
			body:    `{"error":"Model openai/whisper-base is currently loading"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("method = %s, want POST", r.Method)
				}
				if r.URL.Path != "/openai/whisper-base" {
					t.Errorf("path = %s", r.URL.Path)
				}
				if got := r.Header.Get("Content-Type"); got != "audio/wav" {
					t.Errorf("Content-Type = %q", got)
				}
				if got := r.Header.Get("Authorization"); got != tt.wantAuth {
					t.Errorf("Authorization = %q, want %q", got, tt.wantAuth)
				}
				body, _ := io.ReadAll(r.Body)
				if string(body) != string(audio) {
					t.Errorf("uploaded %d bytes, want %d", len(body), len(audio))
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			recognizer, err := NewHuggingFaceSTT(HuggingFaceConfig{
				Token:      tt.token,
				APIBaseURL: server.URL + "/",
			}, zaptest.NewLogger(t))
			if err != nil {
				t.Fatalf("NewHuggingFaceSTT() error = %v", err)
			}

			got, err := recognizer.Recognize(context.Background(), writeAudio(t, audio))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Recognize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Recognize() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestHuggingFaceSTT_MissingFile(t *testing.T) {
	recognizer, err := NewHuggingFaceSTT(HuggingFaceConfig{APIBaseURL: "http://127.0.0.1:1"}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewHuggingFaceSTT() error = %v", err)
	}

	if _, err := recognizer.Recognize(context.Background(), filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("Recognize() expected error for missing file")
	}
}

func TestHuggingFaceSTT_Defaults(t *testing.T) {
	recognizer, err := NewHuggingFaceSTT(HuggingFaceConfig{}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewHuggingFaceSTT() error = %v", err)
	}

	if recognizer.Model() != defaultHuggingFaceModel {
		t.Errorf("Model() = %q, want %q", recognizer.Model(), defaultHuggingFaceModel)
	}
	if recognizer.apiBaseURL != defaultHuggingFaceBaseURL {
		t.Errorf("apiBaseURL = %q", recognizer.apiBaseURL)
	}
	if recognizer.httpClient.Timeout != defaultHuggingFaceTimeout {
		t.Errorf("timeout = %s", recognizer.httpClient.Timeout)
	}
}

func TestValidateHuggingFaceConfig(t *testing.T) {
	if err := ValidateHuggingFaceConfig(HuggingFaceConfig{Timeout: -1}); err == nil {
		t.Error("expected error for negative timeout")
	}
	if err := ValidateHuggingFaceConfig(HuggingFaceConfig{APIBaseURL: "localhost:8080"}); err == nil {
		t.Error("expected error for base url without scheme")
	}
}

func TestMockSpeechToText_Recognize(t *testing.T) {
	mock := NewMockSpeechToText(zaptest.NewLogger(t))

	got, err := mock.Recognize(context.Background(), writeAudio(t, make([]byte, 2000)))
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if got != (entities.PlainText{Text: "Hi!"}) {
		t.Errorf("Recognize() = %#v", got)
	}

	if _, err := mock.Recognize(context.Background(), filepath.Join(t.TempDir(), "nope.wav")); err == nil {
		t.Error("Recognize() expected error for missing file")
	}
}
