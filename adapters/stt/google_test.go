package stt

import (
	"testing"

	"cloud.google.com/go/speech/apiv1/speechpb"
)

func TestGetAudioEncoding(t *testing.T) {
	tests := []struct {
		in      string
		want    speechpb.RecognitionConfig_AudioEncoding
		wantErr bool
	}{
		{"WAV", speechpb.RecognitionConfig_LINEAR16, false},
		{"linear16", speechpb.RecognitionConfig_LINEAR16, false},
		{"FLAC", speechpb.RecognitionConfig_FLAC, false},
		{"WEBM_OPUS", speechpb.RecognitionConfig_WEBM_OPUS, false},
		{"mp3", speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, true},
	}

	for _, tt := range tests {
		got, err := getAudioEncoding(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("getAudioEncoding(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("getAudioEncoding(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestJoinTranscripts(t *testing.T) {
	results := []*speechpb.SpeechRecognitionResult{
		{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: " hello "}, {Transcript: "yellow"}}},
		{Alternatives: nil},
		{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "world"}}},
	}

	if got := joinTranscripts(results); got != "hello world" {
		t.Errorf("joinTranscripts() = %q, want %q", got, "hello world")
	}

	if got := joinTranscripts(nil); got != "" {
		t.Errorf("joinTranscripts(nil) = %q, want empty", got)
	}
}
