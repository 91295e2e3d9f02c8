// Command audioclient plays the device's part: it posts a WAV recording to
// /process_audio and prints the transcript and reply.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

type processAudioResponse struct {
	Success    bool   `json:"success"`
	Transcript string `json:"transcript"`
	Response   string `json:"response"`
	Error      string `json:"error"`
}

func main() {
	server := flag.String("server", "http://localhost:7860", "relay base URL")
	file := flag.String("file", "sample_audio.wav", "WAV file to send")
	timeout := flag.Duration("timeout", 60*time.Second, "request timeout")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	audio, err := os.ReadFile(*file)
	if err != nil {
		logger.Fatal("Error reading audio file", zap.String("file", *file), zap.Error(err))
	}
	logger.Info("Read audio file", zap.String("file", *file), zap.Int("audioSize", len(audio)))

	client := &http.Client{Timeout: *timeout}
	start := time.Now()

	resp, err := client.Post(*server+"/process_audio", "audio/wav", bytes.NewReader(audio))
	if err != nil {
		logger.Fatal("Request failed", zap.Error(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Fatal("Error reading response", zap.Error(err))
	}

	var result processAudioResponse
	if err := json.Unmarshal(body, &result); err != nil {
		logger.Fatal("Unexpected response body",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
			zap.Error(err))
	}

	logger.Info("Exchange finished",
		zap.Int("status", resp.StatusCode),
		zap.String("requestID", resp.Header.Get("X-Request-Id")),
		zap.Duration("elapsed", time.Since(start)))

	if !result.Success {
		fmt.Printf("error: %s\n", result.Error)
		os.Exit(1)
	}
	fmt.Printf("transcript: %s\nresponse:   %s\n", result.Transcript, result.Response)
}
