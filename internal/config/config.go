// Package config loads relay settings from an optional YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/gommon/bytes"
	"gopkg.in/yaml.v3"

	"github.com/satriahrh/arunika/relay/adapters/llm"
	"github.com/satriahrh/arunika/relay/adapters/stt"
	"github.com/satriahrh/arunika/relay/internal/events"
)

// Provider names accepted by STT_PROVIDER and LLM_PROVIDER
const (
	ProviderHuggingFace = "huggingface"
	ProviderGoogle      = "google"
	ProviderGroq        = "groq"
	ProviderGemini      = "gemini"
	ProviderMock        = "mock"
)

type Config struct {
	Server ServerConfig  `yaml:"server"`
	Log    LogConfig     `yaml:"log"`
	STT    STTConfig     `yaml:"stt"`
	LLM    LLMConfig     `yaml:"llm"`
	Kafka  events.Config `yaml:"kafka"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	// MaxAudioBytes uses echo's body limit notation, e.g. "16M"
	MaxAudioBytes        string `yaml:"max_audio_bytes"`
	RedactInternalErrors bool   `yaml:"redact_internal_errors"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type STTConfig struct {
	Provider    string                `yaml:"provider"`
	HuggingFace stt.HuggingFaceConfig `yaml:"huggingface"`
	Google      stt.GoogleConfig      `yaml:"google"`
}

type LLMConfig struct {
	Provider string           `yaml:"provider"`
	Groq     llm.GroqConfig   `yaml:"groq"`
	Gemini   llm.GeminiConfig `yaml:"gemini"`
}

// Load reads the YAML file at path when path is non-empty, then applies
// environment overrides and defaults. ${VAR} references in the file are expanded.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Host, "HOST")
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.MaxAudioBytes, "MAX_AUDIO_BYTES")
	if err := setBool(&c.Server.RedactInternalErrors, "REDACT_INTERNAL_ERRORS"); err != nil {
		return err
	}

	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	setString(&c.STT.Provider, "STT_PROVIDER")
	setString(&c.STT.HuggingFace.Token, "HF_TOKEN")
	setString(&c.STT.HuggingFace.Model, "HF_ASR_MODEL")
	setString(&c.STT.HuggingFace.APIBaseURL, "HF_API_BASE_URL")
	setString(&c.STT.Google.Language, "GOOGLE_STT_LANGUAGE")

	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Groq.APIKey, "GROQ_API_KEY")
	setString(&c.LLM.Groq.Model, "GROQ_MODEL")
	setString(&c.LLM.Groq.APIBaseURL, "GROQ_API_BASE_URL")
	setString(&c.LLM.Gemini.APIKey, "GEMINI_API_KEY")
	setString(&c.LLM.Gemini.Model, "GEMINI_MODEL")

	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing HTTP_TIMEOUT: %w", err)
		}
		c.STT.HuggingFace.Timeout = timeout
		c.LLM.Groq.Timeout = timeout
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
	}
	setString(&c.Kafka.Topic, "KAFKA_TOPIC")

	return nil
}

func (c *Config) setDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == "" {
		c.Server.Port = "7860"
	}
	if c.Server.MaxAudioBytes == "" {
		c.Server.MaxAudioBytes = "16M"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.STT.Provider == "" {
		c.STT.Provider = ProviderHuggingFace
	}
	if c.STT.HuggingFace.Model == "" {
		c.STT.HuggingFace.Model = "openai/whisper-base"
	}
	if c.STT.HuggingFace.Timeout == 0 {
		c.STT.HuggingFace.Timeout = 30 * time.Second
	}
	if c.STT.Google.Language == "" {
		c.STT.Google.Language = "en-US"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderGroq
	}
	if c.LLM.Groq.Model == "" {
		c.LLM.Groq.Model = "llama-3.1-8b-instant"
	}
	if c.LLM.Groq.Timeout == 0 {
		c.LLM.Groq.Timeout = 30 * time.Second
	}
	if c.LLM.Gemini.Model == "" {
		c.LLM.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "voice-relay.exchanges"
	}
}

// Validate checks values that would otherwise fail late at startup
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Server.Port)
	}

	limit, err := bytes.Parse(c.Server.MaxAudioBytes)
	if err != nil || limit <= 0 {
		return fmt.Errorf("invalid max audio bytes %q", c.Server.MaxAudioBytes)
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}

	switch c.STT.Provider {
	case ProviderHuggingFace, ProviderGoogle, ProviderMock:
	default:
		return fmt.Errorf("unsupported STT provider %q", c.STT.Provider)
	}

	switch c.LLM.Provider {
	case ProviderGroq, ProviderGemini, ProviderMock:
	default:
		return fmt.Errorf("unsupported LLM provider %q", c.LLM.Provider)
	}

	if err := stt.ValidateHuggingFaceConfig(c.STT.HuggingFace); err != nil {
		return fmt.Errorf("huggingface: %w", err)
	}
	if err := llm.ValidateGroqConfig(c.LLM.Groq); err != nil {
		return fmt.Errorf("groq: %w", err)
	}

	return nil
}

// Addr is the listen address
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// STTModel names the model behind the selected speech provider
func (c *Config) STTModel() string {
	switch c.STT.Provider {
	case ProviderGoogle:
		return "google-speech " + c.STT.Google.Language
	case ProviderMock:
		return "mock-whisper"
	default:
		return c.STT.HuggingFace.Model
	}
}

// LLMModel names the model behind the selected chat provider
func (c *Config) LLMModel() string {
	switch c.LLM.Provider {
	case ProviderGemini:
		return c.LLM.Gemini.Model
	case ProviderMock:
		return "mock-chat"
	default:
		return c.LLM.Groq.Model
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", key, err)
	}
	*dst = b
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
