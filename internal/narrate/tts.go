// Package narrate generates narration audio for text entries through
// OpenAI TTS and records the files in the audioFiles mapping.
package narrate

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Speaker turns one text into one audio file.
type Speaker interface {
	Speak(ctx context.Context, text, outputFile string) error
	Name() string
}

// Config holds TTS settings.
type Config struct {
	OpenAIKey string
	Model     string  // "tts-1", "tts-1-hd" or "gpt-4o-mini-tts"
	Voice     string  // "alloy", "nova", "shimmer", ...
	Speed     float64 // 0.25 to 4.0
	CacheDir  string  // content-hash audio cache, empty disables caching
}

// OpenAISpeaker implements Speaker through the OpenAI speech endpoint.
// Repeated texts hit a local content-hash cache instead of the API.
type OpenAISpeaker struct {
	client *openai.Client
	config Config
}

// NewOpenAISpeaker creates a speaker, preparing the cache directory if
// caching is enabled.
func NewOpenAISpeaker(config Config) (*OpenAISpeaker, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if config.Model == "" {
		config.Model = string(openai.TTSModel1HD)
	}
	if config.Voice == "" {
		config.Voice = string(openai.VoiceNova)
	}
	if config.Speed == 0 {
		config.Speed = 1.0
	}

	if config.CacheDir != "" {
		if err := os.MkdirAll(config.CacheDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	return &OpenAISpeaker{
		client: openai.NewClient(config.OpenAIKey),
		config: config,
	}, nil
}

// Speak generates audio for text and writes it to outputFile.
func (s *OpenAISpeaker) Speak(ctx context.Context, text, outputFile string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text to narrate")
	}

	if s.config.CacheDir != "" {
		cacheFile := s.cachePath(text)
		if _, err := os.Stat(cacheFile); err == nil {
			return copyFile(cacheFile, outputFile)
		}
	}

	req := openai.CreateSpeechRequest{
		Model: openai.SpeechModel(s.config.Model),
		Input: text,
		Voice: openai.SpeechVoice(s.config.Voice),
		Speed: s.config.Speed,
	}

	switch strings.ToLower(filepath.Ext(outputFile)) {
	case ".wav":
		req.ResponseFormat = openai.SpeechResponseFormatWav
	case ".opus":
		req.ResponseFormat = openai.SpeechResponseFormatOpus
	case ".aac":
		req.ResponseFormat = openai.SpeechResponseFormatAac
	case ".flac":
		req.ResponseFormat = openai.SpeechResponseFormatFlac
	default:
		req.ResponseFormat = openai.SpeechResponseFormatMp3
	}

	response, err := s.client.CreateSpeech(ctx, req)
	if err != nil {
		return fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	if dir := filepath.Dir(outputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, response)
	if err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if written == 0 {
		return fmt.Errorf("no audio data received from OpenAI")
	}

	if s.config.CacheDir != "" {
		_ = copyFile(outputFile, s.cachePath(text)) // cache errors are not fatal
	}
	return nil
}

// Name returns the speaker name.
func (s *OpenAISpeaker) Name() string {
	return "openai"
}

// cachePath hashes the text together with the voice settings so a
// settings change never serves stale audio.
func (s *OpenAISpeaker) cachePath(text string) string {
	h := md5.New()
	h.Write([]byte(text))
	h.Write([]byte(s.config.Model))
	h.Write([]byte(s.config.Voice))
	fmt.Fprintf(h, "%.2f", s.config.Speed)
	hash := hex.EncodeToString(h.Sum(nil))

	// First 2 chars as subdirectory keeps cache directories small.
	return filepath.Join(s.config.CacheDir, hash[:2], hash[2:]+".mp3")
}

func copyFile(src, dst string) error {
	if dir := filepath.Dir(dst); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destination.Close()

	_, err = io.Copy(destination, source)
	return err
}
