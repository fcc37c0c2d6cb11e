package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// visionCapable reports whether a chat model accepts image input, the
// capability alt text generation needs.
func visionCapable(modelID string) bool {
	return strings.Contains(modelID, "gpt-4o") ||
		strings.Contains(modelID, "gpt-4.1") ||
		strings.Contains(modelID, "vision")
}

// ListAvailableModels lists all available OpenAI models categorized by
// how this tool uses them: chat (translation, easy-read, ELI5), vision
// (image alt text) and TTS (narration).
func (l *Lister) ListAvailableModels() error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .manualkit.yaml")
	}

	ctx := context.Background()
	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ttsModels := []string{}
	visionModels := []string{}
	chatModels := []string{}

	for _, model := range models.Models {
		modelID := model.ID
		switch {
		case strings.Contains(modelID, "tts") || strings.Contains(modelID, "audio"):
			ttsModels = append(ttsModels, modelID)
		case visionCapable(modelID):
			visionModels = append(visionModels, modelID)
		case strings.Contains(modelID, "gpt") || strings.Contains(modelID, "chat"):
			chatModels = append(chatModels, modelID)
		}
	}

	sort.Strings(ttsModels)
	sort.Strings(visionModels)
	sort.Strings(chatModels)

	fmt.Println("Available OpenAI Models:")

	fmt.Println("\nChat Models (translation, easy-read, ELI5):")
	if len(chatModels) == 0 {
		fmt.Println("  No chat models found")
	} else {
		for _, model := range chatModels {
			fmt.Printf("  %s\n", model)
		}
	}

	fmt.Println("\nVision-Capable Models (image alt text):")
	if len(visionModels) == 0 {
		fmt.Println("  No vision models found")
	} else {
		for _, model := range visionModels {
			fmt.Printf("  %s\n", model)
		}
	}

	fmt.Println("\nText-to-Speech (TTS) Models (narration):")
	if len(ttsModels) == 0 {
		fmt.Println("  No TTS models found")
	} else {
		for _, model := range ttsModels {
			fmt.Printf("  %s\n", model)
		}
	}

	return nil
}
