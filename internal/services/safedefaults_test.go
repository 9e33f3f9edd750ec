package services

import (
  "strings"
  "testing"
)

func TestFallbackEmbodimentFromSuggestion(t *testing.T) {
  got := FallbackEmbodiment(&EmbodimentSuggestion{
    Emotion:                  "gratitude",
    Context:                  "The launch went well",
    SuggestedDurationMinutes: 20,
  })
  if got.TargetEmotion != "gratitude" {
    t.Fatalf("emotion = %q", got.TargetEmotion)
  }
  if got.SuggestedDurationMinutes != 20 {
    t.Fatalf("minutes = %d, want 20", got.SuggestedDurationMinutes)
  }
  if !strings.Contains(got.EmbodimentText, "gratitude") {
    t.Fatalf("directive %q should mention the emotion", got.EmbodimentText)
  }
}

func TestFallbackEmbodimentDefaultsDuration(t *testing.T) {
  got := FallbackEmbodiment(&EmbodimentSuggestion{Emotion: "joy", Context: "x"})
  if got.SuggestedDurationMinutes != 15 {
    t.Fatalf("minutes = %d, want 15", got.SuggestedDurationMinutes)
  }
}

func TestFallbackEmbodimentWithoutSuggestion(t *testing.T) {
  got := FallbackEmbodiment(nil)
  if got.TargetEmotion != "peace" {
    t.Fatalf("emotion = %q, want peace", got.TargetEmotion)
  }
  if got.SuggestedDurationMinutes != 15 {
    t.Fatalf("minutes = %d, want 15", got.SuggestedDurationMinutes)
  }
  if got.EmbodimentText == "" {
    t.Fatal("directive text must not be empty")
  }
}
