package services

import (
  "strings"
  "testing"

  "github.com/yungbote/coherence-backend/internal/types"
)

func TestRemapDecision(t *testing.T) {
  cases := []struct {
    in   string
    want string
  }{
    {"NEXT_ACTION", GuidanceNextAction},
    {"PAUSE", GuidancePause},
    {"CLOSE_LOOP", GuidanceCloseLoop},
    {"EMBODY", GuidanceEmbody},
    {"next_action", GuidanceNextAction},
    {" embody ", GuidanceEmbody},
    {"REST", GuidancePause},
    {"", GuidancePause},
  }
  for _, tc := range cases {
    if got := RemapDecision(tc.in); got != tc.want {
      t.Fatalf("RemapDecision(%q) = %q, want %q", tc.in, got, tc.want)
    }
  }
}

func TestFallbackGuidance(t *testing.T) {
  got := FallbackGuidance()
  if got.Decision != GuidancePause {
    t.Fatalf("fallback decision = %q, want pause", got.Decision)
  }
  if got.Confidence != 0.3 {
    t.Fatalf("fallback confidence = %v, want 0.3", got.Confidence)
  }
  if got.Output == "" {
    t.Fatal("fallback output must not be empty")
  }
}

func TestRecoveryDayGuidance(t *testing.T) {
  got := RecoveryDayGuidance()
  if got.Decision != GuidancePause {
    t.Fatalf("recovery decision = %q, want pause", got.Decision)
  }
  if got.Confidence != 0.95 {
    t.Fatalf("recovery confidence = %v, want 0.95", got.Confidence)
  }
  if got.Output == "" {
    t.Fatal("recovery output must not be empty")
  }
}

func TestGuidancePromptCarriesPostEmbodimentContext(t *testing.T) {
  if !strings.Contains(guidanceEnginePrompt, "{post_embodiment_context}") {
    t.Fatalf("guidance prompt is missing the post-embodiment placeholder")
  }
}

func TestFormatPostEmbodimentContext(t *testing.T) {
  cases := []struct {
    name  string
    event *types.EmbodimentEvent
    want  string
  }{
    {"nil event yields nothing", nil, ""},
    {"skipped practice yields nothing", &types.EmbodimentEvent{Emotion: "joy", Outcome: "the launch", Skipped: true, Completed: true}, ""},
    {"incomplete practice yields nothing", &types.EmbodimentEvent{Emotion: "joy", Outcome: "the launch"}, ""},
    {
      "completed practice summarizes emotion and outcome",
      &types.EmbodimentEvent{Emotion: "gratitude", Outcome: "the product shipping", Completed: true},
      `User completed embodiment practice focused on gratitude. They embodied: "the product shipping"`,
    },
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      if got := formatPostEmbodimentContext(tc.event); got != tc.want {
        t.Fatalf("formatPostEmbodimentContext = %q, want %q", got, tc.want)
      }
    })
  }
}
