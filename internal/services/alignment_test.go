package services

import (
  "strings"
  "testing"

  "github.com/yungbote/coherence-backend/internal/types"
)

func TestNextStepsPromptPlaceholders(t *testing.T) {
  for _, placeholder := range []string{"{identity_anchor}", "{loop_count}", "{open_loops}", "{domains}", "{existing_steps}"} {
    if !strings.Contains(alignmentNextStepsPrompt, placeholder) {
      t.Fatalf("next steps prompt is missing %s", placeholder)
    }
  }
}

func TestFormatNextStepLoops(t *testing.T) {
  if got := formatNextStepLoops(nil); got != "No open loops." {
    t.Fatalf("formatNextStepLoops(nil) = %q", got)
  }

  loops := make([]*types.OpenLoop, 0, 12)
  for i := 0; i < 12; i++ {
    loops = append(loops, &types.OpenLoop{Description: "loop"})
  }
  got := formatNextStepLoops(loops)
  if lines := strings.Count(got, "\n") + 1; lines != 10 {
    t.Fatalf("formatNextStepLoops kept %d lines, want 10", lines)
  }
}

func TestFormatExistingSteps(t *testing.T) {
  if got := formatExistingSteps(nil); got != "None yet" {
    t.Fatalf("formatExistingSteps(nil) = %q", got)
  }
  got := formatExistingSteps([]string{"Call the bank", "Take a walk"})
  if got != "Call the bank\nTake a walk" {
    t.Fatalf("formatExistingSteps = %q", got)
  }
}

func TestFormatDomainNames(t *testing.T) {
  if got := formatDomainNames(nil); got != "None defined." {
    t.Fatalf("formatDomainNames(nil) = %q", got)
  }
  got := formatDomainNames([]*types.Domain{{Name: "Company"}, {Name: "Health"}})
  if got != "Company, Health" {
    t.Fatalf("formatDomainNames = %q", got)
  }
}
