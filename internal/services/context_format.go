package services

import (
  "encoding/json"
  "fmt"
  "sort"
  "strings"

  "gorm.io/datatypes"
  "github.com/yungbote/coherence-backend/internal/types"
)

// DecodeStringList reads a jsonb string array column, tolerating null.
func DecodeStringList(raw datatypes.JSON) []string {
  if len(raw) == 0 {
    return []string{}
  }
  var out []string
  if err := json.Unmarshal(raw, &out); err != nil {
    return []string{}
  }
  return out
}

// EncodeStringList writes a string slice as a jsonb column value.
func EncodeStringList(items []string) datatypes.JSON {
  if items == nil {
    items = []string{}
  }
  raw, err := json.Marshal(items)
  if err != nil {
    return datatypes.JSON([]byte("[]"))
  }
  return datatypes.JSON(raw)
}

func formatAnchorContext(anchor *types.IdentityAnchor) string {
  if anchor == nil {
    return "No identity anchor set yet."
  }
  parts := []string{fmt.Sprintf("Core identity: %s", anchor.CoreIdentity)}
  if anchor.PrimaryConstraint != "" {
    parts = append(parts, fmt.Sprintf("Primary constraint: %s", anchor.PrimaryConstraint))
  }
  if anchor.DecisionFilter != "" {
    parts = append(parts, fmt.Sprintf("Decision filter: %s", anchor.DecisionFilter))
  }
  if patterns := DecodeStringList(anchor.AntiPatterns); len(patterns) > 0 {
    parts = append(parts, fmt.Sprintf("Anti-patterns to avoid: %s", strings.Join(patterns, ", ")))
  }
  if anchor.CurrentPhase != "" {
    parts = append(parts, fmt.Sprintf("Current phase: %s", anchor.CurrentPhase))
  }
  return strings.Join(parts, "\n")
}

func anchorVision(anchor *types.IdentityAnchor) string {
  if anchor == nil || anchor.FutureVision == "" {
    return "Not yet defined."
  }
  return anchor.FutureVision
}

func anchorEmotions(anchor *types.IdentityAnchor) string {
  if anchor == nil {
    return "Not yet defined."
  }
  emotions := DecodeStringList(anchor.ElevatedEmotions)
  if len(emotions) == 0 {
    return "Not yet defined."
  }
  return strings.Join(emotions, ", ")
}

func anchorLeaving(anchor *types.IdentityAnchor) string {
  if anchor == nil {
    return "Not yet defined."
  }
  leaving := DecodeStringList(anchor.LeavingBehind)
  if len(leaving) == 0 {
    return "Not yet defined."
  }
  return strings.Join(leaving, ", ")
}

func formatLoopContext(loops []*types.OpenLoop) string {
  if len(loops) == 0 {
    return "No open loops captured yet."
  }
  blocks := make([]string, 0, len(loops))
  for _, loop := range loops {
    parts := []string{fmt.Sprintf("- %s", loop.Description)}
    if loop.CommitmentType != "" {
      parts = append(parts, fmt.Sprintf("  Type: %s", loop.CommitmentType))
    }
    if loop.ExternalParty != "" {
      parts = append(parts, fmt.Sprintf("  External party: %s", loop.ExternalParty))
    }
    if loop.Deadline != nil {
      parts = append(parts, fmt.Sprintf("  Deadline: %s", loop.Deadline.Format("2006-01-02")))
    }
    parts = append(parts, fmt.Sprintf("  Cognitive pull: %d/5", loop.CognitivePull))
    parts = append(parts, fmt.Sprintf("  ID: %s", loop.ID))
    blocks = append(blocks, strings.Join(parts, "\n"))
  }
  return strings.Join(blocks, "\n\n")
}

// formatKeyLoops shows the three loops with the highest cognitive pull.
func formatKeyLoops(loops []*types.OpenLoop) string {
  if len(loops) == 0 {
    return "No high-priority open loops."
  }
  sorted := make([]*types.OpenLoop, len(loops))
  copy(sorted, loops)
  sort.SliceStable(sorted, func(i, j int) bool {
    return sorted[i].CognitivePull > sorted[j].CognitivePull
  })
  if len(sorted) > 3 {
    sorted = sorted[:3]
  }
  lines := make([]string, 0, len(sorted))
  for _, loop := range sorted {
    lines = append(lines, fmt.Sprintf("- %s (pull: %d/5)", loop.Description, loop.CognitivePull))
  }
  return strings.Join(lines, "\n")
}

func formatRulesContext(rules []*types.PersonalizedRule) string {
  if len(rules) == 0 {
    return "No personalized rules learned yet."
  }
  lines := make([]string, 0, len(rules))
  for _, rule := range rules {
    lines = append(lines, fmt.Sprintf("- %s: %s (confidence: %.2f)", rule.RuleType, string(rule.RuleContent), rule.Confidence))
  }
  return strings.Join(lines, "\n")
}

func formatEffectiveState(in GateInput, postShift string) string {
  parts := []string{
    fmt.Sprintf("Mental clarity: %s", in.Mental),
    fmt.Sprintf("Emotional state: %s", in.Emotional),
    fmt.Sprintf("Physical energy: %s", in.Physical),
  }
  if postShift != "" {
    parts = append(parts, fmt.Sprintf("Post-practice shift: %s", postShift))
  }
  return strings.Join(parts, "\n")
}

func formatSuggestionContext(suggestion *EmbodimentSuggestion) string {
  if suggestion == nil {
    return "No specific suggestion from extraction."
  }
  return fmt.Sprintf("Emotion: %s\nContext: %s\nDuration: %d minutes", suggestion.Emotion, suggestion.Context, suggestion.SuggestedDurationMinutes)
}

func formatVisionUpdates(updates []VisionUpdate) string {
  if len(updates) == 0 {
    return "No vision updates from this meditation."
  }
  lines := make([]string, 0, len(updates))
  for _, update := range updates {
    lines = append(lines, fmt.Sprintf("- [%s] %s", update.Type, update.Content))
  }
  return strings.Join(lines, "\n")
}

// formatNextStepLoops lists up to ten open loop descriptions.
func formatNextStepLoops(loops []*types.OpenLoop) string {
  if len(loops) == 0 {
    return "No open loops."
  }
  if len(loops) > 10 {
    loops = loops[:10]
  }
  lines := make([]string, 0, len(loops))
  for _, loop := range loops {
    lines = append(lines, fmt.Sprintf("- %s", loop.Description))
  }
  return strings.Join(lines, "\n")
}

func formatDomainNames(domains []*types.Domain) string {
  if len(domains) == 0 {
    return "None defined."
  }
  names := make([]string, 0, len(domains))
  for _, domain := range domains {
    names = append(names, domain.Name)
  }
  return strings.Join(names, ", ")
}

func formatExistingSteps(steps []string) string {
  if len(steps) == 0 {
    return "None yet"
  }
  return strings.Join(steps, "\n")
}

// formatPostEmbodimentContext summarizes a completed embodiment practice
// for the guidance engine. Skipped or absent practices yield nothing.
func formatPostEmbodimentContext(event *types.EmbodimentEvent) string {
  if event == nil || event.Skipped || !event.Completed {
    return ""
  }
  return fmt.Sprintf("User completed embodiment practice focused on %s. They embodied: %q", event.Emotion, event.Outcome)
}

func formatSuggestionDirective(emotion, context string, minutes int) string {
  return fmt.Sprintf("Spend %d minutes feeling the %s of %s.", minutes, emotion, context)
}

func buildBrainDumpContext(anchor *types.IdentityAnchor, domains []*types.Domain) string {
  var sb strings.Builder
  if anchor != nil {
    sb.WriteString("\n## User Context\n")
    sb.WriteString(fmt.Sprintf("- Core identity: %s\n", anchor.CoreIdentity))
    if anchor.PrimaryConstraint != "" {
      sb.WriteString(fmt.Sprintf("- Primary constraint: %s\n", anchor.PrimaryConstraint))
    }
    if anchor.DecisionFilter != "" {
      sb.WriteString(fmt.Sprintf("- Decision filter: %s\n", anchor.DecisionFilter))
    }
    if anchor.CurrentPhase != "" {
      sb.WriteString(fmt.Sprintf("- Current phase: %s\n", anchor.CurrentPhase))
    }
    if anchor.FutureVision != "" {
      sb.WriteString(fmt.Sprintf("- Future vision: %s\n", anchor.FutureVision))
    }
    if emotions := DecodeStringList(anchor.ElevatedEmotions); len(emotions) > 0 {
      sb.WriteString(fmt.Sprintf("- Elevated emotions: %s\n", strings.Join(emotions, ", ")))
    }
  }
  if len(domains) > 0 {
    sb.WriteString("\n## User's Domains\n")
    for _, domain := range domains {
      sb.WriteString(fmt.Sprintf("- %s\n", domain.Name))
    }
  }
  return sb.String()
}
