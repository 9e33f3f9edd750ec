package services

// Every model-failure fallback lives here so the engines share one policy:
// a decode failure never surfaces to the user as an error when a safe
// default can stand in.

const (
  FallbackGateReasoning     = "Taking a moment to center before proceeding."
  FallbackGuidanceText      = "Take a moment. The system couldn't determine clear guidance right now."
  RecoveryDayGuidanceText   = "Recovery day. No decisions today. Rest, reflect, or do something restorative."
  EmptyDumpSummary          = "Meditation completed without brain dump."
  UnparsedExtractionSummary = "Unable to parse meditation insights. Your reflections are still valuable."
)

// EmptyExtraction is a valid, empty extraction carrying the given summary.
func EmptyExtraction(summary string) *ExtractionResult {
  return &ExtractionResult{
    Loops:             []ExtractionLoop{},
    VisionUpdates:     []VisionUpdate{},
    EmotionShifts:     []string{},
    PatternsReleasing: []string{},
    IdentityInsights:  []IdentityInsight{},
    Summary:           summary,
    CoherenceLevel:    "moderate",
  }
}

// UnparsedExtraction stands in when the model reply was not valid JSON.
func UnparsedExtraction() *ExtractionResult {
  result := EmptyExtraction(UnparsedExtractionSummary)
  result.CoherenceLevel = "light"
  return result
}

// FallbackEmbodiment prefers the extraction's own suggestion, then a
// generic grounding directive.
func FallbackEmbodiment(suggestion *EmbodimentSuggestion) EmbodimentDirective {
  if suggestion != nil {
    minutes := suggestion.SuggestedDurationMinutes
    if minutes <= 0 {
      minutes = 15
    }
    return EmbodimentDirective{
      EmbodimentText:           formatSuggestionDirective(suggestion.Emotion, suggestion.Context, minutes),
      TargetEmotion:            suggestion.Emotion,
      TargetOutcome:            suggestion.Context,
      SuggestedDurationMinutes: minutes,
      Reasoning:                "Generated from meditation extraction.",
    }
  }
  return EmbodimentDirective{
    EmbodimentText:           "Spend 15 minutes feeling the peace of having everything you need in this moment. Nothing to chase. Complete.",
    TargetEmotion:            "peace",
    TargetOutcome:            "Completeness in this moment",
    SuggestedDurationMinutes: 15,
    Reasoning:                "A grounding practice when specific guidance wasn't clear.",
  }
}

// FallbackGuidance is the pause decision used when the model reply cannot
// be parsed.
func FallbackGuidance() GuidanceDecision {
  return GuidanceDecision{
    Decision:   GuidancePause,
    Output:     FallbackGuidanceText,
    Reasoning:  "Parsing error; defaulting to pause for safety.",
    Confidence: 0.3,
  }
}

// RecoveryDayGuidance is the forced pause for a hard-blocked user who
// reported no shift after their practice. The model is never consulted.
func RecoveryDayGuidance() GuidanceDecision {
  return GuidanceDecision{
    Decision:   GuidancePause,
    Output:     RecoveryDayGuidanceText,
    Reasoning:  "Hard block persisted after elevation practice.",
    Confidence: 0.95,
  }
}
