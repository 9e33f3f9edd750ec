package ritual

import (
  "testing"
)

func TestAdvanceHappyPathThroughGuidance(t *testing.T) {
  steps := []struct {
    from   Step
    event  Event
    want   Step
    effect Effect
  }{
    {StepLoading, EventAdvance, StepMeditationSetup, EffectNone},
    {StepMeditationSetup, EventAdvance, StepFutureSelfViz, EffectStartMeditation},
    {StepFutureSelfViz, EventAdvance, StepCoherenceBreathing, EffectNone},
    {StepCoherenceBreathing, EventAdvance, StepPostMeditationState, EffectCompleteMeditation},
    {StepPostMeditationState, EventAdvance, StepPostMeditationDump, EffectRecordPostState},
    {StepPostMeditationDump, EventAdvance, StepExtractionReview, EffectRunExtraction},
    {StepExtractionReview, EventAdvance, StepEmbodiment, EffectGenerateEmbodiment},
    {StepEmbodiment, EventAdvance, StepActionOptIn, EffectCompleteEmbodiment},
    {StepActionOptIn, EventOptIn, StepCheckIn, EffectNone},
    {StepCheckIn, EventGateOpen, StepGuidance, EffectGenerateGuidance},
    {StepGuidance, EventAdvance, StepComplete, EffectNone},
  }
  for _, tc := range steps {
    next, effect, err := Advance(tc.from, tc.event)
    if err != nil {
      t.Fatalf("Advance(%s, %s): %v", tc.from, tc.event, err)
    }
    if next != tc.want || effect != tc.effect {
      t.Fatalf("Advance(%s, %s) = (%s, %s), want (%s, %s)", tc.from, tc.event, next, effect, tc.want, tc.effect)
    }
  }
}

func TestSkipsAlwaysAdvance(t *testing.T) {
  cases := []struct {
    from   Step
    want   Step
    effect Effect
  }{
    {StepMeditationSetup, StepCoherenceBreathing, EffectStartMeditation},
    {StepFutureSelfViz, StepCoherenceBreathing, EffectNone},
    {StepCoherenceBreathing, StepPostMeditationState, EffectCompleteMeditation},
    {StepPostMeditationDump, StepEmbodiment, EffectGenerateEmbodiment},
    {StepEmbodiment, StepActionOptIn, EffectSkipEmbodiment},
    {StepElevationOffer, StepGuidance, EffectSkipPractice},
    {StepPractice, StepPostPractice, EffectCompletePractice},
  }
  for _, tc := range cases {
    next, effect, err := Advance(tc.from, EventSkip)
    if err != nil {
      t.Fatalf("Advance(%s, skip): %v", tc.from, err)
    }
    if next != tc.want || effect != tc.effect {
      t.Fatalf("Advance(%s, skip) = (%s, %s), want (%s, %s)", tc.from, next, effect, tc.want, tc.effect)
    }
  }
}

func TestBothActionPathsConvergeOnComplete(t *testing.T) {
  next, _, err := Advance(StepActionOptIn, EventOptOut)
  if err != nil {
    t.Fatal(err)
  }
  if next != StepComplete {
    t.Fatalf("opt_out landed on %s, want %s", next, StepComplete)
  }

  path := []struct {
    from  Step
    event Event
  }{
    {StepActionOptIn, EventOptIn},
    {StepCheckIn, EventGateBlocked},
    {StepElevationOffer, EventAccept},
    {StepPractice, EventAdvance},
    {StepPostPractice, EventAdvance},
    {StepGuidance, EventAdvance},
  }
  current := StepActionOptIn
  for _, tc := range path {
    if current != tc.from {
      t.Fatalf("walk out of sync: at %s, expected %s", current, tc.from)
    }
    var err error
    current, _, err = Advance(current, tc.event)
    if err != nil {
      t.Fatalf("Advance(%s, %s): %v", tc.from, tc.event, err)
    }
  }
  if current != StepComplete {
    t.Fatalf("opt_in path ended on %s, want %s", current, StepComplete)
  }
}

func TestFailFromAnyNonTerminalStepLandsOnError(t *testing.T) {
  for step := range transitions {
    next, _, err := Advance(step, EventFail)
    if err != nil {
      t.Fatalf("Advance(%s, fail): %v", step, err)
    }
    if next != StepError {
      t.Fatalf("Advance(%s, fail) = %s, want %s", step, next, StepError)
    }
  }
  if _, _, err := Advance(StepComplete, EventFail); err == nil {
    t.Fatal("expected error failing from the complete step")
  }
}

func TestRetryRestartsAtMeditationSetup(t *testing.T) {
  next, effect, err := Advance(StepError, EventRetry)
  if err != nil {
    t.Fatal(err)
  }
  if next != StepMeditationSetup || effect != EffectNone {
    t.Fatalf("retry landed on (%s, %s), want (%s, none)", next, effect, StepMeditationSetup)
  }
}

func TestAdvanceRejectsUnknownTransitions(t *testing.T) {
  if _, _, err := Advance(StepComplete, EventAdvance); err == nil {
    t.Fatal("expected error advancing from complete")
  }
  if _, _, err := Advance(StepCheckIn, EventAdvance); err == nil {
    t.Fatal("expected error advancing check_in without a gate verdict")
  }
}

func TestResolveEntry(t *testing.T) {
  cases := []struct {
    name       string
    guidance   bool
    embodiment bool
    want       Step
  }{
    {"fresh day", false, false, StepMeditationSetup},
    {"embodiment done", false, true, StepActionOptIn},
    {"guidance exists", true, false, StepGuidance},
    {"guidance wins over embodiment", true, true, StepGuidance},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      if got := ResolveEntry(tc.guidance, tc.embodiment); got != tc.want {
        t.Fatalf("ResolveEntry(%v, %v) = %s, want %s", tc.guidance, tc.embodiment, got, tc.want)
      }
    })
  }
}

func TestIsTerminal(t *testing.T) {
  if !IsTerminal(StepComplete) {
    t.Fatal("complete should be terminal")
  }
  if IsTerminal(StepError) {
    t.Fatal("error is retryable, not terminal")
  }
}
