package ritual

import (
  "fmt"
)

// Step is a stage of the daily ritual flow. The flow is re-derived from
// persisted rows on every entry; nothing here is resumed from memory.
type Step string

const (
  StepLoading            Step = "loading"
  StepMeditationSetup    Step = "meditation_setup"
  StepFutureSelfViz      Step = "future_self_viz"
  StepCoherenceBreathing Step = "coherence_breathing"
  StepPostMeditationState Step = "post_meditation_state"
  StepPostMeditationDump Step = "post_meditation_dump"
  StepExtractionReview   Step = "extraction_review"
  StepEmbodiment         Step = "embodiment"
  StepActionOptIn        Step = "action_opt_in"
  StepCheckIn            Step = "check_in"
  StepElevationOffer     Step = "elevation_offer"
  StepPractice           Step = "practice"
  StepPostPractice       Step = "post_practice"
  StepGuidance           Step = "guidance"
  StepComplete           Step = "complete"
  StepError              Step = "error"
)

type Event string

const (
  EventAdvance     Event = "advance"
  EventSkip        Event = "skip"
  EventOptIn       Event = "opt_in"
  EventOptOut      Event = "opt_out"
  EventGateOpen    Event = "gate_open"
  EventGateBlocked Event = "gate_blocked"
  EventAccept      Event = "accept"
  EventFail        Event = "fail"
  EventRetry       Event = "retry"
)

// Effect names the side effect the flow service must perform while taking
// a transition. The machine itself performs no I/O.
type Effect string

const (
  EffectNone               Effect = ""
  EffectStartMeditation    Effect = "start_meditation"
  EffectCompleteMeditation Effect = "complete_meditation"
  EffectRecordPostState    Effect = "record_post_state"
  EffectRunExtraction      Effect = "run_extraction"
  EffectGenerateEmbodiment Effect = "generate_embodiment"
  EffectCompleteEmbodiment Effect = "complete_embodiment"
  EffectSkipEmbodiment     Effect = "skip_embodiment"
  EffectEvaluateGate       Effect = "evaluate_gate"
  EffectStartPractice      Effect = "start_practice"
  EffectSkipPractice       Effect = "skip_practice"
  EffectCompletePractice   Effect = "complete_practice"
  EffectGenerateGuidance   Effect = "generate_guidance"
)

type transition struct {
  next   Step
  effect Effect
}

var transitions = map[Step]map[Event]transition{
  StepLoading: {
    EventAdvance: {StepMeditationSetup, EffectNone},
  },
  StepMeditationSetup: {
    EventAdvance: {StepFutureSelfViz, EffectStartMeditation},
    EventSkip:    {StepCoherenceBreathing, EffectStartMeditation},
  },
  StepFutureSelfViz: {
    EventAdvance: {StepCoherenceBreathing, EffectNone},
    EventSkip:    {StepCoherenceBreathing, EffectNone},
  },
  StepCoherenceBreathing: {
    EventAdvance: {StepPostMeditationState, EffectCompleteMeditation},
    EventSkip:    {StepPostMeditationState, EffectCompleteMeditation},
  },
  StepPostMeditationState: {
    EventAdvance: {StepPostMeditationDump, EffectRecordPostState},
  },
  StepPostMeditationDump: {
    EventAdvance: {StepExtractionReview, EffectRunExtraction},
    EventSkip:    {StepEmbodiment, EffectGenerateEmbodiment},
  },
  StepExtractionReview: {
    EventAdvance: {StepEmbodiment, EffectGenerateEmbodiment},
  },
  StepEmbodiment: {
    EventAdvance: {StepActionOptIn, EffectCompleteEmbodiment},
    EventSkip:    {StepActionOptIn, EffectSkipEmbodiment},
  },
  StepActionOptIn: {
    EventOptIn:  {StepCheckIn, EffectNone},
    EventOptOut: {StepComplete, EffectNone},
  },
  StepCheckIn: {
    EventGateOpen:    {StepGuidance, EffectGenerateGuidance},
    EventGateBlocked: {StepElevationOffer, EffectEvaluateGate},
  },
  StepElevationOffer: {
    EventAccept: {StepPractice, EffectStartPractice},
    EventSkip:   {StepGuidance, EffectSkipPractice},
  },
  StepPractice: {
    EventAdvance: {StepPostPractice, EffectCompletePractice},
    EventSkip:    {StepPostPractice, EffectCompletePractice},
  },
  StepPostPractice: {
    EventAdvance: {StepGuidance, EffectGenerateGuidance},
  },
  StepGuidance: {
    EventAdvance: {StepComplete, EffectNone},
  },
  StepError: {
    EventRetry: {StepMeditationSetup, EffectNone},
  },
}

// Advance resolves one transition. EventFail moves any non-terminal step to
// StepError; retry restarts the flow at meditation setup rather than the
// step that failed.
func Advance(step Step, event Event) (Step, Effect, error) {
  if event == EventFail {
    if step == StepComplete {
      return step, EffectNone, fmt.Errorf("ritual: no transition from %s on %s", step, event)
    }
    return StepError, EffectNone, nil
  }
  byEvent, ok := transitions[step]
  if !ok {
    return step, EffectNone, fmt.Errorf("ritual: no transitions from %s", step)
  }
  tr, ok := byEvent[event]
  if !ok {
    return step, EffectNone, fmt.Errorf("ritual: no transition from %s on %s", step, event)
  }
  return tr.next, tr.effect, nil
}

// ResolveEntry picks where a returning user lands for today.
func ResolveEntry(hasGuidanceToday, completedEmbodimentToday bool) Step {
  if hasGuidanceToday {
    return StepGuidance
  }
  if completedEmbodimentToday {
    return StepActionOptIn
  }
  return StepMeditationSetup
}

func IsTerminal(step Step) bool {
  return step == StepComplete
}
