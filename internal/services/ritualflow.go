package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"

  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/repos"
  "github.com/yungbote/coherence-backend/internal/ritual"
  "github.com/yungbote/coherence-backend/internal/types"
)

// FlowPayload carries the inputs a transition may need. Handlers fill
// only the fields relevant to the step being advanced.
type FlowPayload struct {
  DurationSeconds   int                   `json:"duration_seconds,omitempty"`
  BreathPattern     string                `json:"breath_pattern,omitempty"`
  SessionID         *uuid.UUID            `json:"session_id,omitempty"`
  State             *GateInput            `json:"state,omitempty"`
  ContextDump       string                `json:"context_dump,omitempty"`
  BrainDump         string                `json:"brain_dump,omitempty"`
  PracticeEventID   *uuid.UUID            `json:"practice_event_id,omitempty"`
  PostShift         string                `json:"post_shift,omitempty"`
  EmbodimentEventID *uuid.UUID            `json:"embodiment_event_id,omitempty"`
  Completion        *EmbodimentCompletion `json:"completion,omitempty"`
  Confirmed         *ExtractionResult     `json:"confirmed,omitempty"`
}

// FlowState is what a transition hands back to the handler. Only the
// fields touched by the executed effect are set.
type FlowState struct {
  Step           ritual.Step              `json:"step"`
  Session        *types.MeditationSession `json:"session,omitempty"`
  Extraction     *ExtractionResult        `json:"extraction,omitempty"`
  Embodiment     *types.EmbodimentEvent   `json:"embodiment,omitempty"`
  CheckIn        *CheckInResult           `json:"check_in,omitempty"`
  PracticeEvent  *types.PracticeEvent     `json:"practice_event,omitempty"`
  Guidance       *types.GuidanceEvent     `json:"guidance,omitempty"`
  GuidanceCached bool                     `json:"guidance_cached,omitempty"`
}

type RitualFlowService interface {
  Enter(ctx context.Context, userID uuid.UUID) (*FlowState, error)
  Advance(ctx context.Context, userID uuid.UUID, step ritual.Step, event ritual.Event, payload FlowPayload) (*FlowState, error)
}

type ritualFlowService struct {
  log            *logger.Logger
  userRepo       repos.UserRepo
  embodimentRepo repos.EmbodimentEventRepo
  meditation     MeditationService
  extraction     ExtractionService
  embodiment     EmbodimentService
  checkIn        CheckInService
  guidance       GuidanceService
  loops          LoopService
  identity       IdentityService
}

func NewRitualFlowService(
  log *logger.Logger,
  userRepo repos.UserRepo,
  embodimentRepo repos.EmbodimentEventRepo,
  meditation MeditationService,
  extraction ExtractionService,
  embodiment EmbodimentService,
  checkIn CheckInService,
  guidance GuidanceService,
  loops LoopService,
  identity IdentityService,
) RitualFlowService {
  return &ritualFlowService{
    log:            log.With("service", "RitualFlowService"),
    userRepo:       userRepo,
    embodimentRepo: embodimentRepo,
    meditation:     meditation,
    extraction:     extraction,
    embodiment:     embodiment,
    checkIn:        checkIn,
    guidance:       guidance,
    loops:          loops,
    identity:       identity,
  }
}

func (s *ritualFlowService) dayBounds(ctx context.Context, userID uuid.UUID) (time.Time, time.Time, error) {
  loc := time.UTC
  users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return time.Time{}, time.Time{}, err
  }
  if len(users) == 1 && users[0].Timezone != "" {
    if parsed, err := time.LoadLocation(users[0].Timezone); err == nil {
      loc = parsed
    }
  }
  now := time.Now().In(loc)
  start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
  return start, start.Add(24 * time.Hour), nil
}

// Enter re-derives where the user lands today from persisted rows.
func (s *ritualFlowService) Enter(ctx context.Context, userID uuid.UUID) (*FlowState, error) {
  existing, err := s.guidance.GetToday(ctx, userID)
  if err != nil {
    return nil, err
  }

  var embodied *types.EmbodimentEvent
  from, to, err := s.dayBounds(ctx, userID)
  if err != nil {
    return nil, err
  }
  embodied, err = s.embodimentRepo.GetLatestCompletedInRange(ctx, nil, userID, from, to)
  if err != nil {
    return nil, err
  }

  state := &FlowState{
    Step: ritual.ResolveEntry(existing != nil, embodied != nil),
  }
  if existing != nil {
    state.Guidance = existing
    state.GuidanceCached = true
  }
  if embodied != nil {
    state.Embodiment = embodied
  }
  return state, nil
}

// Advance executes one flow transition and its side effect. At the
// check-in step the gate verdict decides the event, so callers send a
// plain advance with the state payload and the service substitutes
// gate_open or gate_blocked.
func (s *ritualFlowService) Advance(ctx context.Context, userID uuid.UUID, step ritual.Step, event ritual.Event, payload FlowPayload) (*FlowState, error) {
  result := &FlowState{}

  if step == ritual.StepCheckIn && event == ritual.EventAdvance {
    if payload.State == nil {
      return nil, fmt.Errorf("check-in requires a state payload")
    }
    checkIn, err := s.checkIn.CheckIn(ctx, userID, *payload.State, payload.ContextDump)
    if err != nil {
      return nil, err
    }
    result.CheckIn = checkIn
    if checkIn.Gate.GateStatus == GateOpen {
      event = ritual.EventGateOpen
    } else {
      event = ritual.EventGateBlocked
    }
  }

  next, effect, err := ritual.Advance(step, event)
  if err != nil {
    return nil, err
  }
  result.Step = next

  // Leaving the visualization step records whether it was done.
  if step == ritual.StepFutureSelfViz && payload.SessionID != nil {
    session, err := s.meditation.SetVisualization(ctx, userID, *payload.SessionID, event == ritual.EventAdvance)
    if err != nil {
      return nil, err
    }
    result.Session = session
  }

  // Confirming the extraction review is the only point where extracted
  // loops are persisted and identity updates are merged. Items the user
  // did not confirm are discarded.
  if step == ritual.StepExtractionReview && event == ritual.EventAdvance && payload.Confirmed != nil {
    if _, err := s.loops.CreateFromExtraction(ctx, userID, "meditation", payload.Confirmed.Loops); err != nil {
      return nil, err
    }
    if _, err := s.identity.MergeConfirmedExtraction(ctx, userID, payload.Confirmed); err != nil {
      return nil, err
    }
  }

  if err := s.runEffect(ctx, userID, effect, event, payload, result); err != nil {
    return nil, err
  }

  // Landing on the guidance step always means guidance exists after the
  // transition, regardless of which edge led here.
  if next == ritual.StepGuidance {
    if err := s.ensureGuidance(ctx, userID, payload, result); err != nil {
      return nil, err
    }
  }
  return result, nil
}

func (s *ritualFlowService) runEffect(ctx context.Context, userID uuid.UUID, effect ritual.Effect, event ritual.Event, payload FlowPayload, result *FlowState) error {
  switch effect {
  case ritual.EffectNone, ritual.EffectEvaluateGate, ritual.EffectGenerateGuidance:
    // Gate evaluation happens before the transition; guidance is
    // ensured after it.
    return nil

  case ritual.EffectStartMeditation:
    session, err := s.meditation.Start(ctx, userID, payload.DurationSeconds, payload.BreathPattern, payload.State)
    if err != nil {
      return err
    }
    result.Session = session
    return nil

  case ritual.EffectCompleteMeditation:
    if payload.SessionID == nil {
      return fmt.Errorf("session_id is required to complete meditation")
    }
    session, err := s.meditation.Complete(ctx, userID, *payload.SessionID, "")
    if err != nil {
      return err
    }
    result.Session = session
    return nil

  case ritual.EffectRecordPostState:
    if payload.SessionID == nil || payload.State == nil {
      return fmt.Errorf("session_id and state are required to record the post-meditation state")
    }
    session, err := s.meditation.RecordPostState(ctx, userID, *payload.SessionID, *payload.State)
    if err != nil {
      return err
    }
    result.Session = session
    return nil

  case ritual.EffectRunExtraction:
    // Nothing beyond the session snapshot is persisted here; loops and
    // identity updates wait for the review confirmation.
    extracted, err := s.extraction.ExtractPostMeditation(ctx, userID, payload.BrainDump)
    if err != nil {
      return err
    }
    result.Extraction = extracted
    if payload.SessionID != nil {
      if _, err := s.meditation.Complete(ctx, userID, *payload.SessionID, payload.BrainDump); err != nil {
        return err
      }
      session, err := s.meditation.AttachExtraction(ctx, userID, *payload.SessionID, extracted)
      if err != nil {
        return err
      }
      result.Session = session
    }
    return nil

  case ritual.EffectGenerateEmbodiment:
    extracted := payload.Confirmed
    if extracted == nil {
      extracted = result.Extraction
    }
    if extracted == nil {
      var err error
      extracted, err = s.loadExtraction(ctx, userID, payload.SessionID)
      if err != nil {
        return err
      }
    }
    embodimentEvent, err := s.embodiment.Generate(ctx, userID, payload.SessionID, extracted)
    if err != nil {
      return err
    }
    result.Embodiment = embodimentEvent
    return nil

  case ritual.EffectCompleteEmbodiment:
    if payload.EmbodimentEventID == nil {
      return fmt.Errorf("embodiment_event_id is required")
    }
    completion := EmbodimentCompletion{}
    if payload.Completion != nil {
      completion = *payload.Completion
    }
    embodimentEvent, err := s.embodiment.Complete(ctx, userID, *payload.EmbodimentEventID, completion)
    if err != nil {
      return err
    }
    result.Embodiment = embodimentEvent
    return nil

  case ritual.EffectSkipEmbodiment:
    if payload.EmbodimentEventID == nil {
      return nil
    }
    embodimentEvent, err := s.embodiment.Complete(ctx, userID, *payload.EmbodimentEventID, EmbodimentCompletion{Skipped: true})
    if err != nil {
      return err
    }
    result.Embodiment = embodimentEvent
    return nil

  case ritual.EffectStartPractice:
    today, err := s.checkIn.Today(ctx, userID)
    if err != nil {
      return err
    }
    if today == nil || today.RecommendedPracticeID == nil {
      return fmt.Errorf("no recommended practice to start")
    }
    preState := &GateInput{Mental: today.Mental, Emotional: today.Emotional, Physical: today.Physical}
    practiceEvent, err := s.checkIn.StartPractice(ctx, userID, *today.RecommendedPracticeID, &today.ID, preState)
    if err != nil {
      return err
    }
    result.PracticeEvent = practiceEvent
    return nil

  case ritual.EffectSkipPractice:
    if payload.PracticeEventID == nil {
      return nil
    }
    practiceEvent, err := s.checkIn.CompletePractice(ctx, userID, *payload.PracticeEventID, "", true)
    if err != nil {
      return err
    }
    result.PracticeEvent = practiceEvent
    return nil

  case ritual.EffectCompletePractice:
    if payload.PracticeEventID == nil {
      return fmt.Errorf("practice_event_id is required")
    }
    practiceEvent, err := s.checkIn.CompletePractice(ctx, userID, *payload.PracticeEventID, payload.PostShift, event == ritual.EventSkip)
    if err != nil {
      return err
    }
    result.PracticeEvent = practiceEvent
    return nil

  default:
    return fmt.Errorf("unhandled flow effect %q", effect)
  }
}

func (s *ritualFlowService) loadExtraction(ctx context.Context, userID uuid.UUID, sessionID *uuid.UUID) (*ExtractionResult, error) {
  if sessionID == nil {
    return nil, nil
  }
  session, err := s.meditation.Get(ctx, userID, *sessionID)
  if err != nil {
    return nil, err
  }
  if len(session.Extraction) == 0 {
    return nil, nil
  }
  var extracted ExtractionResult
  if err := json.Unmarshal(session.Extraction, &extracted); err != nil {
    s.log.Warn("Stored extraction unparseable, regenerating from empty", "error", err)
    return nil, nil
  }
  return &extracted, nil
}

// ensureGuidance loads or generates today's guidance from the persisted
// daily state. The post-practice shift and any completed embodiment from
// today are folded into the context the engine sees.
func (s *ritualFlowService) ensureGuidance(ctx context.Context, userID uuid.UUID, payload FlowPayload, result *FlowState) error {
  today, err := s.checkIn.Today(ctx, userID)
  if err != nil {
    return err
  }
  if today == nil {
    return fmt.Errorf("no daily state recorded for today")
  }

  embodied := result.Embodiment
  if embodied == nil {
    from, to, err := s.dayBounds(ctx, userID)
    if err != nil {
      return err
    }
    embodied, err = s.embodimentRepo.GetLatestCompletedInRange(ctx, nil, userID, from, to)
    if err != nil {
      return err
    }
  }

  req := GuidanceRequest{
    State: GateInput{
      Mental:    today.Mental,
      Emotional: today.Emotional,
      Physical:  today.Physical,
    },
    GateStatus:            today.GateStatus,
    PostPracticeShift:     payload.PostShift,
    ContextDump:           today.ContextDump,
    PostEmbodimentContext: formatPostEmbodimentContext(embodied),
  }
  guidanceEvent, cached, err := s.guidance.GenerateToday(ctx, userID, req)
  if err != nil {
    return err
  }
  result.Guidance = guidanceEvent
  result.GuidanceCached = cached
  return nil
}
