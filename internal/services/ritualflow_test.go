package services

import (
  "context"
  "testing"

  "github.com/google/uuid"

  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/ritual"
  "github.com/yungbote/coherence-backend/internal/types"
)

type stubMeditationService struct {
  session *types.MeditationSession
}

func (s *stubMeditationService) Start(ctx context.Context, userID uuid.UUID, durationSeconds int, breathPattern string, preState *GateInput) (*types.MeditationSession, error) {
  return s.session, nil
}

func (s *stubMeditationService) SetVisualization(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, did bool) (*types.MeditationSession, error) {
  return s.session, nil
}

func (s *stubMeditationService) Complete(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, brainDumpRaw string) (*types.MeditationSession, error) {
  return s.session, nil
}

func (s *stubMeditationService) RecordPostState(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, postState GateInput) (*types.MeditationSession, error) {
  return s.session, nil
}

func (s *stubMeditationService) AttachExtraction(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, extraction *ExtractionResult) (*types.MeditationSession, error) {
  return s.session, nil
}

func (s *stubMeditationService) Get(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) (*types.MeditationSession, error) {
  return s.session, nil
}

type stubExtractionService struct {
  result *ExtractionResult
}

func (s *stubExtractionService) ExtractBrainDump(ctx context.Context, userID uuid.UUID, content string) (*ExtractionResult, error) {
  return s.result, nil
}

func (s *stubExtractionService) ExtractPostMeditation(ctx context.Context, userID uuid.UUID, content string) (*ExtractionResult, error) {
  return s.result, nil
}

type stubEmbodimentService struct {
  generateCalls       int
  generatedSessionID  *uuid.UUID
  generatedExtraction *ExtractionResult
  event               *types.EmbodimentEvent
}

func (s *stubEmbodimentService) Generate(ctx context.Context, userID uuid.UUID, sessionID *uuid.UUID, extraction *ExtractionResult) (*types.EmbodimentEvent, error) {
  s.generateCalls++
  s.generatedSessionID = sessionID
  s.generatedExtraction = extraction
  return s.event, nil
}

func (s *stubEmbodimentService) Complete(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, completion EmbodimentCompletion) (*types.EmbodimentEvent, error) {
  return s.event, nil
}

type stubCheckInService struct{}

func (s *stubCheckInService) CheckIn(ctx context.Context, userID uuid.UUID, in GateInput, contextDump string) (*CheckInResult, error) {
  return nil, nil
}

func (s *stubCheckInService) Today(ctx context.Context, userID uuid.UUID) (*types.DailyState, error) {
  return nil, nil
}

func (s *stubCheckInService) ListPractices(ctx context.Context) ([]*types.Practice, error) {
  return nil, nil
}

func (s *stubCheckInService) StartPractice(ctx context.Context, userID uuid.UUID, practiceID uuid.UUID, dailyStateID *uuid.UUID, preState *GateInput) (*types.PracticeEvent, error) {
  return nil, nil
}

func (s *stubCheckInService) CompletePractice(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, postShift string, skipped bool) (*types.PracticeEvent, error) {
  return nil, nil
}

type stubGuidanceService struct{}

func (s *stubGuidanceService) GenerateToday(ctx context.Context, userID uuid.UUID, req GuidanceRequest) (*types.GuidanceEvent, bool, error) {
  return nil, false, nil
}

func (s *stubGuidanceService) GetToday(ctx context.Context, userID uuid.UUID) (*types.GuidanceEvent, error) {
  return nil, nil
}

func (s *stubGuidanceService) RecordReflection(ctx context.Context, userID uuid.UUID, guidanceEventID uuid.UUID, actionTaken bool, reflectionText, outcome string) (*types.ActionReflection, error) {
  return nil, nil
}

type stubLoopService struct {
  createCalls    int
  persistedLoops []ExtractionLoop
  source         string
}

func (s *stubLoopService) Create(ctx context.Context, userID uuid.UUID, in LoopCreate) (*types.OpenLoop, error) {
  return nil, nil
}

func (s *stubLoopService) CreateFromExtraction(ctx context.Context, userID uuid.UUID, source string, loops []ExtractionLoop) ([]*types.OpenLoop, error) {
  s.createCalls++
  s.source = source
  s.persistedLoops = append(s.persistedLoops, loops...)
  return []*types.OpenLoop{}, nil
}

func (s *stubLoopService) List(ctx context.Context, userID uuid.UUID, status string) ([]*types.OpenLoop, error) {
  return nil, nil
}

func (s *stubLoopService) Close(ctx context.Context, userID uuid.UUID, loopID uuid.UUID) (*types.OpenLoop, error) {
  return nil, nil
}

type stubIdentityService struct {
  mergeCalls int
  merged     *ExtractionResult
}

func (s *stubIdentityService) GetAnchor(ctx context.Context, userID uuid.UUID) (*types.IdentityAnchor, error) {
  return nil, nil
}

func (s *stubIdentityService) UpdateAnchor(ctx context.Context, userID uuid.UUID, update AnchorUpdate) (*types.IdentityAnchor, error) {
  return nil, nil
}

func (s *stubIdentityService) MergeConfirmedExtraction(ctx context.Context, userID uuid.UUID, extraction *ExtractionResult) (*types.IdentityAnchor, error) {
  s.mergeCalls++
  s.merged = extraction
  return nil, nil
}

func (s *stubIdentityService) ExtractIdentity(ctx context.Context, content string) (*IdentityExtraction, error) {
  return nil, nil
}

func (s *stubIdentityService) ExtractVision(ctx context.Context, content string) (*VisionExtraction, error) {
  return nil, nil
}

func (s *stubIdentityService) ExtractDomains(ctx context.Context, content string) (*DomainExtraction, error) {
  return nil, nil
}

func (s *stubIdentityService) ExtractLoops(ctx context.Context, userID uuid.UUID, content string) ([]ExtractionLoop, error) {
  return nil, nil
}

func (s *stubIdentityService) CompleteOnboarding(ctx context.Context, userID uuid.UUID, payload OnboardingPayload) (*types.IdentityAnchor, error) {
  return nil, nil
}

type flowFixture struct {
  flow       RitualFlowService
  meditation *stubMeditationService
  extraction *stubExtractionService
  embodiment *stubEmbodimentService
  loops      *stubLoopService
  identity   *stubIdentityService
}

func newFlowFixture(t *testing.T, extracted *ExtractionResult) *flowFixture {
  t.Helper()
  log, err := logger.New("test")
  if err != nil {
    t.Fatalf("failed to init logger: %v", err)
  }
  f := &flowFixture{
    meditation: &stubMeditationService{session: &types.MeditationSession{ID: uuid.New()}},
    extraction: &stubExtractionService{result: extracted},
    embodiment: &stubEmbodimentService{event: &types.EmbodimentEvent{ID: uuid.New()}},
    loops:      &stubLoopService{},
    identity:   &stubIdentityService{},
  }
  f.flow = NewRitualFlowService(log, nil, nil, f.meditation, f.extraction, f.embodiment, &stubCheckInService{}, &stubGuidanceService{}, f.loops, f.identity)
  return f
}

func TestFlowHoldsExtractionForReview(t *testing.T) {
  extracted := &ExtractionResult{
    Loops:   []ExtractionLoop{{Description: "email the investor", Confidence: 0.9}},
    Summary: "one commitment surfaced",
  }
  f := newFlowFixture(t, extracted)

  sessionID := uuid.New()
  state, err := f.flow.Advance(context.Background(), uuid.New(), ritual.StepPostMeditationDump, ritual.EventAdvance, FlowPayload{
    SessionID: &sessionID,
    BrainDump: "I still owe the investor an email",
  })
  if err != nil {
    t.Fatalf("Advance returned error: %v", err)
  }
  if state.Step != ritual.StepExtractionReview {
    t.Fatalf("Step = %s, want %s", state.Step, ritual.StepExtractionReview)
  }
  if state.Extraction == nil || len(state.Extraction.Loops) != 1 {
    t.Fatalf("expected the extraction returned for review, got %+v", state.Extraction)
  }
  if f.loops.createCalls != 0 {
    t.Fatalf("persisted %d loop batch(es) before the user confirmed anything", f.loops.createCalls)
  }
  if f.identity.mergeCalls != 0 {
    t.Fatalf("merged identity updates before the user confirmed anything")
  }
}

func TestFlowConfirmPersistsConfirmedItems(t *testing.T) {
  f := newFlowFixture(t, nil)

  sessionID := uuid.New()
  confirmed := &ExtractionResult{
    Loops:         []ExtractionLoop{{Description: "call the accountant", Confidence: 0.85}},
    EmotionShifts: []string{"Gratitude"},
  }
  state, err := f.flow.Advance(context.Background(), uuid.New(), ritual.StepExtractionReview, ritual.EventAdvance, FlowPayload{
    SessionID: &sessionID,
    Confirmed: confirmed,
  })
  if err != nil {
    t.Fatalf("Advance returned error: %v", err)
  }
  if state.Step != ritual.StepEmbodiment {
    t.Fatalf("Step = %s, want %s", state.Step, ritual.StepEmbodiment)
  }
  if f.loops.createCalls != 1 || len(f.loops.persistedLoops) != 1 {
    t.Fatalf("createCalls = %d with %d loops, want one batch with the confirmed loop", f.loops.createCalls, len(f.loops.persistedLoops))
  }
  if f.loops.persistedLoops[0].Description != "call the accountant" {
    t.Fatalf("persisted loop %q, want the confirmed one", f.loops.persistedLoops[0].Description)
  }
  if f.loops.source != "meditation" {
    t.Fatalf("loop source = %q, want meditation", f.loops.source)
  }
  if f.identity.mergeCalls != 1 || f.identity.merged != confirmed {
    t.Fatalf("expected exactly one identity merge with the confirmed extraction")
  }
  if f.embodiment.generateCalls != 1 {
    t.Fatalf("generateCalls = %d, want 1", f.embodiment.generateCalls)
  }
  if f.embodiment.generatedSessionID == nil || *f.embodiment.generatedSessionID != sessionID {
    t.Fatalf("embodiment generated without the session id")
  }
  if f.embodiment.generatedExtraction != confirmed {
    t.Fatalf("embodiment generated from something other than the confirmed extraction")
  }
}

func TestFlowConfirmWithoutPayloadPersistsNothing(t *testing.T) {
  f := newFlowFixture(t, nil)

  sessionID := uuid.New()
  state, err := f.flow.Advance(context.Background(), uuid.New(), ritual.StepExtractionReview, ritual.EventAdvance, FlowPayload{
    SessionID: &sessionID,
  })
  if err != nil {
    t.Fatalf("Advance returned error: %v", err)
  }
  if state.Step != ritual.StepEmbodiment {
    t.Fatalf("Step = %s, want %s", state.Step, ritual.StepEmbodiment)
  }
  if f.loops.createCalls != 0 {
    t.Fatalf("persisted loops although nothing was confirmed")
  }
  if f.identity.mergeCalls != 0 {
    t.Fatalf("merged identity updates although nothing was confirmed")
  }
  if f.embodiment.generateCalls != 1 {
    t.Fatalf("generateCalls = %d, want 1", f.embodiment.generateCalls)
  }
}
