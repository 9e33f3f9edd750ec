package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"

  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/repos"
  "github.com/yungbote/coherence-backend/internal/types"
)

type CheckInResult struct {
  DailyState          *types.DailyState `json:"daily_state"`
  Gate                GateResult        `json:"gate"`
  RecommendedPractice *types.Practice   `json:"recommended_practice,omitempty"`
}

type CheckInService interface {
  CheckIn(ctx context.Context, userID uuid.UUID, in GateInput, contextDump string) (*CheckInResult, error)
  Today(ctx context.Context, userID uuid.UUID) (*types.DailyState, error)
  ListPractices(ctx context.Context) ([]*types.Practice, error)
  StartPractice(ctx context.Context, userID uuid.UUID, practiceID uuid.UUID, dailyStateID *uuid.UUID, preState *GateInput) (*types.PracticeEvent, error)
  CompletePractice(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, postShift string, skipped bool) (*types.PracticeEvent, error)
}

type checkInService struct {
  log          *logger.Logger
  gate         StateGateService
  userRepo     repos.UserRepo
  stateRepo    repos.DailyStateRepo
  practiceRepo repos.PracticeRepo
  eventRepo    repos.PracticeEventRepo
}

func NewCheckInService(
  log *logger.Logger,
  gate StateGateService,
  userRepo repos.UserRepo,
  stateRepo repos.DailyStateRepo,
  practiceRepo repos.PracticeRepo,
  eventRepo repos.PracticeEventRepo,
) CheckInService {
  return &checkInService{
    log:          log.With("service", "CheckInService"),
    gate:         gate,
    userRepo:     userRepo,
    stateRepo:    stateRepo,
    practiceRepo: practiceRepo,
    eventRepo:    eventRepo,
  }
}

// userDate resolves today's date string in the user's timezone.
func (s *checkInService) userDate(ctx context.Context, userID uuid.UUID) (string, error) {
  loc := time.UTC
  users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return "", err
  }
  if len(users) == 1 && users[0].Timezone != "" {
    if parsed, err := time.LoadLocation(users[0].Timezone); err == nil {
      loc = parsed
    }
  }
  return time.Now().In(loc).Format("2006-01-02"), nil
}

// CheckIn evaluates the gate and records today's daily state. A repeated
// check-in on the same day overwrites the state and gate fields on the
// existing row rather than creating a second one.
func (s *checkInService) CheckIn(ctx context.Context, userID uuid.UUID, in GateInput, contextDump string) (*CheckInResult, error) {
  if err := in.Validate(); err != nil {
    return nil, err
  }

  gateResult, err := s.gate.Evaluate(ctx, in)
  if err != nil {
    return nil, err
  }

  date, err := s.userDate(ctx, userID)
  if err != nil {
    return nil, err
  }

  var practice *types.Practice
  if gateResult.RecommendedPractice != "" {
    practice, err = s.practiceRepo.GetByName(ctx, nil, gateResult.RecommendedPractice)
    if err != nil {
      return nil, fmt.Errorf("resolve recommended practice: %w", err)
    }
  }

  state := &types.DailyState{
    UserID:      userID,
    Date:        date,
    Physical:    in.Physical,
    Mental:      in.Mental,
    Emotional:   in.Emotional,
    ContextDump: contextDump,
    GateStatus:  gateResult.GateStatus,
  }
  if practice != nil {
    state.RecommendedPracticeID = &practice.ID
  }
  state.GateReasoning = gateResult.Reasoning

  row, err := s.stateRepo.FindOrCreateForDate(ctx, nil, state)
  if err != nil {
    return nil, fmt.Errorf("record daily state: %w", err)
  }

  fields := map[string]interface{}{
    "physical":       in.Physical,
    "mental":         in.Mental,
    "emotional":      in.Emotional,
    "gate_status":    gateResult.GateStatus,
    "gate_reasoning": gateResult.Reasoning,
  }
  if contextDump != "" {
    fields["context_dump"] = contextDump
  }
  if practice != nil {
    fields["recommended_practice_id"] = practice.ID
  }
  if err := s.stateRepo.UpdateFields(ctx, nil, row.ID, fields); err != nil {
    return nil, err
  }

  row, err = s.stateRepo.GetByUserDate(ctx, nil, userID, date)
  if err != nil {
    return nil, err
  }
  return &CheckInResult{DailyState: row, Gate: gateResult, RecommendedPractice: practice}, nil
}

func (s *checkInService) Today(ctx context.Context, userID uuid.UUID) (*types.DailyState, error) {
  date, err := s.userDate(ctx, userID)
  if err != nil {
    return nil, err
  }
  return s.stateRepo.GetByUserDate(ctx, nil, userID, date)
}

func (s *checkInService) ListPractices(ctx context.Context) ([]*types.Practice, error) {
  return s.practiceRepo.List(ctx, nil)
}

func (s *checkInService) StartPractice(ctx context.Context, userID uuid.UUID, practiceID uuid.UUID, dailyStateID *uuid.UUID, preState *GateInput) (*types.PracticeEvent, error) {
  practices, err := s.practiceRepo.GetByIDs(ctx, nil, []uuid.UUID{practiceID})
  if err != nil {
    return nil, err
  }
  if len(practices) == 0 {
    return nil, fmt.Errorf("practice not found")
  }

  event := &types.PracticeEvent{
    UserID:       userID,
    PracticeID:   practiceID,
    DailyStateID: dailyStateID,
  }
  if preState != nil {
    raw, err := json.Marshal(preState)
    if err != nil {
      return nil, err
    }
    event.PreState = datatypes.JSON(raw)
  }
  created, err := s.eventRepo.Create(ctx, nil, []*types.PracticeEvent{event})
  if err != nil {
    return nil, err
  }
  return created[0], nil
}

func (s *checkInService) CompletePractice(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, postShift string, skipped bool) (*types.PracticeEvent, error) {
  events, err := s.eventRepo.GetByIDs(ctx, nil, []uuid.UUID{eventID})
  if err != nil {
    return nil, err
  }
  if len(events) != 1 || events[0].UserID != userID {
    return nil, fmt.Errorf("practice event not found")
  }

  fields := map[string]interface{}{
    "completed": !skipped,
    "skipped":   skipped,
  }
  if postShift != "" {
    fields["post_shift"] = postShift
  }
  if err := s.eventRepo.UpdateFields(ctx, nil, eventID, fields); err != nil {
    return nil, err
  }
  refreshed, err := s.eventRepo.GetByIDs(ctx, nil, []uuid.UUID{eventID})
  if err != nil {
    return nil, err
  }
  return refreshed[0], nil
}
