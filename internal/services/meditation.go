package services

import (
  "context"
  "encoding/json"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/datatypes"

  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/repos"
  "github.com/yungbote/coherence-backend/internal/types"
)

type MeditationService interface {
  Start(ctx context.Context, userID uuid.UUID, durationSeconds int, breathPattern string, preState *GateInput) (*types.MeditationSession, error)
  SetVisualization(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, did bool) (*types.MeditationSession, error)
  Complete(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, brainDumpRaw string) (*types.MeditationSession, error)
  RecordPostState(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, postState GateInput) (*types.MeditationSession, error)
  AttachExtraction(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, extraction *ExtractionResult) (*types.MeditationSession, error)
  Get(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) (*types.MeditationSession, error)
}

type meditationService struct {
  log         *logger.Logger
  sessionRepo repos.MeditationSessionRepo
}

func NewMeditationService(log *logger.Logger, sessionRepo repos.MeditationSessionRepo) MeditationService {
  return &meditationService{
    log:         log.With("service", "MeditationService"),
    sessionRepo: sessionRepo,
  }
}

func (s *meditationService) Start(ctx context.Context, userID uuid.UUID, durationSeconds int, breathPattern string, preState *GateInput) (*types.MeditationSession, error) {
  if durationSeconds <= 0 {
    durationSeconds = 600
  }
  session := &types.MeditationSession{
    UserID:          userID,
    DurationSeconds: durationSeconds,
    BreathPattern:   breathPattern,
  }
  if preState != nil {
    raw, err := json.Marshal(preState)
    if err != nil {
      return nil, err
    }
    session.PreState = datatypes.JSON(raw)
  }
  return s.sessionRepo.Create(ctx, nil, session)
}

func (s *meditationService) Complete(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, brainDumpRaw string) (*types.MeditationSession, error) {
  session, err := s.Get(ctx, userID, sessionID)
  if err != nil {
    return nil, err
  }

  fields := map[string]interface{}{
    "completed": true,
  }
  if brainDumpRaw != "" {
    fields["brain_dump_raw"] = brainDumpRaw
  }
  if err := s.sessionRepo.UpdateFields(ctx, nil, session.ID, fields); err != nil {
    return nil, err
  }
  return s.Get(ctx, userID, sessionID)
}

func (s *meditationService) SetVisualization(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, did bool) (*types.MeditationSession, error) {
  session, err := s.Get(ctx, userID, sessionID)
  if err != nil {
    return nil, err
  }
  if err := s.sessionRepo.UpdateFields(ctx, nil, session.ID, map[string]interface{}{
    "did_visualization": did,
  }); err != nil {
    return nil, err
  }
  return s.Get(ctx, userID, sessionID)
}

func (s *meditationService) RecordPostState(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, postState GateInput) (*types.MeditationSession, error) {
  session, err := s.Get(ctx, userID, sessionID)
  if err != nil {
    return nil, err
  }

  raw, err := json.Marshal(postState)
  if err != nil {
    return nil, err
  }
  if err := s.sessionRepo.UpdateFields(ctx, nil, session.ID, map[string]interface{}{
    "post_state": datatypes.JSON(raw),
  }); err != nil {
    return nil, err
  }
  return s.Get(ctx, userID, sessionID)
}

func (s *meditationService) AttachExtraction(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, extraction *ExtractionResult) (*types.MeditationSession, error) {
  session, err := s.Get(ctx, userID, sessionID)
  if err != nil {
    return nil, err
  }

  raw, err := json.Marshal(extraction)
  if err != nil {
    return nil, err
  }
  if err := s.sessionRepo.UpdateFields(ctx, nil, session.ID, map[string]interface{}{
    "extraction": datatypes.JSON(raw),
  }); err != nil {
    return nil, err
  }
  return s.Get(ctx, userID, sessionID)
}

func (s *meditationService) Get(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) (*types.MeditationSession, error) {
  session, err := s.sessionRepo.GetByID(ctx, nil, sessionID)
  if err != nil {
    return nil, err
  }
  if session == nil || session.UserID != userID {
    return nil, fmt.Errorf("meditation session not found")
  }
  return session, nil
}
