package services

import (
  "context"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/repos"
  "github.com/yungbote/coherence-backend/internal/types"
)

type LoopCreate struct {
  Description    string     `json:"description"`
  Source         string     `json:"source"`
  CommitmentType string     `json:"commitment_type"`
  ExternalParty  string     `json:"external_party"`
  Deadline       *time.Time `json:"deadline"`
  CognitivePull  int        `json:"cognitive_pull"`
  DomainName     string     `json:"domain_name"`
  ImpactScore    float64    `json:"impact_score"`
  ConfidenceScore float64   `json:"confidence_score"`
  EaseScore      float64    `json:"ease_score"`
}

type LoopService interface {
  Create(ctx context.Context, userID uuid.UUID, in LoopCreate) (*types.OpenLoop, error)
  CreateFromExtraction(ctx context.Context, userID uuid.UUID, source string, loops []ExtractionLoop) ([]*types.OpenLoop, error)
  List(ctx context.Context, userID uuid.UUID, status string) ([]*types.OpenLoop, error)
  Close(ctx context.Context, userID uuid.UUID, loopID uuid.UUID) (*types.OpenLoop, error)
}

type loopService struct {
  log        *logger.Logger
  loopRepo   repos.OpenLoopRepo
  domainRepo repos.DomainRepo
}

func NewLoopService(log *logger.Logger, loopRepo repos.OpenLoopRepo, domainRepo repos.DomainRepo) LoopService {
  return &loopService{
    log:        log.With("service", "LoopService"),
    loopRepo:   loopRepo,
    domainRepo: domainRepo,
  }
}

func (s *loopService) Create(ctx context.Context, userID uuid.UUID, in LoopCreate) (*types.OpenLoop, error) {
  if strings.TrimSpace(in.Description) == "" {
    return nil, fmt.Errorf("description is required")
  }
  source := in.Source
  if source == "" {
    source = "manual"
  }
  pull := in.CognitivePull
  if pull < 1 || pull > 5 {
    pull = 3
  }

  loop := &types.OpenLoop{
    UserID:          userID,
    Description:     strings.TrimSpace(in.Description),
    Status:          "open",
    Source:          source,
    CommitmentType:  in.CommitmentType,
    ExternalParty:   in.ExternalParty,
    Deadline:        in.Deadline,
    CognitivePull:   pull,
    ImpactScore:     in.ImpactScore,
    ConfidenceScore: in.ConfidenceScore,
    EaseScore:       in.EaseScore,
  }
  if in.ImpactScore > 0 && in.ConfidenceScore > 0 && in.EaseScore > 0 {
    loop.IceScore = IceScore(in.ImpactScore, in.ConfidenceScore, in.EaseScore)
  }

  if name := strings.TrimSpace(in.DomainName); name != "" {
    domain, err := s.domainRepo.FindOrCreateByName(ctx, nil, userID, name)
    if err != nil {
      return nil, fmt.Errorf("resolve domain: %w", err)
    }
    loop.DomainID = &domain.ID
  }

  created, err := s.loopRepo.Create(ctx, nil, []*types.OpenLoop{loop})
  if err != nil {
    return nil, err
  }
  return created[0], nil
}

// CreateFromExtraction persists confirmed extracted loops at or above the
// confidence threshold.
func (s *loopService) CreateFromExtraction(ctx context.Context, userID uuid.UUID, source string, loops []ExtractionLoop) ([]*types.OpenLoop, error) {
  rows := []*types.OpenLoop{}
  for _, loop := range FilterConfidentLoops(loops) {
    pull := loop.CognitivePull
    if pull < 1 || pull > 5 {
      pull = 3
    }
    row := &types.OpenLoop{
      UserID:          userID,
      Description:     loop.Description,
      Status:          "open",
      Source:          source,
      CommitmentType:  loop.CommitmentType,
      ExternalParty:   loop.ExternalParty,
      CognitivePull:   pull,
      ImpactScore:     loop.Impact,
      ConfidenceScore: loop.Confidence,
      EaseScore:       loop.Ease,
      IceScore:        loop.IceScore,
    }
    if name := strings.TrimSpace(loop.Category); name != "" {
      domain, err := s.domainRepo.FindOrCreateByName(ctx, nil, userID, name)
      if err != nil {
        return nil, fmt.Errorf("resolve domain: %w", err)
      }
      row.DomainID = &domain.ID
    }
    rows = append(rows, row)
  }
  return s.loopRepo.Create(ctx, nil, rows)
}

func (s *loopService) List(ctx context.Context, userID uuid.UUID, status string) ([]*types.OpenLoop, error) {
  return s.loopRepo.GetByUserID(ctx, nil, userID, status)
}

// Close marks a loop closed. Loops are never hard-deleted.
func (s *loopService) Close(ctx context.Context, userID uuid.UUID, loopID uuid.UUID) (*types.OpenLoop, error) {
  loops, err := s.loopRepo.GetByIDs(ctx, nil, []uuid.UUID{loopID})
  if err != nil {
    return nil, err
  }
  if len(loops) != 1 || loops[0].UserID != userID {
    return nil, fmt.Errorf("loop not found")
  }
  if loops[0].Status == "closed" {
    return loops[0], nil
  }

  now := time.Now()
  fields := map[string]interface{}{
    "status":    "closed",
    "closed_at": &now,
  }
  if err := s.loopRepo.UpdateFields(ctx, nil, loopID, fields); err != nil {
    return nil, err
  }
  updated, err := s.loopRepo.GetByIDs(ctx, nil, []uuid.UUID{loopID})
  if err != nil {
    return nil, err
  }
  return updated[0], nil
}
