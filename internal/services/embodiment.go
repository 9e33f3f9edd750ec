package services

import (
  "context"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/repos"
  "github.com/yungbote/coherence-backend/internal/types"
)

type EmbodimentDirective struct {
  EmbodimentText           string `json:"embodimentText"`
  TargetEmotion            string `json:"targetEmotion"`
  TargetOutcome            string `json:"targetOutcome"`
  SuggestedDurationMinutes int    `json:"suggestedDurationMinutes"`
  Reasoning                string `json:"reasoning"`
}

type EmbodimentCompletion struct {
  FeltShift             string `json:"felt_shift"`
  ActualDurationSeconds int    `json:"actual_duration_seconds"`
  Skipped               bool   `json:"skipped"`
}

type EmbodimentService interface {
  Generate(ctx context.Context, userID uuid.UUID, sessionID *uuid.UUID, extraction *ExtractionResult) (*types.EmbodimentEvent, error)
  Complete(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, completion EmbodimentCompletion) (*types.EmbodimentEvent, error)
}

type embodimentService struct {
  log        *logger.Logger
  ai         AIClient
  anchorRepo repos.IdentityAnchorRepo
  loopRepo   repos.OpenLoopRepo
  eventRepo  repos.EmbodimentEventRepo
}

func NewEmbodimentService(log *logger.Logger, ai AIClient, anchorRepo repos.IdentityAnchorRepo, loopRepo repos.OpenLoopRepo, eventRepo repos.EmbodimentEventRepo) EmbodimentService {
  return &embodimentService{
    log:        log.With("service", "EmbodimentService"),
    ai:         ai,
    anchorRepo: anchorRepo,
    loopRepo:   loopRepo,
    eventRepo:  eventRepo,
  }
}

// Generate produces today's embodiment directive and persists it against
// the meditation session it came from. The fallback chain is model reply,
// then the extraction's own suggestion, then a generic grounding directive.
func (s *embodimentService) Generate(ctx context.Context, userID uuid.UUID, sessionID *uuid.UUID, extraction *ExtractionResult) (*types.EmbodimentEvent, error) {
  if extraction == nil {
    extraction = EmptyExtraction(EmptyDumpSummary)
  }

  anchor, err := s.anchorRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("load identity anchor: %w", err)
  }
  loops, err := s.loopRepo.GetByUserID(ctx, nil, userID, "open")
  if err != nil {
    return nil, fmt.Errorf("load open loops: %w", err)
  }

  directive := s.generateDirective(ctx, anchor, extraction, loops)

  event := &types.EmbodimentEvent{
    UserID:              userID,
    MeditationSessionID: sessionID,
    DirectiveText:   directive.EmbodimentText,
    Emotion:         directive.TargetEmotion,
    Outcome:         directive.TargetOutcome,
    DurationMinutes: directive.SuggestedDurationMinutes,
    Reasoning:       directive.Reasoning,
  }
  created, err := s.eventRepo.Create(ctx, nil, event)
  if err != nil {
    return nil, fmt.Errorf("persist embodiment event: %w", err)
  }
  return created, nil
}

func (s *embodimentService) generateDirective(ctx context.Context, anchor *types.IdentityAnchor, extraction *ExtractionResult, loops []*types.OpenLoop) EmbodimentDirective {
  prompt := strings.NewReplacer(
    "{future_vision}", anchorVision(anchor),
    "{elevated_emotions}", anchorEmotions(anchor),
    "{vision_updates}", formatVisionUpdates(extraction.VisionUpdates),
    "{key_loops}", formatKeyLoops(loops),
    "{extraction_summary}", extraction.Summary,
    "{embodiment_suggestion}", formatSuggestionContext(extraction.EmbodimentSuggestion),
  ).Replace(embodimentGuidancePrompt)

  raw, err := s.ai.Complete(ctx, TierDeep, prompt, "Generate the embodiment guidance based on the meditation extraction and user context.", 512)
  if err != nil {
    s.log.Warn("Embodiment model call failed, using fallback", "error", err)
    return FallbackEmbodiment(extraction.EmbodimentSuggestion)
  }

  var directive EmbodimentDirective
  if err := DecodeModelJSON(raw, &directive); err != nil {
    s.log.Warn("Embodiment model reply unparseable, using fallback", "error", err)
    return FallbackEmbodiment(extraction.EmbodimentSuggestion)
  }
  if directive.SuggestedDurationMinutes <= 0 {
    directive.SuggestedDurationMinutes = 15
  }
  if directive.EmbodimentText == "" || directive.TargetEmotion == "" {
    return FallbackEmbodiment(extraction.EmbodimentSuggestion)
  }
  return directive
}

func (s *embodimentService) Complete(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, completion EmbodimentCompletion) (*types.EmbodimentEvent, error) {
  event, err := s.eventRepo.GetByID(ctx, nil, eventID)
  if err != nil {
    return nil, err
  }
  if event == nil || event.UserID != userID {
    return nil, fmt.Errorf("embodiment event not found")
  }

  fields := map[string]interface{}{
    "felt_shift":              completion.FeltShift,
    "actual_duration_seconds": completion.ActualDurationSeconds,
    "skipped":                 completion.Skipped,
    "completed":               true,
  }
  if err := s.eventRepo.UpdateFields(ctx, nil, eventID, fields); err != nil {
    return nil, err
  }
  return s.eventRepo.GetByID(ctx, nil, eventID)
}
