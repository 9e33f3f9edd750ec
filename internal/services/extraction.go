package services

import (
  "context"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/repos"
)

// LoopPersistenceThreshold is the inclusive confidence floor for writing
// an extracted loop to storage.
const LoopPersistenceThreshold = 0.7

type ExtractionLoop struct {
  Description       string  `json:"description"`
  Category          string  `json:"category,omitempty"`
  Type              string  `json:"type,omitempty"`
  CommitmentType    string  `json:"commitmentType,omitempty"`
  ExternalParty     string  `json:"externalParty,omitempty"`
  CognitivePull     int     `json:"cognitivePull,omitempty"`
  FromElevatedState bool    `json:"fromElevatedState,omitempty"`
  Impact            float64 `json:"impact,omitempty"`
  Confidence        float64 `json:"confidence"`
  Ease              float64 `json:"ease,omitempty"`
  IceScore          float64 `json:"iceScore,omitempty"`
  Reasoning         string  `json:"reasoning,omitempty"`
}

type VisionUpdate struct {
  Type      string `json:"type"`
  Content   string `json:"content"`
  Reasoning string `json:"reasoning"`
}

type IdentityInsight struct {
  Type      string `json:"type"`
  Content   string `json:"content"`
  Reasoning string `json:"reasoning"`
}

type EmbodimentSuggestion struct {
  Emotion                  string `json:"emotion"`
  Context                  string `json:"context"`
  SuggestedDurationMinutes int    `json:"suggestedDurationMinutes"`
}

// ExtractionResult is shared by both extraction modes. Brain dump runs
// fill IceScore and TopPriority; post-meditation runs fill CoherenceLevel.
type ExtractionResult struct {
  Loops                []ExtractionLoop      `json:"loops"`
  VisionUpdates        []VisionUpdate        `json:"visionUpdates"`
  EmotionShifts        []string              `json:"emotionShifts"`
  PatternsReleasing    []string              `json:"patternsReleasing"`
  IdentityInsights     []IdentityInsight     `json:"identityInsights"`
  EmbodimentSuggestion *EmbodimentSuggestion `json:"embodimentSuggestion,omitempty"`
  Summary              string                `json:"summary"`
  TopPriority          string                `json:"topPriority,omitempty"`
  CoherenceLevel       string                `json:"coherenceLevel,omitempty"`
}

// IceScore computes the combined priority score on the 1-10 scales.
func IceScore(impact, confidence, ease float64) float64 {
  return impact * confidence * ease / 10
}

// FilterConfidentLoops keeps loops at or above the persistence threshold.
func FilterConfidentLoops(loops []ExtractionLoop) []ExtractionLoop {
  kept := []ExtractionLoop{}
  for _, loop := range loops {
    if loop.Confidence >= LoopPersistenceThreshold {
      kept = append(kept, loop)
    }
  }
  return kept
}

type ExtractionService interface {
  ExtractBrainDump(ctx context.Context, userID uuid.UUID, content string) (*ExtractionResult, error)
  ExtractPostMeditation(ctx context.Context, userID uuid.UUID, content string) (*ExtractionResult, error)
}

type extractionService struct {
  log        *logger.Logger
  ai         AIClient
  anchorRepo repos.IdentityAnchorRepo
  domainRepo repos.DomainRepo
  loopRepo   repos.OpenLoopRepo
}

func NewExtractionService(log *logger.Logger, ai AIClient, anchorRepo repos.IdentityAnchorRepo, domainRepo repos.DomainRepo, loopRepo repos.OpenLoopRepo) ExtractionService {
  return &extractionService{
    log:        log.With("service", "ExtractionService"),
    ai:         ai,
    anchorRepo: anchorRepo,
    domainRepo: domainRepo,
    loopRepo:   loopRepo,
  }
}

type postMeditationReply struct {
  OpenLoops []struct {
    Description       string  `json:"description"`
    CommitmentType    string  `json:"commitmentType"`
    ExternalParty     string  `json:"externalParty"`
    CognitivePull     int     `json:"cognitivePull"`
    FromElevatedState bool    `json:"fromElevatedState"`
    Confidence        float64 `json:"confidence"`
  } `json:"openLoops"`
  VisionUpdates        []VisionUpdate        `json:"visionUpdates"`
  EmotionShifts        []string              `json:"emotionShifts"`
  PatternsReleasing    []string              `json:"patternsReleasing"`
  IdentityInsights     []IdentityInsight     `json:"identityInsights"`
  EmbodimentSuggestion *EmbodimentSuggestion `json:"embodimentSuggestion"`
  Summary              string                `json:"summary"`
  CoherenceLevel       string                `json:"coherenceLevel"`
}

func (s *extractionService) ExtractPostMeditation(ctx context.Context, userID uuid.UUID, content string) (*ExtractionResult, error) {
  if strings.TrimSpace(content) == "" {
    return EmptyExtraction(EmptyDumpSummary), nil
  }

  anchor, err := s.anchorRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("load identity anchor: %w", err)
  }
  loops, err := s.loopRepo.GetByUserID(ctx, nil, userID, "open")
  if err != nil {
    return nil, fmt.Errorf("load open loops: %w", err)
  }

  prompt := strings.NewReplacer(
    "{identity_anchor}", formatAnchorContext(anchor),
    "{future_vision}", anchorVision(anchor),
    "{elevated_emotions}", anchorEmotions(anchor),
    "{leaving_behind}", anchorLeaving(anchor),
    "{open_loops}", formatLoopContext(loops),
  ).Replace(postMeditationExtractionPrompt)

  raw, err := s.ai.Complete(ctx, TierDeep, prompt, "Post-meditation brain dump:\n\n"+content, 1024)
  if err != nil {
    return nil, err
  }

  var reply postMeditationReply
  if err := DecodeModelJSON(raw, &reply); err != nil {
    s.log.Warn("Post-meditation extraction unparseable", "error", err)
    return UnparsedExtraction(), nil
  }

  result := EmptyExtraction("Meditation insights processed.")
  for _, loop := range reply.OpenLoops {
    result.Loops = append(result.Loops, ExtractionLoop{
      Description:       loop.Description,
      CommitmentType:    loop.CommitmentType,
      ExternalParty:     loop.ExternalParty,
      CognitivePull:     loop.CognitivePull,
      FromElevatedState: loop.FromElevatedState,
      Confidence:        loop.Confidence,
    })
  }
  if reply.VisionUpdates != nil {
    result.VisionUpdates = reply.VisionUpdates
  }
  if reply.EmotionShifts != nil {
    result.EmotionShifts = reply.EmotionShifts
  }
  if reply.PatternsReleasing != nil {
    result.PatternsReleasing = reply.PatternsReleasing
  }
  if reply.IdentityInsights != nil {
    result.IdentityInsights = reply.IdentityInsights
  }
  result.EmbodimentSuggestion = reply.EmbodimentSuggestion
  if reply.Summary != "" {
    result.Summary = reply.Summary
  }
  if reply.CoherenceLevel != "" {
    result.CoherenceLevel = reply.CoherenceLevel
  }
  return result, nil
}

type brainDumpReply struct {
  Loops []struct {
    Description string  `json:"description"`
    Category    string  `json:"category"`
    Type        string  `json:"type"`
    Impact      float64 `json:"impact"`
    Confidence  float64 `json:"confidence"`
    Ease        float64 `json:"ease"`
    IceScore    float64 `json:"iceScore"`
    Reasoning   string  `json:"reasoning"`
  } `json:"loops"`
  IdentityInsights []IdentityInsight `json:"identityInsights"`
  Summary          string            `json:"summary"`
  TopPriority      string            `json:"topPriority"`
}

func (s *extractionService) ExtractBrainDump(ctx context.Context, userID uuid.UUID, content string) (*ExtractionResult, error) {
  if strings.TrimSpace(content) == "" {
    return nil, fmt.Errorf("content is required")
  }

  anchor, err := s.anchorRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("load identity anchor: %w", err)
  }
  userDomains, err := s.domainRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("load domains: %w", err)
  }

  prompt := strings.Replace(brainDumpExtractionPrompt, "{user_context}", buildBrainDumpContext(anchor, userDomains), 1)

  raw, err := s.ai.Complete(ctx, TierDeep, prompt, "Here's my brain dump:\n\n"+content, 2048)
  if err != nil {
    return nil, err
  }

  var reply brainDumpReply
  if err := DecodeModelJSON(raw, &reply); err != nil {
    s.log.Warn("Brain dump extraction unparseable", "error", err)
    return UnparsedExtraction(), nil
  }

  result := EmptyExtraction("Brain dump processed.")
  result.CoherenceLevel = ""
  for _, loop := range reply.Loops {
    ice := loop.IceScore
    if ice == 0 {
      ice = IceScore(loop.Impact, loop.Confidence, loop.Ease)
    }
    result.Loops = append(result.Loops, ExtractionLoop{
      Description: loop.Description,
      Category:    loop.Category,
      Type:        loop.Type,
      Impact:      loop.Impact,
      Confidence:  loop.Confidence,
      Ease:        loop.Ease,
      IceScore:    ice,
      Reasoning:   loop.Reasoning,
    })
  }
  if reply.IdentityInsights != nil {
    result.IdentityInsights = reply.IdentityInsights
  }
  if reply.Summary != "" {
    result.Summary = reply.Summary
  }
  result.TopPriority = reply.TopPriority
  return result, nil
}
