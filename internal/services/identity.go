package services

import (
  "context"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/normalization"
  "github.com/yungbote/coherence-backend/internal/repos"
  "github.com/yungbote/coherence-backend/internal/types"
)

// ElevatedEmotionVocabulary is the fixed set an anchor's elevated_emotions
// may contain. Merges drop anything outside it.
var ElevatedEmotionVocabulary = []string{
  "gratitude", "joy", "love", "freedom", "peace", "empowerment",
  "confidence", "creativity", "connection", "clarity", "trust", "abundance",
}

func inEmotionVocabulary(emotion string) bool {
  normalized := normalization.ParseInputString(emotion)
  for _, allowed := range ElevatedEmotionVocabulary {
    if normalized == allowed {
      return true
    }
  }
  return false
}

type AnchorUpdate struct {
  CoreIdentity      *string  `json:"core_identity"`
  PrimaryConstraint *string  `json:"primary_constraint"`
  DecisionFilter    *string  `json:"decision_filter"`
  AntiPatterns      []string `json:"anti_patterns"`
  CurrentPhase      *string  `json:"current_phase"`
  FutureVision      *string  `json:"future_vision"`
  ElevatedEmotions  []string `json:"elevated_emotions"`
  LeavingBehind     []string `json:"leaving_behind"`
}

type IdentityExtraction struct {
  CoreIdentity      string   `json:"coreIdentity"`
  PrimaryConstraint string   `json:"primaryConstraint"`
  DecisionFilter    string   `json:"decisionFilter"`
  AntiPatterns      []string `json:"antiPatterns"`
  CurrentPhase      string   `json:"currentPhase"`
  Confidence        float64  `json:"confidence"`
}

type VisionExtraction struct {
  FutureVision     string   `json:"futureVision"`
  LeavingBehind    []string `json:"leavingBehind"`
  ElevatedEmotions []string `json:"elevatedEmotions"`
  Confidence       float64  `json:"confidence"`
}

type DomainExtraction struct {
  Domains []struct {
    Name   string `json:"name"`
    Reason string `json:"reason"`
  } `json:"domains"`
  Confidence float64 `json:"confidence"`
}

type OnboardingPayload struct {
  Identity IdentityExtraction `json:"identity"`
  Vision   VisionExtraction   `json:"vision"`
  Domains  []string           `json:"domains"`
  Loops    []ExtractionLoop   `json:"loops"`
  Timezone string             `json:"timezone"`
}

type IdentityService interface {
  GetAnchor(ctx context.Context, userID uuid.UUID) (*types.IdentityAnchor, error)
  UpdateAnchor(ctx context.Context, userID uuid.UUID, update AnchorUpdate) (*types.IdentityAnchor, error)
  MergeConfirmedExtraction(ctx context.Context, userID uuid.UUID, extraction *ExtractionResult) (*types.IdentityAnchor, error)
  ExtractIdentity(ctx context.Context, content string) (*IdentityExtraction, error)
  ExtractVision(ctx context.Context, content string) (*VisionExtraction, error)
  ExtractDomains(ctx context.Context, content string) (*DomainExtraction, error)
  ExtractLoops(ctx context.Context, userID uuid.UUID, content string) ([]ExtractionLoop, error)
  CompleteOnboarding(ctx context.Context, userID uuid.UUID, payload OnboardingPayload) (*types.IdentityAnchor, error)
}

type identityService struct {
  log        *logger.Logger
  db         *gorm.DB
  ai         AIClient
  userRepo   repos.UserRepo
  anchorRepo repos.IdentityAnchorRepo
  domainRepo repos.DomainRepo
  loopRepo   repos.OpenLoopRepo
}

func NewIdentityService(log *logger.Logger, db *gorm.DB, ai AIClient, userRepo repos.UserRepo, anchorRepo repos.IdentityAnchorRepo, domainRepo repos.DomainRepo, loopRepo repos.OpenLoopRepo) IdentityService {
  return &identityService{
    log:        log.With("service", "IdentityService"),
    db:         db,
    ai:         ai,
    userRepo:   userRepo,
    anchorRepo: anchorRepo,
    domainRepo: domainRepo,
    loopRepo:   loopRepo,
  }
}

func (s *identityService) GetAnchor(ctx context.Context, userID uuid.UUID) (*types.IdentityAnchor, error) {
  return s.anchorRepo.GetByUserID(ctx, nil, userID)
}

func (s *identityService) UpdateAnchor(ctx context.Context, userID uuid.UUID, update AnchorUpdate) (*types.IdentityAnchor, error) {
  anchor, err := s.anchorRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, err
  }
  if anchor == nil {
    return nil, fmt.Errorf("identity anchor not found")
  }

  fields := map[string]interface{}{}
  if update.CoreIdentity != nil {
    fields["core_identity"] = *update.CoreIdentity
  }
  if update.PrimaryConstraint != nil {
    fields["primary_constraint"] = *update.PrimaryConstraint
  }
  if update.DecisionFilter != nil {
    fields["decision_filter"] = *update.DecisionFilter
  }
  if update.AntiPatterns != nil {
    fields["anti_patterns"] = EncodeStringList(update.AntiPatterns)
  }
  if update.CurrentPhase != nil {
    fields["current_phase"] = *update.CurrentPhase
  }
  if update.FutureVision != nil {
    fields["future_vision"] = *update.FutureVision
  }
  if update.ElevatedEmotions != nil {
    fields["elevated_emotions"] = EncodeStringList(filterEmotions(update.ElevatedEmotions))
  }
  if update.LeavingBehind != nil {
    fields["leaving_behind"] = EncodeStringList(update.LeavingBehind)
  }
  if err := s.anchorRepo.UpdateFields(ctx, nil, anchor.ID, fields); err != nil {
    return nil, err
  }
  return s.anchorRepo.GetByUserID(ctx, nil, userID)
}

func filterEmotions(emotions []string) []string {
  kept := []string{}
  for _, emotion := range emotions {
    if inEmotionVocabulary(emotion) {
      kept = append(kept, normalization.ParseInputString(emotion))
    }
  }
  return kept
}

// MergeConfirmedExtraction folds a user-confirmed extraction into the
// anchor. List fields are unioned, never replaced; vision updates of type
// addition are appended to the future vision text.
func (s *identityService) MergeConfirmedExtraction(ctx context.Context, userID uuid.UUID, extraction *ExtractionResult) (*types.IdentityAnchor, error) {
  if extraction == nil {
    return s.anchorRepo.GetByUserID(ctx, nil, userID)
  }
  anchor, err := s.anchorRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, err
  }
  if anchor == nil {
    return nil, fmt.Errorf("identity anchor not found")
  }

  fields := map[string]interface{}{}

  if shifts := filterEmotions(extraction.EmotionShifts); len(shifts) > 0 {
    merged := normalization.UniqueStrings(DecodeStringList(anchor.ElevatedEmotions), shifts)
    fields["elevated_emotions"] = EncodeStringList(merged)
  }
  if len(extraction.PatternsReleasing) > 0 {
    merged := normalization.UniqueStrings(DecodeStringList(anchor.LeavingBehind), extraction.PatternsReleasing)
    fields["leaving_behind"] = EncodeStringList(merged)
  }

  additions := []string{}
  for _, update := range extraction.VisionUpdates {
    if update.Type == "addition" && strings.TrimSpace(update.Content) != "" {
      additions = append(additions, strings.TrimSpace(update.Content))
    }
  }
  if len(additions) > 0 {
    vision := anchor.FutureVision
    for _, addition := range additions {
      if vision == "" {
        vision = addition
      } else {
        vision = vision + "\n\n" + addition
      }
    }
    fields["future_vision"] = vision
  }

  if len(fields) == 0 {
    return anchor, nil
  }
  if err := s.anchorRepo.UpdateFields(ctx, nil, anchor.ID, fields); err != nil {
    return nil, err
  }
  return s.anchorRepo.GetByUserID(ctx, nil, userID)
}

func (s *identityService) ExtractIdentity(ctx context.Context, content string) (*IdentityExtraction, error) {
  raw, err := s.ai.Complete(ctx, TierFast, identityExtractionPrompt, content, 512)
  if err != nil {
    return nil, err
  }
  var result IdentityExtraction
  if err := DecodeModelJSON(raw, &result); err != nil {
    return nil, err
  }
  return &result, nil
}

func (s *identityService) ExtractVision(ctx context.Context, content string) (*VisionExtraction, error) {
  raw, err := s.ai.Complete(ctx, TierFast, visionExtractionPrompt, content, 768)
  if err != nil {
    return nil, err
  }
  var result VisionExtraction
  if err := DecodeModelJSON(raw, &result); err != nil {
    return nil, err
  }
  result.ElevatedEmotions = filterEmotions(result.ElevatedEmotions)
  return &result, nil
}

func (s *identityService) ExtractDomains(ctx context.Context, content string) (*DomainExtraction, error) {
  raw, err := s.ai.Complete(ctx, TierFast, domainsExtractionPrompt, content, 512)
  if err != nil {
    return nil, err
  }
  var result DomainExtraction
  if err := DecodeModelJSON(raw, &result); err != nil {
    return nil, err
  }
  return &result, nil
}

type loopsExtractionReply struct {
  ExtractedLoops []struct {
    Description    string  `json:"description"`
    CommitmentType string  `json:"commitment_type"`
    ExternalParty  string  `json:"external_party"`
    InferredDomain string  `json:"inferred_domain"`
    CognitivePull  int     `json:"cognitive_pull"`
    Confidence     float64 `json:"confidence"`
    Reasoning      string  `json:"reasoning"`
  } `json:"extracted_loops"`
}

func (s *identityService) ExtractLoops(ctx context.Context, userID uuid.UUID, content string) ([]ExtractionLoop, error) {
  existing, err := s.loopRepo.GetByUserID(ctx, nil, userID, "open")
  if err != nil {
    return nil, err
  }

  prompt := strings.NewReplacer(
    "{context_dump}", content,
    "{existing_loops}", formatLoopContext(existing),
  ).Replace(loopsExtractionPrompt)

  raw, err := s.ai.Complete(ctx, TierFast, prompt, "Extract the open loops from the context dump.", 1024)
  if err != nil {
    return nil, err
  }
  var reply loopsExtractionReply
  if err := DecodeModelJSON(raw, &reply); err != nil {
    return nil, err
  }

  loops := []ExtractionLoop{}
  for _, loop := range reply.ExtractedLoops {
    loops = append(loops, ExtractionLoop{
      Description:    loop.Description,
      Category:       loop.InferredDomain,
      CommitmentType: loop.CommitmentType,
      ExternalParty:  loop.ExternalParty,
      CognitivePull:  loop.CognitivePull,
      Confidence:     loop.Confidence,
      Reasoning:      loop.Reasoning,
    })
  }
  return loops, nil
}

// CompleteOnboarding writes the anchor, domains and seed loops in one
// transaction and marks the user onboarded.
func (s *identityService) CompleteOnboarding(ctx context.Context, userID uuid.UUID, payload OnboardingPayload) (*types.IdentityAnchor, error) {
  if strings.TrimSpace(payload.Identity.CoreIdentity) == "" {
    return nil, fmt.Errorf("core identity is required")
  }

  var anchor *types.IdentityAnchor
  err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, err := s.anchorRepo.GetByUserID(ctx, tx, userID)
    if err != nil {
      return err
    }
    if existing != nil {
      return fmt.Errorf("onboarding already completed")
    }

    anchor = &types.IdentityAnchor{
      UserID:            userID,
      CoreIdentity:      payload.Identity.CoreIdentity,
      PrimaryConstraint: payload.Identity.PrimaryConstraint,
      DecisionFilter:    payload.Identity.DecisionFilter,
      AntiPatterns:      EncodeStringList(payload.Identity.AntiPatterns),
      CurrentPhase:      payload.Identity.CurrentPhase,
      FutureVision:      payload.Vision.FutureVision,
      ElevatedEmotions:  EncodeStringList(filterEmotions(payload.Vision.ElevatedEmotions)),
      LeavingBehind:     EncodeStringList(payload.Vision.LeavingBehind),
    }
    if _, err := s.anchorRepo.Create(ctx, tx, anchor); err != nil {
      return err
    }

    for _, name := range normalization.UniqueStrings(payload.Domains) {
      if _, err := s.domainRepo.FindOrCreateByName(ctx, tx, userID, name); err != nil {
        return err
      }
    }

    loops := []*types.OpenLoop{}
    for _, loop := range FilterConfidentLoops(payload.Loops) {
      loops = append(loops, &types.OpenLoop{
        UserID:         userID,
        Description:    loop.Description,
        Source:         "onboarding",
        CommitmentType: loop.CommitmentType,
        ExternalParty:  loop.ExternalParty,
        CognitivePull:  loop.CognitivePull,
        Status:         "open",
      })
    }
    if _, err := s.loopRepo.Create(ctx, tx, loops); err != nil {
      return err
    }

    userFields := map[string]interface{}{"onboarding_completed": true}
    if strings.TrimSpace(payload.Timezone) != "" {
      userFields["timezone"] = payload.Timezone
    }
    return s.userRepo.UpdateFields(ctx, tx, userID, userFields)
  })
  if err != nil {
    return nil, err
  }
  return anchor, nil
}
