package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"
  "gorm.io/datatypes"

  redisclient "github.com/yungbote/coherence-backend/internal/clients/redis"
  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/repos"
  "github.com/yungbote/coherence-backend/internal/types"
)

const (
  GuidanceNextAction = "next_action"
  GuidancePause      = "pause"
  GuidanceCloseLoop  = "close_loop"
  GuidanceEmbody     = "embody"
)

type GuidanceRequest struct {
  State                 GateInput `json:"state"`
  GateStatus            string    `json:"gate_status"`
  PostPracticeShift     string    `json:"post_practice_shift"`
  ContextDump           string    `json:"context_dump"`
  PostEmbodimentContext string    `json:"post_embodiment_context"`
}

type GuidanceDecision struct {
  Decision         string  `json:"decision"`
  Output           string  `json:"output"`
  ReferencedLoopID string  `json:"referenced_loop_id,omitempty"`
  Reasoning        string  `json:"reasoning"`
  Confidence       float64 `json:"confidence"`
}

// RemapDecision folds the model's uppercase decision labels onto the
// stored enum; anything unrecognized becomes pause.
func RemapDecision(decision string) string {
  switch strings.ToUpper(strings.TrimSpace(decision)) {
  case "NEXT_ACTION":
    return GuidanceNextAction
  case "PAUSE":
    return GuidancePause
  case "CLOSE_LOOP":
    return GuidanceCloseLoop
  case "EMBODY":
    return GuidanceEmbody
  default:
    return GuidancePause
  }
}

type GuidanceService interface {
  GenerateToday(ctx context.Context, userID uuid.UUID, req GuidanceRequest) (*types.GuidanceEvent, bool, error)
  GetToday(ctx context.Context, userID uuid.UUID) (*types.GuidanceEvent, error)
  RecordReflection(ctx context.Context, userID uuid.UUID, guidanceEventID uuid.UUID, actionTaken bool, reflectionText, outcome string) (*types.ActionReflection, error)
}

type guidanceService struct {
  log            *logger.Logger
  ai             AIClient
  userRepo       repos.UserRepo
  anchorRepo     repos.IdentityAnchorRepo
  ruleRepo       repos.PersonalizedRuleRepo
  loopRepo       repos.OpenLoopRepo
  eventRepo      repos.GuidanceEventRepo
  reflectionRepo repos.ActionReflectionRepo
  dayCache       redisclient.DayCache
}

func NewGuidanceService(
  log *logger.Logger,
  ai AIClient,
  userRepo repos.UserRepo,
  anchorRepo repos.IdentityAnchorRepo,
  ruleRepo repos.PersonalizedRuleRepo,
  loopRepo repos.OpenLoopRepo,
  eventRepo repos.GuidanceEventRepo,
  reflectionRepo repos.ActionReflectionRepo,
  dayCache redisclient.DayCache,
) GuidanceService {
  return &guidanceService{
    log:            log.With("service", "GuidanceService"),
    ai:             ai,
    userRepo:       userRepo,
    anchorRepo:     anchorRepo,
    ruleRepo:       ruleRepo,
    loopRepo:       loopRepo,
    eventRepo:      eventRepo,
    reflectionRepo: reflectionRepo,
    dayCache:       dayCache,
  }
}

// dayBounds resolves today's [start, end) window in the user's timezone.
func (s *guidanceService) dayBounds(ctx context.Context, userID uuid.UUID) (time.Time, time.Time, string, error) {
  loc := time.UTC
  users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return time.Time{}, time.Time{}, "", err
  }
  if len(users) == 1 && users[0].Timezone != "" {
    if parsed, err := time.LoadLocation(users[0].Timezone); err == nil {
      loc = parsed
    }
  }
  now := time.Now().In(loc)
  start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
  return start, start.Add(24 * time.Hour), start.Format("2006-01-02"), nil
}

// GetToday returns today's guidance event when one exists, checking the
// redis pointer first and falling through to the created_at range query.
func (s *guidanceService) GetToday(ctx context.Context, userID uuid.UUID) (*types.GuidanceEvent, error) {
  from, to, date, err := s.dayBounds(ctx, userID)
  if err != nil {
    return nil, err
  }

  if s.dayCache != nil {
    if id, ok := s.dayCache.GetGuidanceID(ctx, userID, date); ok {
      events, err := s.eventRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
      if err == nil && len(events) == 1 {
        return events[0], nil
      }
    }
  }

  return s.eventRepo.GetLatestInRange(ctx, nil, userID, from, to)
}

// GenerateToday returns (event, cached, error). When guidance for today
// already exists it is returned unchanged with cached=true; the window
// check is read-then-write on purpose, so two racing requests may both
// generate.
func (s *guidanceService) GenerateToday(ctx context.Context, userID uuid.UUID, req GuidanceRequest) (*types.GuidanceEvent, bool, error) {
  if err := req.State.Validate(); err != nil {
    return nil, false, err
  }

  _, _, date, err := s.dayBounds(ctx, userID)
  if err != nil {
    return nil, false, err
  }

  existing, err := s.GetToday(ctx, userID)
  if err != nil {
    return nil, false, err
  }
  if existing != nil {
    return existing, true, nil
  }

  // A hard block that survived the elevation practice means no decision
  // today, no matter what the model would say.
  if req.GateStatus == GateHardBlock && strings.TrimSpace(req.PostPracticeShift) == "" {
    return s.persist(ctx, userID, date, req, RecoveryDayGuidance())
  }

  var (
    anchor *types.IdentityAnchor
    rules  []*types.PersonalizedRule
    loops  []*types.OpenLoop
  )
  group, groupCtx := errgroup.WithContext(ctx)
  group.Go(func() error {
    var err error
    anchor, err = s.anchorRepo.GetByUserID(groupCtx, nil, userID)
    return err
  })
  group.Go(func() error {
    var err error
    rules, err = s.ruleRepo.GetActiveByUserID(groupCtx, nil, userID)
    return err
  })
  group.Go(func() error {
    var err error
    loops, err = s.loopRepo.GetByUserID(groupCtx, nil, userID, "open")
    return err
  })
  if err := group.Wait(); err != nil {
    return nil, false, fmt.Errorf("load guidance context: %w", err)
  }

  contextDump := req.ContextDump
  if strings.TrimSpace(contextDump) == "" {
    contextDump = "No additional context provided."
  }
  embodimentContext := req.PostEmbodimentContext
  if strings.TrimSpace(embodimentContext) == "" {
    embodimentContext = "N/A - no embodiment practice completed."
  }

  prompt := strings.NewReplacer(
    "{identity_anchor}", formatAnchorContext(anchor),
    "{personalized_rules}", formatRulesContext(rules),
    "{effective_state}", formatEffectiveState(req.State, req.PostPracticeShift),
    "{open_loops}", formatLoopContext(loops),
    "{context_dump}", contextDump,
    "{post_embodiment_context}", embodimentContext,
  ).Replace(guidanceEnginePrompt)

  decision := s.callModel(ctx, prompt)
  return s.persist(ctx, userID, date, req, decision)
}

type guidanceModelReply struct {
  Decision         string  `json:"decision"`
  Output           string  `json:"output"`
  ReferencedLoopID string  `json:"referenced_loop_id"`
  Reasoning        string  `json:"reasoning"`
  Confidence       float64 `json:"confidence"`
}

func (s *guidanceService) callModel(ctx context.Context, prompt string) GuidanceDecision {
  raw, err := s.ai.Complete(ctx, TierDeep, prompt, "Generate today's guidance based on the context provided.", 512)
  if err != nil {
    s.log.Warn("Guidance model call failed, using pause fallback", "error", err)
    return FallbackGuidance()
  }

  var reply guidanceModelReply
  if err := DecodeModelJSON(raw, &reply); err != nil {
    s.log.Warn("Guidance model reply unparseable, using pause fallback", "error", err)
    return FallbackGuidance()
  }

  confidence := reply.Confidence
  if confidence == 0 {
    confidence = 0.5
  }
  decision := GuidanceDecision{
    Decision:         RemapDecision(reply.Decision),
    Output:           reply.Output,
    ReferencedLoopID: reply.ReferencedLoopID,
    Reasoning:        reply.Reasoning,
    Confidence:       confidence,
  }
  if strings.TrimSpace(decision.Output) == "" {
    return FallbackGuidance()
  }
  return decision
}

func (s *guidanceService) persist(ctx context.Context, userID uuid.UUID, date string, req GuidanceRequest, decision GuidanceDecision) (*types.GuidanceEvent, bool, error) {
  snapshot := map[string]string{
    "mental":    req.State.Mental,
    "emotional": req.State.Emotional,
    "physical":  req.State.Physical,
  }
  if req.PostPracticeShift != "" {
    snapshot["post_practice_shift"] = req.PostPracticeShift
  }
  rawSnapshot, err := json.Marshal(snapshot)
  if err != nil {
    return nil, false, err
  }

  event := &types.GuidanceEvent{
    UserID:           userID,
    DecisionType:     decision.Decision,
    GuidanceText:     decision.Output,
    Confidence:       decision.Confidence,
    ReasoningSummary: decision.Reasoning,
    EffectiveState:   datatypes.JSON(rawSnapshot),
  }
  if decision.ReferencedLoopID != "" {
    if loopID, err := uuid.Parse(decision.ReferencedLoopID); err == nil {
      event.ReferencedLoopID = &loopID
    }
  }

  created, err := s.eventRepo.Create(ctx, nil, event)
  if err != nil {
    return nil, false, fmt.Errorf("persist guidance event: %w", err)
  }
  if s.dayCache != nil {
    s.dayCache.SetGuidanceID(ctx, userID, date, created.ID)
  }
  return created, false, nil
}

func (s *guidanceService) RecordReflection(ctx context.Context, userID uuid.UUID, guidanceEventID uuid.UUID, actionTaken bool, reflectionText, outcome string) (*types.ActionReflection, error) {
  events, err := s.eventRepo.GetByIDs(ctx, nil, []uuid.UUID{guidanceEventID})
  if err != nil {
    return nil, err
  }
  if len(events) != 1 || events[0].UserID != userID {
    return nil, fmt.Errorf("guidance event not found")
  }

  reflection := &types.ActionReflection{
    UserID:          userID,
    GuidanceEventID: guidanceEventID,
    ActionTaken:     actionTaken,
    ReflectionText:  reflectionText,
    Outcome:         outcome,
  }
  return s.reflectionRepo.Upsert(ctx, nil, reflection)
}
