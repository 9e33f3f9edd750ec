package services

import (
  "context"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"

  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/repos"
  "github.com/yungbote/coherence-backend/internal/types"
)

// AlignmentView is the read model behind the alignment surface: identity,
// recent guidance history and the open-loop load.
type AlignmentView struct {
  Identity       *types.IdentityAnchor  `json:"identity"`
  TodaysGuidance *types.GuidanceEvent   `json:"todays_guidance"`
  RecentGuidance []*types.GuidanceEvent `json:"recent_guidance"`
  OpenLoopCount  int                    `json:"open_loop_count"`
}

type AlignmentService interface {
  Overview(ctx context.Context, userID uuid.UUID) (*AlignmentView, error)
  NextSteps(ctx context.Context, userID uuid.UUID, existingSteps []string) ([]string, error)
}

type alignmentService struct {
  log        *logger.Logger
  ai         AIClient
  anchorRepo repos.IdentityAnchorRepo
  loopRepo   repos.OpenLoopRepo
  domainRepo repos.DomainRepo
  eventRepo  repos.GuidanceEventRepo
}

func NewAlignmentService(
  log *logger.Logger,
  ai AIClient,
  anchorRepo repos.IdentityAnchorRepo,
  loopRepo repos.OpenLoopRepo,
  domainRepo repos.DomainRepo,
  eventRepo repos.GuidanceEventRepo,
) AlignmentService {
  return &alignmentService{
    log:        log.With("service", "AlignmentService"),
    ai:         ai,
    anchorRepo: anchorRepo,
    loopRepo:   loopRepo,
    domainRepo: domainRepo,
    eventRepo:  eventRepo,
  }
}

// Overview fetches the anchor, the last ten guidance events and the open
// loop count. The newest guidance event doubles as today's action.
func (s *alignmentService) Overview(ctx context.Context, userID uuid.UUID) (*AlignmentView, error) {
  var (
    anchor *types.IdentityAnchor
    recent []*types.GuidanceEvent
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
    recent, err = s.eventRepo.GetRecentByUserID(groupCtx, nil, userID, 10)
    return err
  })
  group.Go(func() error {
    var err error
    loops, err = s.loopRepo.GetByUserID(groupCtx, nil, userID, "open")
    return err
  })
  if err := group.Wait(); err != nil {
    return nil, fmt.Errorf("load alignment context: %w", err)
  }

  view := &AlignmentView{
    Identity:       anchor,
    RecentGuidance: recent,
    OpenLoopCount:  len(loops),
  }
  if len(recent) > 0 {
    view.TodaysGuidance = recent[0]
  }
  return view, nil
}

// NextSteps asks the model for three concrete steps toward the user's
// future self, avoiding steps already suggested.
func (s *alignmentService) NextSteps(ctx context.Context, userID uuid.UUID, existingSteps []string) ([]string, error) {
  anchor, err := s.anchorRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("load identity anchor: %w", err)
  }
  if anchor == nil {
    return nil, fmt.Errorf("identity not set")
  }
  loops, err := s.loopRepo.GetByUserID(ctx, nil, userID, "open")
  if err != nil {
    return nil, fmt.Errorf("load open loops: %w", err)
  }
  userDomains, err := s.domainRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("load domains: %w", err)
  }

  prompt := strings.NewReplacer(
    "{identity_anchor}", formatAnchorContext(anchor),
    "{loop_count}", fmt.Sprintf("%d", len(loops)),
    "{open_loops}", formatNextStepLoops(loops),
    "{domains}", formatDomainNames(userDomains),
    "{existing_steps}", formatExistingSteps(existingSteps),
  ).Replace(alignmentNextStepsPrompt)

  raw, err := s.ai.Complete(ctx, TierFast, prompt, "Generate 3 more next steps for me.", 512)
  if err != nil {
    return nil, fmt.Errorf("next steps model call: %w", err)
  }

  var steps []string
  if err := DecodeModelJSON(raw, &steps); err != nil {
    s.log.Warn("Next steps reply unparseable", "error", err)
    return nil, fmt.Errorf("parse next steps: %w", err)
  }
  return steps, nil
}
