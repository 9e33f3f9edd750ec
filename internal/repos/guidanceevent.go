package repos

import (
  "context"
  "errors"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/types"
)

type GuidanceEventRepo interface {
  Create(ctx context.Context, tx *gorm.DB, event *types.GuidanceEvent) (*types.GuidanceEvent, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, eventIDs []uuid.UUID) ([]*types.GuidanceEvent, error)
  GetLatestInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) (*types.GuidanceEvent, error)
  GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.GuidanceEvent, error)
}

type guidanceEventRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewGuidanceEventRepo(db *gorm.DB, baseLog *logger.Logger) GuidanceEventRepo {
  repoLog := baseLog.With("repo", "GuidanceEventRepo")
  return &guidanceEventRepo{db: db, log: repoLog}
}

func (ger *guidanceEventRepo) Create(ctx context.Context, tx *gorm.DB, event *types.GuidanceEvent) (*types.GuidanceEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = ger.db
  }

  if err := transaction.WithContext(ctx).Create(event).Error; err != nil {
    return nil, err
  }

  return event, nil
}

func (ger *guidanceEventRepo) GetByIDs(ctx context.Context, tx *gorm.DB, eventIDs []uuid.UUID) ([]*types.GuidanceEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = ger.db
  }

  var results []*types.GuidanceEvent

  if len(eventIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", eventIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetRecentByUserID returns the newest guidance events for a user, newest
// first.
func (ger *guidanceEventRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.GuidanceEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = ger.db
  }

  if limit <= 0 {
    limit = 10
  }

  var results []*types.GuidanceEvent

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at desc").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetLatestInRange returns the newest guidance event created in [from, to),
// or nil when the window holds none. There is intentionally no unique
// constraint backing this window query.
func (ger *guidanceEventRepo) GetLatestInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) (*types.GuidanceEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = ger.db
  }

  var result types.GuidanceEvent

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
    Order("created_at desc").
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}
