package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/types"
)

type PracticeEventRepo interface {
  Create(ctx context.Context, tx *gorm.DB, events []*types.PracticeEvent) ([]*types.PracticeEvent, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, eventIDs []uuid.UUID) ([]*types.PracticeEvent, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, fields map[string]interface{}) error
}

type practiceEventRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPracticeEventRepo(db *gorm.DB, baseLog *logger.Logger) PracticeEventRepo {
  repoLog := baseLog.With("repo", "PracticeEventRepo")
  return &practiceEventRepo{db: db, log: repoLog}
}

func (per *practiceEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.PracticeEvent) ([]*types.PracticeEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = per.db
  }

  if len(events) == 0 {
    return []*types.PracticeEvent{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&events).Error; err != nil {
    return nil, err
  }

  return events, nil
}

func (per *practiceEventRepo) GetByIDs(ctx context.Context, tx *gorm.DB, eventIDs []uuid.UUID) ([]*types.PracticeEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = per.db
  }

  var results []*types.PracticeEvent

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

func (per *practiceEventRepo) UpdateFields(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = per.db
  }

  if len(fields) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.PracticeEvent{}).
    Where("id = ?", eventID).
    Updates(fields).Error; err != nil {
    return err
  }
  return nil
}
