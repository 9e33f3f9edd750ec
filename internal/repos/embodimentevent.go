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

type EmbodimentEventRepo interface {
  Create(ctx context.Context, tx *gorm.DB, event *types.EmbodimentEvent) (*types.EmbodimentEvent, error)
  GetByID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.EmbodimentEvent, error)
  GetLatestCompletedInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) (*types.EmbodimentEvent, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, fields map[string]interface{}) error
}

type embodimentEventRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewEmbodimentEventRepo(db *gorm.DB, baseLog *logger.Logger) EmbodimentEventRepo {
  repoLog := baseLog.With("repo", "EmbodimentEventRepo")
  return &embodimentEventRepo{db: db, log: repoLog}
}

func (eer *embodimentEventRepo) Create(ctx context.Context, tx *gorm.DB, event *types.EmbodimentEvent) (*types.EmbodimentEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = eer.db
  }

  if err := transaction.WithContext(ctx).Create(event).Error; err != nil {
    return nil, err
  }

  return event, nil
}

func (eer *embodimentEventRepo) GetByID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.EmbodimentEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = eer.db
  }

  var result types.EmbodimentEvent

  if err := transaction.WithContext(ctx).
    Where("id = ?", eventID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (eer *embodimentEventRepo) GetLatestCompletedInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) (*types.EmbodimentEvent, error) {
  transaction := tx
  if transaction == nil {
    transaction = eer.db
  }

  var result types.EmbodimentEvent

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND completed = ? AND created_at >= ? AND created_at < ?", userID, true, from, to).
    Order("created_at desc").
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (eer *embodimentEventRepo) UpdateFields(ctx context.Context, tx *gorm.DB, eventID uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = eer.db
  }

  if len(fields) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.EmbodimentEvent{}).
    Where("id = ?", eventID).
    Updates(fields).Error; err != nil {
    return err
  }
  return nil
}
