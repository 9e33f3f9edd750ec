package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/types"
)

type OpenLoopRepo interface {
  Create(ctx context.Context, tx *gorm.DB, loops []*types.OpenLoop) ([]*types.OpenLoop, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, loopIDs []uuid.UUID) ([]*types.OpenLoop, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) ([]*types.OpenLoop, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, loopID uuid.UUID, fields map[string]interface{}) error
}

type openLoopRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewOpenLoopRepo(db *gorm.DB, baseLog *logger.Logger) OpenLoopRepo {
  repoLog := baseLog.With("repo", "OpenLoopRepo")
  return &openLoopRepo{db: db, log: repoLog}
}

func (olr *openLoopRepo) Create(ctx context.Context, tx *gorm.DB, loops []*types.OpenLoop) ([]*types.OpenLoop, error) {
  transaction := tx
  if transaction == nil {
    transaction = olr.db
  }

  if len(loops) == 0 {
    return []*types.OpenLoop{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&loops).Error; err != nil {
    return nil, err
  }

  return loops, nil
}

func (olr *openLoopRepo) GetByIDs(ctx context.Context, tx *gorm.DB, loopIDs []uuid.UUID) ([]*types.OpenLoop, error) {
  transaction := tx
  if transaction == nil {
    transaction = olr.db
  }

  var results []*types.OpenLoop

  if len(loopIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", loopIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetByUserID lists loops newest-first; status filters when non-empty.
func (olr *openLoopRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) ([]*types.OpenLoop, error) {
  transaction := tx
  if transaction == nil {
    transaction = olr.db
  }

  var results []*types.OpenLoop

  query := transaction.WithContext(ctx).
    Preload("Domain").
    Where("user_id = ?", userID)
  if status != "" {
    query = query.Where("status = ?", status)
  }

  if err := query.
    Order("created_at desc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (olr *openLoopRepo) UpdateFields(ctx context.Context, tx *gorm.DB, loopID uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = olr.db
  }

  if len(fields) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.OpenLoop{}).
    Where("id = ?", loopID).
    Updates(fields).Error; err != nil {
    return err
  }
  return nil
}
