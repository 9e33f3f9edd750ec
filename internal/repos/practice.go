package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/types"
)

type PracticeRepo interface {
  List(ctx context.Context, tx *gorm.DB) ([]*types.Practice, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, practiceIDs []uuid.UUID) ([]*types.Practice, error)
  GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Practice, error)
  GetByKind(ctx context.Context, tx *gorm.DB, kind string) (*types.Practice, error)
}

type practiceRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPracticeRepo(db *gorm.DB, baseLog *logger.Logger) PracticeRepo {
  repoLog := baseLog.With("repo", "PracticeRepo")
  return &practiceRepo{db: db, log: repoLog}
}

func (pr *practiceRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Practice, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Practice

  if err := transaction.WithContext(ctx).
    Order("name asc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *practiceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, practiceIDs []uuid.UUID) ([]*types.Practice, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Practice

  if len(practiceIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", practiceIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *practiceRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Practice, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var result types.Practice

  if err := transaction.WithContext(ctx).
    Where("name = ?", name).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (pr *practiceRepo) GetByKind(ctx context.Context, tx *gorm.DB, kind string) (*types.Practice, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var result types.Practice

  if err := transaction.WithContext(ctx).
    Where("kind = ?", kind).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}
