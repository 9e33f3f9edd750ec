package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/types"
)

type DomainRepo interface {
  Create(ctx context.Context, tx *gorm.DB, domains []*types.Domain) ([]*types.Domain, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Domain, error)
  FindOrCreateByName(ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string) (*types.Domain, error)
}

type domainRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDomainRepo(db *gorm.DB, baseLog *logger.Logger) DomainRepo {
  repoLog := baseLog.With("repo", "DomainRepo")
  return &domainRepo{db: db, log: repoLog}
}

func (dr *domainRepo) Create(ctx context.Context, tx *gorm.DB, domains []*types.Domain) ([]*types.Domain, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  if len(domains) == 0 {
    return []*types.Domain{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&domains).Error; err != nil {
    return nil, err
  }

  return domains, nil
}

func (dr *domainRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Domain, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  var results []*types.Domain

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("name asc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// FindOrCreateByName inserts with ON CONFLICT DO NOTHING against the
// (user_id, name) unique index, then re-queries so concurrent callers
// converge on the same row.
func (dr *domainRepo) FindOrCreateByName(ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string) (*types.Domain, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  row := types.Domain{UserID: userID, Name: name}
  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{DoNothing: true}).
    Create(&row).Error; err != nil {
    return nil, err
  }

  var result types.Domain
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND name = ?", userID, name).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}
