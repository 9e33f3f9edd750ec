package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/types"
)

type PersonalizedRuleRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rules []*types.PersonalizedRule) ([]*types.PersonalizedRule, error)
  GetActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PersonalizedRule, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, ruleID uuid.UUID, fields map[string]interface{}) error
}

type personalizedRuleRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPersonalizedRuleRepo(db *gorm.DB, baseLog *logger.Logger) PersonalizedRuleRepo {
  repoLog := baseLog.With("repo", "PersonalizedRuleRepo")
  return &personalizedRuleRepo{db: db, log: repoLog}
}

func (prr *personalizedRuleRepo) Create(ctx context.Context, tx *gorm.DB, rules []*types.PersonalizedRule) ([]*types.PersonalizedRule, error) {
  transaction := tx
  if transaction == nil {
    transaction = prr.db
  }

  if len(rules) == 0 {
    return []*types.PersonalizedRule{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rules).Error; err != nil {
    return nil, err
  }

  return rules, nil
}

func (prr *personalizedRuleRepo) GetActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PersonalizedRule, error) {
  transaction := tx
  if transaction == nil {
    transaction = prr.db
  }

  var results []*types.PersonalizedRule

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND active = ?", userID, true).
    Order("confidence desc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (prr *personalizedRuleRepo) UpdateFields(ctx context.Context, tx *gorm.DB, ruleID uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = prr.db
  }

  if len(fields) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.PersonalizedRule{}).
    Where("id = ?", ruleID).
    Updates(fields).Error; err != nil {
    return err
  }
  return nil
}
