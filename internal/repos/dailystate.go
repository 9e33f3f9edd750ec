package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/types"
)

type DailyStateRepo interface {
  FindOrCreateForDate(ctx context.Context, tx *gorm.DB, state *types.DailyState) (*types.DailyState, error)
  GetByUserDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) (*types.DailyState, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, stateID uuid.UUID, fields map[string]interface{}) error
}

type dailyStateRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDailyStateRepo(db *gorm.DB, baseLog *logger.Logger) DailyStateRepo {
  repoLog := baseLog.With("repo", "DailyStateRepo")
  return &dailyStateRepo{db: db, log: repoLog}
}

// FindOrCreateForDate inserts with ON CONFLICT DO NOTHING against the
// (user_id, date) unique index and re-queries, so a second check-in on the
// same day returns the first row unchanged.
func (dsr *dailyStateRepo) FindOrCreateForDate(ctx context.Context, tx *gorm.DB, state *types.DailyState) (*types.DailyState, error) {
  transaction := tx
  if transaction == nil {
    transaction = dsr.db
  }

  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{DoNothing: true}).
    Create(state).Error; err != nil {
    return nil, err
  }

  var result types.DailyState
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND date = ?", state.UserID, state.Date).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (dsr *dailyStateRepo) GetByUserDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) (*types.DailyState, error) {
  transaction := tx
  if transaction == nil {
    transaction = dsr.db
  }

  var result types.DailyState

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND date = ?", userID, date).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (dsr *dailyStateRepo) UpdateFields(ctx context.Context, tx *gorm.DB, stateID uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = dsr.db
  }

  if len(fields) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.DailyState{}).
    Where("id = ?", stateID).
    Updates(fields).Error; err != nil {
    return err
  }
  return nil
}
