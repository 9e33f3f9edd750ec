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

type ActionReflectionRepo interface {
  Upsert(ctx context.Context, tx *gorm.DB, reflection *types.ActionReflection) (*types.ActionReflection, error)
  GetByGuidanceEventID(ctx context.Context, tx *gorm.DB, guidanceEventID uuid.UUID) (*types.ActionReflection, error)
}

type actionReflectionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewActionReflectionRepo(db *gorm.DB, baseLog *logger.Logger) ActionReflectionRepo {
  repoLog := baseLog.With("repo", "ActionReflectionRepo")
  return &actionReflectionRepo{db: db, log: repoLog}
}

// Upsert keeps one reflection per guidance event; a second submission
// overwrites the first.
func (arr *actionReflectionRepo) Upsert(ctx context.Context, tx *gorm.DB, reflection *types.ActionReflection) (*types.ActionReflection, error) {
  transaction := tx
  if transaction == nil {
    transaction = arr.db
  }

  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "guidance_event_id"}},
      DoUpdates: clause.AssignmentColumns([]string{"action_taken", "reflection_text", "outcome", "updated_at"}),
    }).
    Create(reflection).Error; err != nil {
    return nil, err
  }

  return reflection, nil
}

func (arr *actionReflectionRepo) GetByGuidanceEventID(ctx context.Context, tx *gorm.DB, guidanceEventID uuid.UUID) (*types.ActionReflection, error) {
  transaction := tx
  if transaction == nil {
    transaction = arr.db
  }

  var result types.ActionReflection

  if err := transaction.WithContext(ctx).
    Where("guidance_event_id = ?", guidanceEventID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}
