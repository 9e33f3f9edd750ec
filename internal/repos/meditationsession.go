package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/types"
)

type MeditationSessionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, session *types.MeditationSession) (*types.MeditationSession, error)
  GetByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.MeditationSession, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, fields map[string]interface{}) error
}

type meditationSessionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMeditationSessionRepo(db *gorm.DB, baseLog *logger.Logger) MeditationSessionRepo {
  repoLog := baseLog.With("repo", "MeditationSessionRepo")
  return &meditationSessionRepo{db: db, log: repoLog}
}

func (msr *meditationSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.MeditationSession) (*types.MeditationSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = msr.db
  }

  if err := transaction.WithContext(ctx).Create(session).Error; err != nil {
    return nil, err
  }

  return session, nil
}

func (msr *meditationSessionRepo) GetByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.MeditationSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = msr.db
  }

  var result types.MeditationSession

  if err := transaction.WithContext(ctx).
    Where("id = ?", sessionID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (msr *meditationSessionRepo) UpdateFields(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = msr.db
  }

  if len(fields) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.MeditationSession{}).
    Where("id = ?", sessionID).
    Updates(fields).Error; err != nil {
    return err
  }
  return nil
}
