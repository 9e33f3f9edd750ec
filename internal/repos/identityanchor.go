package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/coherence-backend/internal/logger"
  "github.com/yungbote/coherence-backend/internal/types"
)

type IdentityAnchorRepo interface {
  Create(ctx context.Context, tx *gorm.DB, anchor *types.IdentityAnchor) (*types.IdentityAnchor, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.IdentityAnchor, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, anchorID uuid.UUID, fields map[string]interface{}) error
}

type identityAnchorRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewIdentityAnchorRepo(db *gorm.DB, baseLog *logger.Logger) IdentityAnchorRepo {
  repoLog := baseLog.With("repo", "IdentityAnchorRepo")
  return &identityAnchorRepo{db: db, log: repoLog}
}

func (iar *identityAnchorRepo) Create(ctx context.Context, tx *gorm.DB, anchor *types.IdentityAnchor) (*types.IdentityAnchor, error) {
  transaction := tx
  if transaction == nil {
    transaction = iar.db
  }

  if err := transaction.WithContext(ctx).Create(anchor).Error; err != nil {
    return nil, err
  }

  return anchor, nil
}

// GetByUserID returns nil without error when the user has no anchor yet.
func (iar *identityAnchorRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.IdentityAnchor, error) {
  transaction := tx
  if transaction == nil {
    transaction = iar.db
  }

  var result types.IdentityAnchor

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (iar *identityAnchorRepo) UpdateFields(ctx context.Context, tx *gorm.DB, anchorID uuid.UUID, fields map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = iar.db
  }

  if len(fields) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.IdentityAnchor{}).
    Where("id = ?", anchorID).
    Updates(fields).Error; err != nil {
    return err
  }
  return nil
}
