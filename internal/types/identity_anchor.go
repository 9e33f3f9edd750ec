package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

type IdentityAnchor struct {
  gorm.Model
  ID                uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
  User              *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  CoreIdentity      string          `gorm:"column:core_identity;not null" json:"core_identity"`
  PrimaryConstraint string          `gorm:"column:primary_constraint" json:"primary_constraint"`
  DecisionFilter    string          `gorm:"column:decision_filter" json:"decision_filter"`
  AntiPatterns      datatypes.JSON  `gorm:"column:anti_patterns;type:jsonb" json:"anti_patterns"`
  CurrentPhase      string          `gorm:"column:current_phase" json:"current_phase"`
  FutureVision      string          `gorm:"column:future_vision" json:"future_vision"`
  ElevatedEmotions  datatypes.JSON  `gorm:"column:elevated_emotions;type:jsonb" json:"elevated_emotions"`
  LeavingBehind     datatypes.JSON  `gorm:"column:leaving_behind;type:jsonb" json:"leaving_behind"`
  CreatedAt         time.Time       `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt         time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (IdentityAnchor) TableName() string {
  return "identity_anchor"
}
