package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

type GuidanceEvent struct {
  gorm.Model
  ID               uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
  User             *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  DecisionType     string          `gorm:"column:decision_type;not null" json:"decision_type"`
  GuidanceText     string          `gorm:"column:guidance_text;not null" json:"guidance_text"`
  Confidence       float64         `gorm:"column:confidence;not null;default:0" json:"confidence"`
  ReferencedLoopID *uuid.UUID      `gorm:"type:uuid" json:"referenced_loop_id,omitempty"`
  ReasoningSummary string          `gorm:"column:reasoning_summary" json:"reasoning_summary"`
  EffectiveState   datatypes.JSON  `gorm:"column:effective_state;type:jsonb" json:"effective_state"`
  CreatedAt        time.Time       `gorm:"not null;default:now();index" json:"created_at"`
  UpdatedAt        time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (GuidanceEvent) TableName() string {
  return "guidance_event"
}
