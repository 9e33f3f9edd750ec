package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

type ActionReflection struct {
  gorm.Model
  ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
  User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  GuidanceEventID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"guidance_event_id"`
  GuidanceEvent   *GuidanceEvent `gorm:"constraint:OnDelete:CASCADE;foreignKey:GuidanceEventID;references:ID" json:"guidance_event,omitempty"`
  ActionTaken     bool           `gorm:"column:action_taken;not null;default:false" json:"action_taken"`
  ReflectionText  string         `gorm:"column:reflection_text" json:"reflection_text"`
  Outcome         string         `gorm:"column:outcome" json:"outcome"`
  CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (ActionReflection) TableName() string {
  return "action_reflection"
}
