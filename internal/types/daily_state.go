package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

type DailyState struct {
  gorm.Model
  ID                     uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID                 uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_daily_state_user_date" json:"user_id"`
  User                   *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Date                   string      `gorm:"column:date;type:date;not null;uniqueIndex:idx_daily_state_user_date" json:"date"`
  Physical               string      `gorm:"column:physical;not null" json:"physical"`
  Mental                 string      `gorm:"column:mental;not null" json:"mental"`
  Emotional              string      `gorm:"column:emotional;not null" json:"emotional"`
  ContextDump            string      `gorm:"column:context_dump" json:"context_dump"`
  GateStatus             string      `gorm:"column:gate_status;not null" json:"gate_status"`
  RecommendedPracticeID  *uuid.UUID  `gorm:"type:uuid" json:"recommended_practice_id,omitempty"`
  RecommendedPractice    *Practice   `gorm:"constraint:OnDelete:SET NULL;foreignKey:RecommendedPracticeID;references:ID" json:"recommended_practice,omitempty"`
  GateReasoning          string      `gorm:"column:gate_reasoning" json:"gate_reasoning"`
  CreatedAt              time.Time   `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt              time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (DailyState) TableName() string {
  return "daily_state"
}
