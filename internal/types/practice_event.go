package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

type PracticeEvent struct {
  gorm.Model
  ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
  User         *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  PracticeID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"practice_id"`
  Practice     *Practice   `gorm:"constraint:OnDelete:CASCADE;foreignKey:PracticeID;references:ID" json:"practice,omitempty"`
  DailyStateID *uuid.UUID  `gorm:"type:uuid;index" json:"daily_state_id,omitempty"`
  DailyState   *DailyState `gorm:"constraint:OnDelete:SET NULL;foreignKey:DailyStateID;references:ID" json:"daily_state,omitempty"`
  Completed    bool           `gorm:"column:completed;not null;default:false" json:"completed"`
  Skipped      bool           `gorm:"column:skipped;not null;default:false" json:"skipped"`
  PreState     datatypes.JSON `gorm:"column:pre_state;type:jsonb" json:"pre_state"`
  PostShift    string         `gorm:"column:post_shift" json:"post_shift"`
  CreatedAt    time.Time   `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt    time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (PracticeEvent) TableName() string {
  return "practice_event"
}
