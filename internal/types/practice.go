package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

type Practice struct {
  gorm.Model
  ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Name            string          `gorm:"column:name;not null;uniqueIndex" json:"name"`
  Kind            string          `gorm:"column:kind;not null" json:"kind"`
  DurationSeconds int             `gorm:"column:duration_seconds;not null" json:"duration_seconds"`
  Instructions    datatypes.JSON  `gorm:"column:instructions;type:jsonb" json:"instructions"`
  CreatedAt       time.Time       `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (Practice) TableName() string {
  return "practice"
}
