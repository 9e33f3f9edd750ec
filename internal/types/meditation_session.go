package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

type MeditationSession struct {
  gorm.Model
  ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
  User            *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  DurationSeconds int             `gorm:"column:duration_seconds;not null;default:0" json:"duration_seconds"`
  BreathPattern   string          `gorm:"column:breath_pattern" json:"breath_pattern"`
  DidVisualization bool           `gorm:"column:did_visualization;not null;default:false" json:"did_visualization"`
  Completed       bool            `gorm:"column:completed;not null;default:false" json:"completed"`
  PreState        datatypes.JSON  `gorm:"column:pre_state;type:jsonb" json:"pre_state"`
  PostState       datatypes.JSON  `gorm:"column:post_state;type:jsonb" json:"post_state"`
  BrainDumpRaw    string          `gorm:"column:brain_dump_raw" json:"brain_dump_raw"`
  Extraction      datatypes.JSON  `gorm:"column:extraction;type:jsonb" json:"extraction"`
  CreatedAt       time.Time       `gorm:"not null;default:now();index" json:"created_at"`
  UpdatedAt       time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (MeditationSession) TableName() string {
  return "meditation_session"
}
