package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

type EmbodimentEvent struct {
  gorm.Model
  ID                    uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID                uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
  User                  *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  MeditationSessionID   *uuid.UUID  `gorm:"type:uuid;column:meditation_session_id;index" json:"meditation_session_id"`
  MeditationSession     *MeditationSession `gorm:"constraint:OnDelete:CASCADE;foreignKey:MeditationSessionID;references:ID" json:"meditation_session,omitempty"`
  DirectiveText         string      `gorm:"column:directive_text;not null" json:"directive_text"`
  Emotion               string      `gorm:"column:emotion;not null" json:"emotion"`
  Outcome               string      `gorm:"column:outcome;not null" json:"outcome"`
  DurationMinutes       int         `gorm:"column:duration_minutes;not null;default:15" json:"duration_minutes"`
  Reasoning             string      `gorm:"column:reasoning" json:"reasoning"`
  FeltShift             string      `gorm:"column:felt_shift" json:"felt_shift"`
  ActualDurationSeconds int         `gorm:"column:actual_duration_seconds;not null;default:0" json:"actual_duration_seconds"`
  Skipped               bool        `gorm:"column:skipped;not null;default:false" json:"skipped"`
  Completed             bool        `gorm:"column:completed;not null;default:false" json:"completed"`
  CreatedAt             time.Time   `gorm:"not null;default:now();index" json:"created_at"`
  UpdatedAt             time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (EmbodimentEvent) TableName() string {
  return "embodiment_event"
}
