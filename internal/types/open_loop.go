package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

type OpenLoop struct {
  gorm.Model
  ID              uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID          uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
  User            *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  DomainID        *uuid.UUID  `gorm:"type:uuid;index" json:"domain_id,omitempty"`
  Domain          *Domain     `gorm:"constraint:OnDelete:SET NULL;foreignKey:DomainID;references:ID" json:"domain,omitempty"`
  Description     string      `gorm:"column:description;not null" json:"description"`
  Status          string      `gorm:"column:status;not null;default:'open';index" json:"status"`
  Source          string      `gorm:"column:source;not null;default:'manual'" json:"source"`
  CommitmentType  string      `gorm:"column:commitment_type" json:"commitment_type"`
  ExternalParty   string      `gorm:"column:external_party" json:"external_party"`
  Deadline        *time.Time  `gorm:"column:deadline" json:"deadline,omitempty"`
  CognitivePull   int         `gorm:"column:cognitive_pull;not null;default:3" json:"cognitive_pull"`
  ImpactScore     float64     `gorm:"column:impact_score" json:"impact_score"`
  ConfidenceScore float64     `gorm:"column:confidence_score" json:"confidence_score"`
  EaseScore       float64     `gorm:"column:ease_score" json:"ease_score"`
  IceScore        float64     `gorm:"column:ice_score" json:"ice_score"`
  ClosedAt        *time.Time  `gorm:"column:closed_at" json:"closed_at,omitempty"`
  CreatedAt       time.Time   `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (OpenLoop) TableName() string {
  return "open_loop"
}
