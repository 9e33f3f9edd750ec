package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

type PersonalizedRule struct {
  gorm.Model
  ID          uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
  User        *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  RuleType    string          `gorm:"column:rule_type;not null" json:"rule_type"`
  RuleContent datatypes.JSON  `gorm:"column:rule_content;type:jsonb;not null" json:"rule_content"`
  Active      bool            `gorm:"column:active;not null;default:true" json:"active"`
  Confidence  float64         `gorm:"column:confidence;not null;default:0.5" json:"confidence"`
  CreatedAt   time.Time       `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt   time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (PersonalizedRule) TableName() string {
  return "personalized_rule"
}
