package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

type Domain struct {
  gorm.Model
  ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_domain_user_name" json:"user_id"`
  User           *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Name           string     `gorm:"column:name;not null;uniqueIndex:idx_domain_user_name" json:"name"`
  IdentityWeight float64    `gorm:"column:identity_weight;not null;default:0.5" json:"identity_weight"`
  CreatedAt      time.Time  `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt      time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Domain) TableName() string {
  return "domain"
}
