package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

// UserToken pairs one access token with the refresh token that can rotate
// it. Refresh rotates the row in place; logout deletes it.
type UserToken struct {
  gorm.Model
  ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
  User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  AccessToken  string    `gorm:"uniqueIndex;not null;column:access_token" json:"access_token"`
  RefreshToken string    `gorm:"uniqueIndex;not null;column:refresh_token" json:"refresh_token"`
  ExpiresAt    time.Time `gorm:"column:expires_at" json:"expires_at"`
  CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserToken) TableName() string {
  return "user_token"
}
