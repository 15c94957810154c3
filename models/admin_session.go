package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminSessionTTL matches the lifetime of the admin JWT.
const AdminSessionTTL = 7 * 24 * time.Hour

// AdminSession tracks a dashboard login so it can be revoked on logout.
type AdminSession struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	AdminID        uuid.UUID `json:"admin_id" gorm:"type:uuid;not null;index"`
	TokenHash      string    `json:"-" gorm:"not null;uniqueIndex"` // sha256 of the JWT
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	LastActivityAt time.Time `json:"last_activity_at" gorm:"index"`
	ExpiresAt      time.Time `json:"expires_at" gorm:"index"`
	IsActive       bool      `json:"is_active" gorm:"default:true;index"`
}

func (as *AdminSession) BeforeCreate(tx *gorm.DB) error {
	if as.ID == uuid.Nil {
		as.ID = uuid.Must(uuid.NewV7())
	}
	now := time.Now()
	if as.ExpiresAt.IsZero() {
		as.ExpiresAt = now.Add(AdminSessionTTL)
	}
	if as.LastActivityAt.IsZero() {
		as.LastActivityAt = now
	}
	return nil
}

func (AdminSession) TableName() string {
	return "admin_sessions"
}
