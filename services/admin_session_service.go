package services

import (
	"context"
	"log"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminSessionService records dashboard logins so a token can be revoked
// before its JWT expiry.
type AdminSessionService struct {
	db *gorm.DB
}

func NewAdminSessionService(db *gorm.DB) *AdminSessionService {
	return &AdminSessionService{db: db}
}

// CreateSession stores the hash of token for adminID.
func (s *AdminSessionService) CreateSession(
	ctx context.Context,
	adminID uuid.UUID,
	token string,
	ipAddress string,
	userAgent string,
) (*models.AdminSession, error) {
	now := time.Now()
	session := &models.AdminSession{
		AdminID:        adminID,
		TokenHash:      HashAdminToken(token),
		IPAddress:      ipAddress,
		UserAgent:      userAgent,
		LastActivityAt: now,
		ExpiresAt:      now.Add(models.AdminSessionTTL),
		IsActive:       true,
	}

	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		log.Printf("[session] failed to create session: %v", err)
		return nil, err
	}

	log.Printf("[session] created session %s for admin %s", session.ID, adminID)
	return session, nil
}

// ValidateSession reports whether tokenHash belongs to an active, unexpired
// session and bumps its last activity.
func (s *AdminSessionService) ValidateSession(ctx context.Context, tokenHash string) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.AdminSession{}).
		Where("token_hash = ? AND is_active = ? AND expires_at > ?", tokenHash, true, time.Now()).
		Update("last_activity_at", time.Now())
	if res.Error != nil {
		log.Printf("[session] failed to update session activity: %v", res.Error)
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeactivateSession ends the session for one token (logout).
func (s *AdminSessionService) DeactivateSession(ctx context.Context, tokenHash string) error {
	if err := s.db.WithContext(ctx).
		Model(&models.AdminSession{}).
		Where("token_hash = ?", tokenHash).
		Update("is_active", false).Error; err != nil {
		log.Printf("[session] failed to deactivate session: %v", err)
		return err
	}
	return nil
}

// DeactivateAllSessions logs an admin out everywhere. Used when an account
// is suspended.
func (s *AdminSessionService) DeactivateAllSessions(ctx context.Context, adminID uuid.UUID) error {
	if err := s.db.WithContext(ctx).
		Model(&models.AdminSession{}).
		Where("admin_id = ? AND is_active = ?", adminID, true).
		Update("is_active", false).Error; err != nil {
		log.Printf("[session] failed to deactivate sessions: %v", err)
		return err
	}
	log.Printf("[session] deactivated all sessions for admin %s", adminID)
	return nil
}

// CleanupExpiredSessions deletes expired sessions and inactive ones idle
// for more than a week.
func (s *AdminSessionService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at < ? OR (is_active = ? AND last_activity_at < ?)",
			time.Now(),
			false,
			time.Now().Add(-7*24*time.Hour),
		).
		Delete(&models.AdminSession{})

	if result.Error != nil {
		log.Printf("[session] failed to cleanup expired sessions: %v", result.Error)
		return 0, result.Error
	}

	log.Printf("[session] cleaned up %d expired sessions", result.RowsAffected)
	return result.RowsAffected, nil
}
