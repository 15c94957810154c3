package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityLogService writes the admin audit trail.
type ActivityLogService struct {
	db *gorm.DB
}

func NewActivityLogService(db *gorm.DB) *ActivityLogService {
	return &ActivityLogService{db: db}
}

// LogActivityRequest contains the parameters for logging an activity
type LogActivityRequest struct {
	AdminID      uuid.UUID      // Who performed the action
	AdminEmail   string         // Admin's email
	Action       string         // created_part, updated_order ...
	ResourceType string         // models.ResourceType*
	ResourceID   string         // part id, obd code, order id ...
	ResourceName string         // part name, code, order number ...
	Changes      map[string]any // {before: {...}, after: {...}}
	Status       string         // StatusSuccess or StatusFailed
	ErrorMessage string
	Context      *gin.Context // For IP and User-Agent extraction
}

// LogActivity stores one audit entry. Failures are logged and swallowed so
// auditing never fails the admin request.
func (s *ActivityLogService) LogActivity(req LogActivityRequest) error {
	if req.AdminID == uuid.Nil {
		log.Printf("[activity-log] warning: AdminID is nil for action %s", req.Action)
		return nil
	}

	userAgent := ""
	if req.Context != nil {
		userAgent = req.Context.GetHeader("User-Agent")
	}

	var changesJSON []byte
	if req.Changes != nil {
		data, err := json.Marshal(req.Changes)
		if err != nil {
			log.Printf("[activity-log] failed to marshal changes: %v", err)
			changesJSON = []byte("{}")
		} else {
			changesJSON = data
		}
	}

	if req.Status == "" {
		req.Status = models.StatusSuccess
	}

	entry := models.ActivityLog{
		AdminID:      req.AdminID,
		AdminEmail:   req.AdminEmail,
		Action:       req.Action,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		ResourceName: req.ResourceName,
		Changes:      changesJSON,
		Status:       req.Status,
		ErrorMessage: req.ErrorMessage,
		IPAddress:    extractClientIP(req.Context),
		UserAgent:    userAgent,
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("[activity-log] failed to create activity log: %v", err)
		return nil
	}

	log.Printf("[activity-log] %s: %s/%s/%s by %s", req.Action, req.ResourceType, req.ResourceID, req.ResourceName, req.AdminEmail)
	return nil
}

// ActivityFilter narrows ListActivity. Nil fields are not applied.
type ActivityFilter struct {
	ResourceType *string
	ResourceID   *string
	AdminID      *uuid.UUID
	Page         int
	Limit        int
}

// ListActivity returns newest-first audit entries and the total match count.
func (s *ActivityLogService) ListActivity(ctx context.Context, f ActivityFilter) ([]models.ActivityLog, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.ActivityLog{})
	if f.ResourceType != nil {
		q = q.Where("resource_type = ?", *f.ResourceType)
	}
	if f.ResourceID != nil {
		q = q.Where("resource_id = ?", *f.ResourceID)
	}
	if f.AdminID != nil {
		q = q.Where("admin_id = ?", *f.AdminID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.ActivityLog
	err := q.Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&logs).Error
	return logs, total, err
}

// extractClientIP prefers proxy headers over the socket address.
func extractClientIP(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		return forwardedFor
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.RemoteIP()
}

var activityLogService *ActivityLogService

// InitActivityLogService installs the global service used by the activity
// middleware.
func InitActivityLogService(db *gorm.DB) {
	activityLogService = NewActivityLogService(db)
}

// GetActivityLogService returns the global service, or nil before init.
func GetActivityLogService() *ActivityLogService {
	return activityLogService
}

// LogActivity logs with the global service; it is a no-op before init.
func LogActivity(req LogActivityRequest) error {
	if activityLogService == nil {
		return nil
	}
	return activityLogService.LogActivity(req)
}

func CreateChanges(before, after any) map[string]any {
	return map[string]any{
		"before": before,
		"after":  after,
	}
}

func LogActivitySuccess(adminID uuid.UUID, adminEmail string, action, resourceType, resourceID, resourceName string, changes map[string]any, c *gin.Context) error {
	return LogActivity(LogActivityRequest{
		AdminID:      adminID,
		AdminEmail:   adminEmail,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		ResourceName: resourceName,
		Changes:      changes,
		Status:       models.StatusSuccess,
		Context:      c,
	})
}
