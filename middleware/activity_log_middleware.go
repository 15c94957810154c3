package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreatedResourceIDKey is set by create handlers so the audit entry can name
// the new row.
const CreatedResourceIDKey = "activityCreatedID"

// ════════════════════════════════════════════════════════════
// Configuration Maps
// ════════════════════════════════════════════════════════════

// pathToResourceType maps URL path segments to resource types
var pathToResourceType = map[string]string{
	"parts":           models.ResourceTypePart,
	"vehicles":        models.ResourceTypeVehicle,
	"obd-codes":       models.ResourceTypeOBDCode,
	"solutions":       models.ResourceTypeSolution,
	"obd-submissions": models.ResourceTypeOBDSubmission,
	"orders":          models.ResourceTypeOrder,
}

// resourceTypeToNameField maps resource types to their JSON name field
var resourceTypeToNameField = map[string]string{
	models.ResourceTypePart:          "name",
	models.ResourceTypeVehicle:       "model",
	models.ResourceTypeOBDCode:       "code",
	models.ResourceTypeSolution:      "title",
	models.ResourceTypeOBDSubmission: "code",
	models.ResourceTypeOrder:         "order_number",
}

var methodToActionVerb = map[string]string{
	"POST":   "created",
	"PATCH":  "updated",
	"PUT":    "updated",
	"DELETE": "deleted",
}

// trailingSegmentAction names sub-resource actions such as
// POST /orders/:id/send-invoice.
var trailingSegmentAction = map[string]string{
	"approve":      "approved",
	"reject":       "rejected",
	"status":       "updated_status",
	"send-invoice": "sent_invoice",
	"images":       "uploaded_images",
	"parts":        "linked_parts",
}

// ════════════════════════════════════════════════════════════
// Activity Logging Middleware
// ════════════════════════════════════════════════════════════

// ActivityLoggingMiddleware records every admin write with before/after
// snapshots. Must run after AdminAuthMiddleware.
func ActivityLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		adminID, adminEmail, ok := AdminFromContext(c)
		if !ok {
			log.Printf("[activity-logging] warning: admin info not in context")
			c.Next()
			return
		}

		resourceType, action := classifyPath(c.Request.Method, c.Request.URL.Path)
		if resourceType == "" {
			log.Printf("[activity-logging] could not determine resource type from path: %s", c.Request.URL.Path)
			c.Next()
			return
		}

		// POST /obd-codes/:id/solutions carries the parent id, not the new one.
		resourceID := c.Param("id")
		isCreate := action == "created_"+resourceType
		if isCreate {
			resourceID = ""
		}

		var beforeObject any
		if resourceID != "" {
			beforeObject = fetchResourceFromDB(resourceType, resourceID)
		}
		resourceName := extractResourceName(resourceType, beforeObject)

		c.Next()

		statusCode := c.Writer.Status()
		if statusCode >= 200 && statusCode < 300 {
			if isCreate {
				if created, exists := c.Get(CreatedResourceIDKey); exists {
					resourceID, _ = created.(string)
				}
			}

			var afterObject any
			if resourceID != "" && c.Request.Method != http.MethodDelete {
				afterObject = fetchResourceFromDB(resourceType, resourceID)
			}
			if name := extractResourceName(resourceType, afterObject); name != "" {
				resourceName = name
			}

			_ = services.LogActivity(services.LogActivityRequest{
				AdminID:      adminID,
				AdminEmail:   adminEmail,
				Action:       action,
				ResourceType: resourceType,
				ResourceID:   resourceID,
				ResourceName: resourceName,
				Changes:      services.CreateChanges(beforeObject, afterObject),
				Status:       models.StatusSuccess,
				Context:      c,
			})
			return
		}

		_ = services.LogActivity(services.LogActivityRequest{
			AdminID:      adminID,
			AdminEmail:   adminEmail,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			ResourceName: resourceName,
			Status:       models.StatusFailed,
			ErrorMessage: "Request failed with status " + strconv.Itoa(statusCode) + " " + http.StatusText(statusCode),
			Context:      c,
		})
		log.Printf("[activity-logging] failed: %s by %s - status %d", action, adminEmail, statusCode)
	}
}

// ════════════════════════════════════════════════════════════
// Helper Functions
// ════════════════════════════════════════════════════════════

// classifyPath finds the audited resource and action for a request path.
// A trailing action segment after an id ("/orders/<id>/status") belongs to
// the collection before it; otherwise the last known collection wins, so
// "/obd-codes/<id>/solutions" creates a solution.
func classifyPath(method, path string) (resourceType, action string) {
	segments := strings.Split(strings.TrimSuffix(path, "/"), "/")
	n := len(segments)
	end := n - 1
	verb := methodToActionVerb[method]

	if n >= 2 && isIDParam(segments[n-2]) {
		if trailing, ok := trailingSegmentAction[segments[n-1]]; ok {
			verb = trailing
			end = n - 3
		}
	}
	if verb == "" {
		return "", ""
	}

	for i := end; i >= 0; i-- {
		if isIDParam(segments[i]) {
			continue
		}
		if rt, exists := pathToResourceType[segments[i]]; exists {
			return rt, verb + "_" + rt
		}
	}
	return "", ""
}

func isIDParam(segment string) bool {
	if segment == ":id" || segment == "" {
		return true
	}
	_, err := uuid.Parse(segment)
	return err == nil
}

func fetchResourceFromDB(resourceType, resourceID string) any {
	if config.DB == nil {
		return nil
	}
	if _, err := uuid.Parse(resourceID); err != nil {
		return nil
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()
	db := config.DB.WithContext(ctx)

	var (
		obj any
		err error
	)
	switch resourceType {
	case models.ResourceTypePart:
		var part models.Part
		err = db.Preload("Vehicles").First(&part, "id = ?", resourceID).Error
		obj = part
	case models.ResourceTypeVehicle:
		var vehicle models.Vehicle
		err = db.First(&vehicle, "id = ?", resourceID).Error
		obj = vehicle
	case models.ResourceTypeOBDCode:
		var code models.OBDCode
		err = db.First(&code, "id = ?", resourceID).Error
		obj = code
	case models.ResourceTypeSolution:
		var solution models.Solution
		err = db.Preload("Parts").First(&solution, "id = ?", resourceID).Error
		obj = solution
	case models.ResourceTypeOBDSubmission:
		var submission models.OBDSubmission
		err = db.First(&submission, "id = ?", resourceID).Error
		obj = submission
	case models.ResourceTypeOrder:
		var order models.Order
		err = db.First(&order, "id = ?", resourceID).Error
		obj = order
	default:
		return nil
	}
	if err != nil {
		log.Printf("[activity-logging] failed to fetch %s %s: %v", resourceType, resourceID, err)
		return nil
	}
	return obj
}

// extractResourceName reads the display field for resourceType out of obj.
func extractResourceName(resourceType string, obj any) string {
	if obj == nil {
		return ""
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return ""
	}
	var resourceMap map[string]any
	if err := json.Unmarshal(data, &resourceMap); err != nil {
		return ""
	}
	fieldName := resourceTypeToNameField[resourceType]
	if value, exists := resourceMap[fieldName]; exists {
		return toString(value)
	}
	return ""
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
