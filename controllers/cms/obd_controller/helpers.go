package obd_controller

import (
	"context"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/google/uuid"
)

// loadParts fetches the parts behind ids and reports whether every id exists.
func loadParts(ctx context.Context, ids []uuid.UUID) ([]models.Part, bool, error) {
	parts := make([]models.Part, 0, len(ids))
	if len(ids) == 0 {
		return parts, true, nil
	}
	if err := config.DB.WithContext(ctx).Where("id IN ?", ids).Find(&parts).Error; err != nil {
		return nil, false, err
	}
	distinct := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		distinct[id] = struct{}{}
	}
	return parts, len(parts) == len(distinct), nil
}

// codeFromSubmission drafts the catalog entry created when a visitor's
// report is approved for a code that does not exist yet.
func codeFromSubmission(sub models.OBDSubmission, severity *string) models.OBDCode {
	code := models.OBDCode{
		Code:        sub.Code,
		Description: sub.Description,
		Severity:    models.SeverityMedium,
	}
	if severity != nil {
		code.Severity = *severity
	}
	if sub.Symptoms != nil && *sub.Symptoms != "" {
		code.Symptoms = append(code.Symptoms, *sub.Symptoms)
	}
	return code
}
