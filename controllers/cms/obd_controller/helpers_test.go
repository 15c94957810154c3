package obd_controller

import (
	"testing"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/stretchr/testify/assert"
)

func TestCodeFromSubmission(t *testing.T) {
	symptoms := "Rough idle when cold"
	sub := models.OBDSubmission{Code: "P0301", Description: "Cylinder 1 misfire", Symptoms: &symptoms}

	code := codeFromSubmission(sub, nil)
	assert.Equal(t, "P0301", code.Code)
	assert.Equal(t, models.SeverityMedium, code.Severity)
	assert.Equal(t, []string{"Rough idle when cold"}, []string(code.Symptoms))

	high := models.SeverityHigh
	code = codeFromSubmission(models.OBDSubmission{Code: "U0100", Description: "Lost comms with ECM"}, &high)
	assert.Equal(t, models.SeverityHigh, code.Severity)
	assert.Empty(t, code.Symptoms)
}
