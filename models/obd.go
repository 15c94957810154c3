package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"

	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// systemByPrefix maps the first character of an OBD-II code to its system.
var systemByPrefix = map[byte]string{
	'P': "powertrain",
	'B': "body",
	'C': "chassis",
	'U': "network",
}

// CodeSystem returns the vehicle system a code belongs to, or "".
func CodeSystem(code string) string {
	if code == "" {
		return ""
	}
	return systemByPrefix[strings.ToUpper(code)[0]]
}

// ═══════════════════════════════════════════════════════════
// OBD code (GORM)
// ═══════════════════════════════════════════════════════════

type OBDCode struct {
	ID           uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	Code         string                      `json:"code" gorm:"size:5;not null;uniqueIndex"`
	System       string                      `json:"system" gorm:"not null;index"`
	Description  string                      `json:"description" gorm:"type:text;not null"`
	Severity     string                      `json:"severity" gorm:"not null;index;check:severity IN ('low', 'medium', 'high')"`
	CommonCauses datatypes.JSONSlice[string] `json:"common_causes" gorm:"type:jsonb;not null;default:'[]'"`
	Symptoms     datatypes.JSONSlice[string] `json:"symptoms" gorm:"type:jsonb;not null;default:'[]'"`
	Solutions    []Solution                  `json:"solutions,omitempty" gorm:"foreignKey:OBDCodeID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time                   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time                   `json:"updated_at" gorm:"autoUpdateTime"`
}

func (o *OBDCode) BeforeSave(tx *gorm.DB) error {
	o.Code = strings.ToUpper(strings.TrimSpace(o.Code))
	o.System = CodeSystem(o.Code)
	if o.CommonCauses == nil {
		o.CommonCauses = datatypes.JSONSlice[string]{}
	}
	if o.Symptoms == nil {
		o.Symptoms = datatypes.JSONSlice[string]{}
	}
	return nil
}

func (o *OBDCode) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (OBDCode) TableName() string {
	return "obd_codes"
}

// ═══════════════════════════════════════════════════════════
// Solution (GORM)
// ═══════════════════════════════════════════════════════════

type Solution struct {
	ID            uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	OBDCodeID     uuid.UUID                   `json:"obd_code_id" gorm:"type:uuid;not null;index"`
	Title         string                      `json:"title" gorm:"not null"`
	Steps         datatypes.JSONSlice[string] `json:"steps" gorm:"type:jsonb;not null;default:'[]'"`
	Difficulty    string                      `json:"difficulty" gorm:"not null;check:difficulty IN ('easy', 'moderate', 'hard', 'professional')"`
	EstimatedTime string                      `json:"estimated_time"`
	SortOrder     int                         `json:"sort_order" gorm:"not null;default:0"`
	Parts         []Part                      `json:"parts,omitempty" gorm:"many2many:solution_parts;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time                   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time                   `json:"updated_at" gorm:"autoUpdateTime"`
}

func (s *Solution) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.Must(uuid.NewV7())
	}
	if s.Steps == nil {
		s.Steps = datatypes.JSONSlice[string]{}
	}
	return nil
}

func (Solution) TableName() string {
	return "solutions"
}

// ═══════════════════════════════════════════════════════════
// Public submission (GORM)
// ═══════════════════════════════════════════════════════════

// OBDSubmission is a code reported by a visitor, held until staff review it.
type OBDSubmission struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Code           string     `json:"code" gorm:"size:5;not null;index"`
	Description    string     `json:"description" gorm:"type:text;not null"`
	Symptoms       *string    `json:"symptoms,omitempty" gorm:"type:text"`
	VehicleMake    *string    `json:"vehicle_make,omitempty"`
	VehicleModel   *string    `json:"vehicle_model,omitempty"`
	VehicleYear    *int       `json:"vehicle_year,omitempty"`
	SubmitterEmail *string    `json:"submitter_email,omitempty"`
	Status         string     `json:"status" gorm:"not null;index;default:pending"`
	ReviewNotes    *string    `json:"review_notes,omitempty"`
	ReviewedBy     *uuid.UUID `json:"reviewed_by,omitempty" gorm:"type:uuid"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime;index"`
}

func (s *OBDSubmission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.Must(uuid.NewV7())
	}
	s.Code = strings.ToUpper(strings.TrimSpace(s.Code))
	if s.Status == "" {
		s.Status = SubmissionPending
	}
	return nil
}

func (OBDSubmission) TableName() string {
	return "obd_submissions"
}

// ═══════════════════════════════════════════════════════════
// Requests
// ═══════════════════════════════════════════════════════════

type CreateOBDCodeRequest struct {
	Code         string   `json:"code" binding:"required,len=5"`
	Description  string   `json:"description" binding:"required,max=2000"`
	Severity     string   `json:"severity" binding:"required,oneof=low medium high"`
	CommonCauses []string `json:"common_causes" binding:"omitempty,dive,max=300"`
	Symptoms     []string `json:"symptoms" binding:"omitempty,dive,max=300"`
}

type UpdateOBDCodeRequest struct {
	Description  *string   `json:"description" binding:"omitempty,max=2000"`
	Severity     *string   `json:"severity" binding:"omitempty,oneof=low medium high"`
	CommonCauses *[]string `json:"common_causes"`
	Symptoms     *[]string `json:"symptoms"`
}

type CreateSolutionRequest struct {
	Title         string      `json:"title" binding:"required,max=200"`
	Steps         []string    `json:"steps" binding:"required,min=1,dive,max=1000"`
	Difficulty    string      `json:"difficulty" binding:"required,oneof=easy moderate hard professional"`
	EstimatedTime string      `json:"estimated_time" binding:"max=60"`
	SortOrder     int         `json:"sort_order"`
	PartIDs       []uuid.UUID `json:"part_ids"`
}

type UpdateSolutionRequest struct {
	Title         *string   `json:"title" binding:"omitempty,max=200"`
	Steps         *[]string `json:"steps" binding:"omitempty,min=1"`
	Difficulty    *string   `json:"difficulty" binding:"omitempty,oneof=easy moderate hard professional"`
	EstimatedTime *string   `json:"estimated_time" binding:"omitempty,max=60"`
	SortOrder     *int      `json:"sort_order"`
}

type LinkSolutionPartsRequest struct {
	PartIDs []uuid.UUID `json:"part_ids"`
}

type CreateOBDSubmissionRequest struct {
	Code           string  `json:"code" binding:"required,len=5"`
	Description    string  `json:"description" binding:"required,min=5,max=2000"`
	Symptoms       *string `json:"symptoms" binding:"omitempty,max=2000"`
	VehicleMake    *string `json:"vehicle_make" binding:"omitempty,max=60"`
	VehicleModel   *string `json:"vehicle_model" binding:"omitempty,max=60"`
	VehicleYear    *int    `json:"vehicle_year" binding:"omitempty,min=1950,max=2100"`
	SubmitterEmail *string `json:"submitter_email" binding:"omitempty,email"`
}

type ReviewOBDSubmissionRequest struct {
	Notes    *string `json:"notes" binding:"omitempty,max=2000"`
	Severity *string `json:"severity" binding:"omitempty,oneof=low medium high"`
}

// OBDCodeSummary is a single search hit.
type OBDCodeSummary struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	System        string    `json:"system"`
	Description   string    `json:"description"`
	Severity      string    `json:"severity"`
	SolutionCount int       `json:"solution_count"`
}
