package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AvailabilityInStock    = "in_stock"
	AvailabilityOutOfStock = "out_of_stock"
	AvailabilityRareFind   = "rare_find"
)

// ═══════════════════════════════════════════════════════════
// Part (GORM)
// ═══════════════════════════════════════════════════════════

type Part struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string          `json:"name" gorm:"not null;index"`
	Slug          string          `json:"slug" gorm:"not null;uniqueIndex"`
	Description   string          `json:"description" gorm:"type:text;not null;default:''"`
	Category      string          `json:"category" gorm:"not null;index"`
	Subcategory   *string         `json:"subcategory,omitempty" gorm:"index"`
	Brand         string          `json:"brand" gorm:"not null;index"`
	PartNumber    *string         `json:"part_number,omitempty"`
	Price         decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null;check:price >= 0"`
	StockQuantity int             `json:"stock_quantity" gorm:"not null;default:0;check:stock_quantity >= 0"`
	Availability  string          `json:"availability" gorm:"not null;index;check:availability IN ('in_stock', 'out_of_stock', 'rare_find')"`
	Images        pq.StringArray  `json:"images" gorm:"type:text[]"`
	Vehicles      []Vehicle       `json:"vehicles,omitempty" gorm:"many2many:part_vehicles;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime;index:idx_parts_created,sort:desc"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (p *Part) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	p.Availability = ResolveAvailability(p.StockQuantity, p.Availability)
	if p.Images == nil {
		p.Images = pq.StringArray{}
	}
	return nil
}

func (Part) TableName() string {
	return "parts"
}

// PrimaryImage returns the first image URL or "" when the part has none.
func (p *Part) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Purchasable reports whether the part can be added to a cart.
func (p *Part) Purchasable() bool {
	return p.StockQuantity > 0 && p.Availability != AvailabilityOutOfStock
}

// ResolveAvailability derives the availability flag from stock. A rare find
// keeps its label while stock lasts.
func ResolveAvailability(stock int, requested string) string {
	if stock <= 0 {
		return AvailabilityOutOfStock
	}
	if requested == AvailabilityRareFind {
		return AvailabilityRareFind
	}
	return AvailabilityInStock
}

// ═══════════════════════════════════════════════════════════
// Vehicle (GORM)
// ═══════════════════════════════════════════════════════════

type Vehicle struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Make      string    `json:"make" gorm:"not null;index:idx_vehicle_make_model"`
	Model     string    `json:"model" gorm:"not null;index:idx_vehicle_make_model"`
	YearFrom  int       `json:"year_from" gorm:"not null"`
	YearTo    *int      `json:"year_to,omitempty"`
	Engine    *string   `json:"engine,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// Label renders "Nissan Skyline R34 (1999-2002)".
func (v *Vehicle) Label() string {
	years := strconv.Itoa(v.YearFrom) + "-"
	if v.YearTo != nil {
		years += strconv.Itoa(*v.YearTo)
	}
	label := v.Make + " " + v.Model
	if v.Engine != nil && *v.Engine != "" {
		label += " " + *v.Engine
	}
	return label + " (" + years + ")"
}

// ═══════════════════════════════════════════════════════════
// Requests
// ═══════════════════════════════════════════════════════════

type CreatePartRequest struct {
	Name          string          `json:"name" binding:"required,min=2,max=200"`
	Description   string          `json:"description" binding:"max=5000"`
	Category      string          `json:"category" binding:"required,max=100"`
	Subcategory   *string         `json:"subcategory" binding:"omitempty,max=100"`
	Brand         string          `json:"brand" binding:"required,max=100"`
	PartNumber    *string         `json:"part_number" binding:"omitempty,max=100"`
	Price         decimal.Decimal `json:"price" swaggertype:"string" example:"149.99"`
	StockQuantity int             `json:"stock_quantity" binding:"min=0"`
	Availability  string          `json:"availability" binding:"omitempty,oneof=in_stock out_of_stock rare_find"`
	Images        []string        `json:"images" binding:"omitempty,dive,url"`
	VehicleIDs    []uuid.UUID     `json:"vehicle_ids"`
}

type UpdatePartRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=2,max=200"`
	Description   *string          `json:"description" binding:"omitempty,max=5000"`
	Category      *string          `json:"category" binding:"omitempty,max=100"`
	Subcategory   *string          `json:"subcategory" binding:"omitempty,max=100"`
	Brand         *string          `json:"brand" binding:"omitempty,max=100"`
	PartNumber    *string          `json:"part_number" binding:"omitempty,max=100"`
	Price         *decimal.Decimal `json:"price" swaggertype:"string"`
	StockQuantity *int             `json:"stock_quantity" binding:"omitempty,min=0"`
	Availability  *string          `json:"availability" binding:"omitempty,oneof=in_stock out_of_stock rare_find"`
	Images        *[]string        `json:"images" binding:"omitempty,dive,url"`
	VehicleIDs    *[]uuid.UUID     `json:"vehicle_ids"`
}

type CreateVehicleRequest struct {
	Make     string  `json:"make" binding:"required,max=60"`
	Model    string  `json:"model" binding:"required,max=60"`
	YearFrom int     `json:"year_from" binding:"required,min=1950,max=2100"`
	YearTo   *int    `json:"year_to" binding:"omitempty,min=1950,max=2100"`
	Engine   *string `json:"engine" binding:"omitempty,max=60"`
}

// ═══════════════════════════════════════════════════════════
// Storefront responses
// ═══════════════════════════════════════════════════════════

// PartSummary is the thin card shown in catalog listings.
type PartSummary struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Brand        string          `json:"brand"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price" swaggertype:"string"`
	Availability string          `json:"availability"`
	Image        string          `json:"image"`
}

type PartStats struct {
	TotalParts      int64           `json:"total_parts"`
	InStock         int64           `json:"in_stock"`
	OutOfStock      int64           `json:"out_of_stock"`
	RareFinds       int64           `json:"rare_finds"`
	LowStock        int64           `json:"low_stock"`
	InventoryValue  decimal.Decimal `json:"inventory_value" swaggertype:"string"`
	TotalCategories int64           `json:"total_categories"`
}
