package models

// ContactRequest is the public contact form.
type ContactRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=100"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=30"`
	Subject *string `json:"subject" binding:"omitempty,max=150"`
	Message string  `json:"message" binding:"required,min=10,max=5000"`
}

// ServiceRequest books a workshop slot.
type ServiceRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=100"`
	Email         string  `json:"email" binding:"required,email"`
	Phone         string  `json:"phone" binding:"required,max=30"`
	VehicleMake   string  `json:"vehicle_make" binding:"required,max=60"`
	VehicleModel  string  `json:"vehicle_model" binding:"required,max=60"`
	VehicleYear   *int    `json:"vehicle_year" binding:"omitempty,min=1950,max=2100"`
	Registration  *string `json:"registration" binding:"omitempty,max=10"`
	ServiceType   string  `json:"service_type" binding:"required,oneof=servicing diagnostics remapping performance repair mot other"`
	PreferredDate *string `json:"preferred_date" binding:"omitempty,datetime=2006-01-02"`
	Notes         *string `json:"notes" binding:"omitempty,max=5000"`
}

// PaymentIntentRequest is the raw body of POST /api/create-payment-intent.
// Amount stays untyped so presence, type and integrality can be reported
// separately.
type PaymentIntentRequest struct {
	Amount   any     `json:"amount" swaggertype:"integer"`
	Currency *string `json:"currency"`
}

type PaymentIntentResponse struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
}

type PaymentErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
