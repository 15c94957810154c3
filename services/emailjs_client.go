package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
)

const emailJSBaseURL = "https://api.emailjs.com"

var ErrEmailDelivery = errors.New("email delivery failed")

// EmailJSClient submits the public contact and service-request forms to
// EmailJS, which forwards them to the workshop inbox.
type EmailJSClient struct {
	cfg        config.EmailJSConfig
	baseURL    string
	httpClient *http.Client
}

func NewEmailJSClient(cfg config.EmailJSConfig) *EmailJSClient {
	return &EmailJSClient{
		cfg:        cfg,
		baseURL:    emailJSBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL points the client at another host. Tests use an httptest server.
func (e *EmailJSClient) WithBaseURL(url string) *EmailJSClient {
	e.baseURL = url
	return e
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// SendContact forwards the contact form.
func (e *EmailJSClient) SendContact(ctx context.Context, req models.ContactRequest) error {
	params := map[string]string{
		"from_name":  req.Name,
		"from_email": req.Email,
		"reply_to":   req.Email,
		"phone":      deref(req.Phone),
		"subject":    orDefault(req.Subject, "Website enquiry"),
		"message":    req.Message,
	}
	return e.send(ctx, e.cfg.ContactTemplateID, params)
}

// SendServiceRequest forwards a workshop booking request.
func (e *EmailJSClient) SendServiceRequest(ctx context.Context, req models.ServiceRequest) error {
	year := ""
	if req.VehicleYear != nil {
		year = strconv.Itoa(*req.VehicleYear)
	}
	params := map[string]string{
		"from_name":      req.Name,
		"from_email":     req.Email,
		"reply_to":       req.Email,
		"phone":          req.Phone,
		"vehicle_make":   req.VehicleMake,
		"vehicle_model":  req.VehicleModel,
		"vehicle_year":   year,
		"registration":   deref(req.Registration),
		"service_type":   req.ServiceType,
		"preferred_date": deref(req.PreferredDate),
		"notes":          deref(req.Notes),
	}
	return e.send(ctx, e.cfg.ServiceTemplateID, params)
}

func (e *EmailJSClient) send(ctx context.Context, templateID string, params map[string]string) error {
	payload := emailJSRequest{
		ServiceID:      e.cfg.ServiceID,
		TemplateID:     templateID,
		UserID:         e.cfg.PublicKey,
		AccessToken:    deref(e.cfg.PrivateKey),
		TemplateParams: params,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/v1.0/email/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		log.Printf("[emailjs] request failed: %v", err)
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	if resp.StatusCode != http.StatusOK {
		log.Printf("[emailjs] template %s returned %d: %s", templateID, resp.StatusCode, string(respBody))
		return fmt.Errorf("%w: status %d", ErrEmailDelivery, resp.StatusCode)
	}

	log.Printf("[emailjs] ✅ template %s sent for %s", templateID, params["from_email"])
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
