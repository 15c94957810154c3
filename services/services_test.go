package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func sampleOrder() *models.Order {
	line2 := "Unit 7"
	return &models.Order{
		ID:              uuid.Must(uuid.NewV7()),
		OrderNumber:     "JP-20261017-ABC123",
		PaymentIntentID: "pi_123",
		CustomerName:    "Aiko <Tanaka>",
		CustomerEmail:   "aiko@example.com",
		Shipping: models.ShippingAddress{
			Line1:    "12 Drift Lane",
			Line2:    &line2,
			City:     "Bradford",
			Postcode: "BD1 2AB",
			Country:  "United Kingdom",
		},
		Total:     decimal.RequireFromString("259.98"),
		Currency:  "gbp",
		Status:    models.OrderStatusPaid,
		CreatedAt: time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC),
		Items: []models.OrderItem{{
			PartName:  "HKS Oil Filter",
			UnitPrice: decimal.RequireFromString("129.99"),
			Quantity:  2,
			LineTotal: decimal.RequireFromString("259.98"),
		}},
	}
}

func TestJWTRoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret")
	require.NoError(t, err)

	token, err := svc.GenerateAdminJWT("admin-1", "owner@jp.test", models.AdminRoleSuper)
	require.NoError(t, err)

	claims, err := svc.VerifyAdminJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, models.AdminRoleSuper, claims.Role)

	other, err := NewJWTService("another-secret")
	require.NoError(t, err)
	_, err = other.VerifyAdminJWT(token)
	assert.Error(t, err)
}

func TestJWTExpiry(t *testing.T) {
	svc, err := NewJWTService("test-secret")
	require.NoError(t, err)
	issued := time.Now().Add(-8 * 24 * time.Hour)
	svc.now = func() time.Time { return issued }
	token, err := svc.GenerateAdminJWT("admin-1", "owner@jp.test", models.AdminRoleStaff)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.VerifyAdminJWT(token)
	assert.Error(t, err)
}

func TestNewJWTServiceRequiresSecret(t *testing.T) {
	_, err := NewJWTService("")
	assert.Error(t, err)
}

func TestAdminPasswordAndTokenHashing(t *testing.T) {
	hash, err := HashAdminPassword("correct horse battery")
	require.NoError(t, err)
	assert.True(t, VerifyAdminPassword(hash, "correct horse battery"))
	assert.False(t, VerifyAdminPassword(hash, "wrong"))

	assert.False(t, ValidateAdminPassword("short"))
	assert.True(t, ValidateAdminPassword("long-enough-pass"))

	h := HashAdminToken("abc")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashAdminToken("abc"))
	assert.NotEqual(t, h, HashAdminToken("abd"))
}

func TestLatestOnlyCancelsOlderSearch(t *testing.T) {
	l := NewLatestOnly()

	first, doneFirst := l.Begin(context.Background(), "client-a")
	second, doneSecond := l.Begin(context.Background(), "client-a")
	other, doneOther := l.Begin(context.Background(), "client-b")
	defer doneOther()

	select {
	case <-first.Done():
	case <-time.After(time.Second):
		t.Fatal("older search was not cancelled")
	}
	assert.True(t, Superseded(first))
	assert.NoError(t, second.Err())
	assert.NoError(t, other.Err())
	assert.Equal(t, 2, l.InFlight())

	// Finishing the superseded search must not evict the newer one.
	doneFirst()
	assert.Equal(t, 2, l.InFlight())
	assert.NoError(t, second.Err())

	doneSecond()
	assert.Equal(t, 1, l.InFlight())
	assert.False(t, Superseded(second))
}

func TestLatestOnlyHonoursParentCancellation(t *testing.T) {
	l := NewLatestOnly()
	parent, cancel := context.WithCancel(context.Background())
	ctx, done := l.Begin(parent, "k")
	defer done()
	cancel()
	<-ctx.Done()
	assert.False(t, Superseded(ctx))
}

func TestEmailJSSendContact(t *testing.T) {
	var got emailJSRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1.0/email/send", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	private := "private-key"
	client := NewEmailJSClient(config.EmailJSConfig{
		ServiceID:         "service_jp",
		PublicKey:         "public-key",
		PrivateKey:        &private,
		ContactTemplateID: "template_contact",
		ServiceTemplateID: "template_service",
	}).WithBaseURL(srv.URL)

	err := client.SendContact(context.Background(), models.ContactRequest{
		Name:    "Ryo",
		Email:   "ryo@example.com",
		Message: "Do you stock RB26 head gaskets?",
	})
	require.NoError(t, err)
	assert.Equal(t, "service_jp", got.ServiceID)
	assert.Equal(t, "template_contact", got.TemplateID)
	assert.Equal(t, "public-key", got.UserID)
	assert.Equal(t, "private-key", got.AccessToken)
	assert.Equal(t, "Website enquiry", got.TemplateParams["subject"])
	assert.Equal(t, "ryo@example.com", got.TemplateParams["reply_to"])
}

func TestEmailJSServiceRequestFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The template ID is invalid"))
	}))
	defer srv.Close()

	client := NewEmailJSClient(config.EmailJSConfig{ServiceID: "s", PublicKey: "p", ServiceTemplateID: "bad"}).WithBaseURL(srv.URL)
	year := 2001
	err := client.SendServiceRequest(context.Background(), models.ServiceRequest{
		Name:         "Mika",
		Email:        "mika@example.com",
		Phone:        "07700900000",
		VehicleMake:  "Toyota",
		VehicleModel: "Supra",
		VehicleYear:  &year,
		ServiceType:  "remapping",
	})
	assert.ErrorIs(t, err, ErrEmailDelivery)
}

func TestResendSendWithAttachment(t *testing.T) {
	var got resendEmail
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	client := NewResendClient(&config.ResendConfig{APIKey: "re_test", From: "JP <orders@jp.test>"}).WithBaseURL(srv.URL)
	err := client.Send(context.Background(), "aiko@example.com", "Hello", "<p>hi</p>",
		EmailAttachment{Filename: "invoice.pdf", Content: []byte("%PDF-1.3")})
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, []string{"aiko@example.com"}, got.To)
	require.Len(t, got.Attachments, 1)
	decoded, err := base64.StdEncoding.DecodeString(got.Attachments[0].Content)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(decoded))
}

func TestResendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := NewResendClient(&config.ResendConfig{APIKey: "k", From: "f"}).WithBaseURL(srv.URL)
	assert.Error(t, client.Send(context.Background(), "a@b.c", "s", "h"))
}

func TestGenerateInvoicePDF(t *testing.T) {
	pdf, err := GenerateInvoicePDF(sampleOrder(), DefaultBusiness)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

type capturedEmail struct {
	to, subject, html string
	attachments       []EmailAttachment
}

type fakeSender struct {
	mu   sync.Mutex
	sent []capturedEmail
}

func (f *fakeSender) Send(_ context.Context, to, subject, html string, attachments ...EmailAttachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, capturedEmail{to, subject, html, attachments})
	return nil
}

func TestOrderMailerConfirmation(t *testing.T) {
	sender := &fakeSender{}
	mailer := NewOrderMailer(sender, DefaultBusiness)

	require.NoError(t, mailer.SendConfirmation(context.Background(), sampleOrder()))
	require.Len(t, sender.sent, 1)
	email := sender.sent[0]
	assert.Equal(t, "aiko@example.com", email.to)
	assert.Contains(t, email.subject, "JP-20261017-ABC123")
	assert.Contains(t, email.html, "Aiko &lt;Tanaka&gt;")
	assert.Contains(t, email.html, "£259.98")
	require.Len(t, email.attachments, 1)
	assert.Equal(t, "invoice-JP-20261017-ABC123.pdf", email.attachments[0].Filename)
}

func TestOrderMailerStatusUpdateOnlyForShippedOrDelivered(t *testing.T) {
	sender := &fakeSender{}
	mailer := NewOrderMailer(sender, DefaultBusiness)
	order := sampleOrder()

	require.NoError(t, mailer.SendStatusUpdate(context.Background(), order))
	assert.Empty(t, sender.sent)

	order.Status = models.OrderStatusShipped
	require.NoError(t, mailer.SendStatusUpdate(context.Background(), order))
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].html, "on its way")
	assert.Empty(t, sender.sent[0].attachments)
}

func TestWritePartsWorkbook(t *testing.T) {
	yearTo := 2002
	engine := "RB26DETT"
	parts := []models.Part{{
		ID:            uuid.Must(uuid.NewV7()),
		Name:          "Tomei Exhaust Manifold",
		Slug:          "tomei-exhaust-manifold",
		Category:      "exhaust",
		Brand:         "Tomei",
		Price:         decimal.RequireFromString("899.00"),
		StockQuantity: 1,
		Availability:  models.AvailabilityRareFind,
		Vehicles: []models.Vehicle{{
			Make: "Nissan", Model: "Skyline GT-R R34", YearFrom: 1999, YearTo: &yearTo, Engine: &engine,
		}},
	}}

	var buf bytes.Buffer
	require.NoError(t, WritePartsWorkbook(&buf, parts))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	sheet := file.Sheets[0]
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "Name", sheet.Rows[0].Cells[1].String())
	assert.Equal(t, "Tomei Exhaust Manifold", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "rare_find", sheet.Rows[1].Cells[9].String())
	assert.Equal(t, "Nissan Skyline GT-R R34 RB26DETT (1999-2002)", sheet.Rows[1].Cells[10].String())
}

func TestOrderFeedBroadcast(t *testing.T) {
	feed := NewOrderFeed(nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = feed.ServeWS(w, r)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return feed.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	order := sampleOrder()
	feed.OrderRecorded(context.Background(), order)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var event OrderEvent
	require.NoError(t, json.Unmarshal(msg, &event))
	assert.Equal(t, OrderEventPaid, event.Type)
	assert.Equal(t, order.OrderNumber, event.Order.OrderNumber)
	assert.Equal(t, 2, event.Order.ItemCount)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return feed.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestOrderFeedRejectsForeignOrigin(t *testing.T) {
	feed := NewOrderFeed([]string{"https://admin.jp.test"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = feed.ServeWS(w, r)
	}))
	defer srv.Close()

	header := http.Header{"Origin": []string{"https://evil.test"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_, _ = io.Copy(io.Discard, resp.Body)
}
