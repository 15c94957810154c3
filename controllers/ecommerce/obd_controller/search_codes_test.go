package obd_controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBuildCodeSearch(t *testing.T) {
	tests := []struct {
		name           string
		q, sev, system string
		wantWhere      string
		wantArgs       []any
	}{
		{"empty", "", "", "", "1 = 1", []any{}},
		{"code prefix", "p03", "", "", "1 = 1 AND c.code LIKE ?", []any{"P03%"}},
		{"full code", " P0301 ", "", "", "1 = 1 AND c.code LIKE ?", []any{"P0301%"}},
		{
			"free text", "misfire", "", "",
			`1 = 1 AND (c.description ILIKE ? ESCAPE '\' OR c.common_causes::text ILIKE ? ESCAPE '\')`,
			[]any{"%misfire%", "%misfire%"},
		},
		{
			"wildcards match literally", "100%_rich", "", "",
			`1 = 1 AND (c.description ILIKE ? ESCAPE '\' OR c.common_causes::text ILIKE ? ESCAPE '\')`,
			[]any{`%100\%\_rich%`, `%100\%\_rich%`},
		},
		{
			"filters", "", "HIGH", "network",
			"1 = 1 AND c.severity = ? AND c.system = ?",
			[]any{"high", "network"},
		},
		{"unknown filters ignored", "", "fatal", "engine", "1 = 1", []any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildCodeSearch(tt.q, tt.sev, tt.system)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestSearchKeyPrefersCartCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var keys []string
	r := gin.New()
	r.GET("/plain", func(c *gin.Context) { keys = append(keys, searchKey(c)) })
	r.GET("/cart", middleware.CartSession(false), func(c *gin.Context) { keys = append(keys, searchKey(c)) })

	req := httptest.NewRequest(http.MethodGet, "/plain", nil)
	req.RemoteAddr = "203.0.113.7:5000"
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cart", nil))

	assert.Equal(t, "ip:203.0.113.7", keys[0])
	assert.Contains(t, keys[1], "cart:")
}
