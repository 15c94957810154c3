package utils

import (
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bosch Spark Plug (Set of 4)", "bosch-spark-plug-set-of-4"},
		{"K&N Air Filter", "k-and-n-air-filter"},
		{"  --Turbo   Hose--  ", "turbo-hose"},
		{"Mégane RS Brake Pads", "m-gane-rs-brake-pads"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestNormalizeOBDCode(t *testing.T) {
	code, ok := NormalizeOBDCode(" p0301 ")
	assert.True(t, ok)
	assert.Equal(t, "P0301", code)

	for _, bad := range []string{"P4301", "X0301", "P030", "P03011", "P0G01", ""} {
		_, ok := NormalizeOBDCode(bad)
		assert.False(t, ok, bad)
	}
}

func TestIsOBDCodePrefix(t *testing.T) {
	for _, q := range []string{"P", "p0", "P03", "u0100", "C12"} {
		assert.True(t, IsOBDCodePrefix(q), q)
	}
	for _, q := range []string{"misfire", "catalyst", "P9", "PO3", "P03011"} {
		assert.False(t, IsOBDCodePrefix(q), q)
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 1, 14, 9, 30, 0, 0, time.UTC)
	n := GenerateOrderNumber(now)
	assert.Regexp(t, regexp.MustCompile(`^JP-20260114-[A-Z2-9]{6}$`), n)
	assert.NotEqual(t, n, GenerateOrderNumber(now))
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(14999), ToMinorUnits(decimal.RequireFromString("149.99")))
	assert.Equal(t, int64(50), ToMinorUnits(decimal.RequireFromString("0.495")))
	assert.True(t, FromMinorUnits(20000).Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "£12.50", FormatMoney(decimal.RequireFromString("12.5"), "gbp"))
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 12},
		{"?page=3&limit=20", 3, 20},
		{"?page=-1&limit=500", 1, 12},
		{"?page=abc&limit=0", 1, 12},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/parts"+tt.query, nil)
		page, limit := ParsePagination(c, 12)
		assert.Equal(t, tt.wantPage, page, tt.query)
		assert.Equal(t, tt.wantLimit, limit, tt.query)
	}
	assert.Equal(t, 40, Offset(3, 20))
}

func TestEscapeLike(t *testing.T) {
	tests := []struct{ in, want string }{
		{"turbo", "turbo"},
		{"100%", `100\%`},
		{"oil_filter", `oil\_filter`},
		{`C:\parts`, `C:\\parts`},
		{`\%_`, `\\\%\_`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeLike(tt.in), tt.in)
	}
	assert.Equal(t, `%50\% off%`, ContainsPattern("50% off"))
}
