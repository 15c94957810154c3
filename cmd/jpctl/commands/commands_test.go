package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
codes:
  - code: p0301
    description: Cylinder 1 misfire detected
    severity: HIGH
    common_causes: [Worn spark plug, Failed coil pack]
    symptoms: [Rough idle]
    solutions:
      - title: Replace spark plug
        difficulty: easy
        estimated_time: 30 minutes
        steps: [Remove coil, Swap plug, Refit coil]
        parts: [ngk-iridium-plug]
  - code: U0100
    description: Lost communication with ECM
`

func TestParseOBDCatalog(t *testing.T) {
	catalog, err := parseOBDCatalog([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, catalog.Codes, 2)

	first := catalog.Codes[0]
	assert.Equal(t, "P0301", first.Code)
	assert.Equal(t, models.SeverityHigh, first.Severity)
	assert.Equal(t, []string{"Worn spark plug", "Failed coil pack"}, first.CommonCauses)
	require.Len(t, first.Solutions, 1)
	assert.Equal(t, []string{"ngk-iridium-plug"}, first.Solutions[0].Parts)

	assert.Equal(t, models.SeverityMedium, catalog.Codes[1].Severity)
}

func TestParseOBDCatalogRejects(t *testing.T) {
	tests := map[string]struct {
		yaml string
		want string
	}{
		"empty":          {"codes: []", "no codes"},
		"bad code":       {"codes:\n  - code: X123\n    description: d", "not an OBD-II code"},
		"duplicate":      {"codes:\n  - code: P0301\n    description: a\n  - code: p0301\n    description: b", "appears twice"},
		"bad severity":   {"codes:\n  - code: P0301\n    description: a\n    severity: fatal", "unknown severity"},
		"no description": {"codes:\n  - code: P0301", "description is required"},
		"bad difficulty": {"codes:\n  - code: P0301\n    description: a\n    solutions:\n      - title: t\n        difficulty: trivial", "difficulty \"trivial\""},
		"not yaml":       {"codes: [", "parse catalog"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseOBDCatalog([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewAdmin(t *testing.T) {
	admin, err := newAdmin("  Owner@JPPerformanceCars.co.uk ", "Owner", "correct-horse", models.AdminRoleSuper)
	require.NoError(t, err)
	assert.Equal(t, "owner@jpperformancecars.co.uk", admin.Email)
	assert.Equal(t, models.AdminRoleSuper, admin.Role)
	assert.True(t, services.VerifyAdminPassword(admin.PasswordHash, "correct-horse"))

	staff, err := newAdmin("workshop@example.com", "Workshop", "correct-horse", models.AdminRoleStaff)
	require.NoError(t, err)
	assert.Equal(t, models.AdminRoleStaff, staff.Role)

	_, err = newAdmin("owner", "Owner", "correct-horse", models.AdminRoleSuper)
	assert.Error(t, err)
	_, err = newAdmin("owner@example.com", "Owner", "short", models.AdminRoleSuper)
	assert.Error(t, err)
	_, err = newAdmin("owner@example.com", "Owner", "correct-horse", "root")
	assert.ErrorContains(t, err, "unknown --role")
}

func TestOpenDBRequiresURL(t *testing.T) {
	old := dbURL
	dbURL = ""
	t.Cleanup(func() { dbURL = old })
	t.Setenv("DATABASE_URL", "")

	_, err := openDB()
	assert.ErrorIs(t, err, config.ErrMissingSetting)
}

func TestEnvFileOverridesEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://stale")
	path := filepath.Join(t.TempDir(), "jpctl.env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_URL=postgres://from-file\n"), 0o600))

	old := envFile
	envFile = path
	t.Cleanup(func() { envFile = old })

	require.NoError(t, rootCmd.PersistentPreRunE(rootCmd, nil))
	assert.Equal(t, "postgres://from-file", os.Getenv("DATABASE_URL"))
}

func TestEnvFileMissing(t *testing.T) {
	old := envFile
	envFile = filepath.Join(t.TempDir(), "absent.env")
	t.Cleanup(func() { envFile = old })

	assert.ErrorContains(t, rootCmd.PersistentPreRunE(rootCmd, nil), "absent.env")
}
