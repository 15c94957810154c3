package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// obdCatalog is the YAML layout accepted by import-obd.
type obdCatalog struct {
	Codes []catalogCode `yaml:"codes"`
}

type catalogCode struct {
	Code         string            `yaml:"code"`
	Description  string            `yaml:"description"`
	Severity     string            `yaml:"severity"`
	CommonCauses []string          `yaml:"common_causes"`
	Symptoms     []string          `yaml:"symptoms"`
	Solutions    []catalogSolution `yaml:"solutions"`
}

type catalogSolution struct {
	Title         string   `yaml:"title"`
	Difficulty    string   `yaml:"difficulty"`
	EstimatedTime string   `yaml:"estimated_time"`
	Steps         []string `yaml:"steps"`
	Parts         []string `yaml:"parts"`
}

var validDifficulties = map[string]bool{"easy": true, "moderate": true, "hard": true, "professional": true}

var catalogFile string

var importOBDCmd = &cobra.Command{
	Use:   "import-obd --file <catalog.yaml>",
	Short: "Load OBD codes and solutions from a YAML catalog",
	Long: `Upserts every code in the catalog by its code. A code's solutions are
replaced by the catalog's list; parts are linked by slug.

Examples:
  jpctl import-obd --file data/obd-codes.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(catalogFile)
		if err != nil {
			return fmt.Errorf("failed to read catalog %s: %w", catalogFile, err)
		}
		catalog, err := parseOBDCatalog(data)
		if err != nil {
			return err
		}
		db, err := openDB()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		err = db.WithContext(cmd.Context()).Transaction(func(tx *gorm.DB) error {
			for _, entry := range catalog.Codes {
				missing, err := upsertCatalogCode(tx, entry)
				if err != nil {
					return fmt.Errorf("%s: %w", entry.Code, err)
				}
				for _, slug := range missing {
					fmt.Fprintf(out, "⚠️ %s: no part with slug %q\n", entry.Code, slug)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✅ Imported %d codes\n", len(catalog.Codes))
		return nil
	},
}

func init() {
	importOBDCmd.Flags().StringVarP(&catalogFile, "file", "f", "", "YAML catalog to import (required)")
	_ = importOBDCmd.MarkFlagRequired("file")
}

// parseOBDCatalog decodes and validates a catalog, normalising codes and
// defaulting severity to medium.
func parseOBDCatalog(data []byte) (*obdCatalog, error) {
	var catalog obdCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if len(catalog.Codes) == 0 {
		return nil, errors.New("catalog has no codes")
	}

	seen := make(map[string]bool, len(catalog.Codes))
	var problems []string
	for i := range catalog.Codes {
		entry := &catalog.Codes[i]
		code, ok := utils.NormalizeOBDCode(entry.Code)
		if !ok {
			problems = append(problems, fmt.Sprintf("entry %d: %q is not an OBD-II code", i+1, entry.Code))
			continue
		}
		if seen[code] {
			problems = append(problems, fmt.Sprintf("entry %d: %s appears twice", i+1, code))
		}
		seen[code] = true
		entry.Code = code

		entry.Severity = strings.ToLower(strings.TrimSpace(entry.Severity))
		switch entry.Severity {
		case "":
			entry.Severity = models.SeverityMedium
		case models.SeverityLow, models.SeverityMedium, models.SeverityHigh:
		default:
			problems = append(problems, fmt.Sprintf("%s: unknown severity %q", code, entry.Severity))
		}
		if strings.TrimSpace(entry.Description) == "" {
			problems = append(problems, code+": description is required")
		}
		for j, sol := range entry.Solutions {
			if strings.TrimSpace(sol.Title) == "" {
				problems = append(problems, fmt.Sprintf("%s: solution %d has no title", code, j+1))
			}
			if !validDifficulties[sol.Difficulty] {
				problems = append(problems, fmt.Sprintf("%s: solution %d has difficulty %q", code, j+1, sol.Difficulty))
			}
		}
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid catalog:\n  %s", strings.Join(problems, "\n  "))
	}
	return &catalog, nil
}

// upsertCatalogCode writes one code and returns the part slugs it could not
// resolve.
func upsertCatalogCode(tx *gorm.DB, entry catalogCode) ([]string, error) {
	var code models.OBDCode
	err := tx.Where("code = ?", entry.Code).First(&code).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		code = models.OBDCode{Code: entry.Code}
	case err != nil:
		return nil, err
	}

	code.Description = entry.Description
	code.Severity = entry.Severity
	code.CommonCauses = datatypes.JSONSlice[string](entry.CommonCauses)
	code.Symptoms = datatypes.JSONSlice[string](entry.Symptoms)
	if err := tx.Omit("Solutions").Save(&code).Error; err != nil {
		return nil, err
	}

	var oldIDs []string
	if err := tx.Model(&models.Solution{}).Where("obd_code_id = ?", code.ID).Pluck("id", &oldIDs).Error; err != nil {
		return nil, err
	}
	if len(oldIDs) > 0 {
		if err := tx.Exec("DELETE FROM solution_parts WHERE solution_id IN ?", oldIDs).Error; err != nil {
			return nil, err
		}
		if err := tx.Where("obd_code_id = ?", code.ID).Delete(&models.Solution{}).Error; err != nil {
			return nil, err
		}
	}

	var missing []string
	for i, sol := range entry.Solutions {
		var parts []models.Part
		if len(sol.Parts) > 0 {
			if err := tx.Where("slug IN ?", sol.Parts).Find(&parts).Error; err != nil {
				return nil, err
			}
			found := make(map[string]bool, len(parts))
			for _, p := range parts {
				found[p.Slug] = true
			}
			for _, slug := range sol.Parts {
				if !found[slug] {
					missing = append(missing, slug)
				}
			}
		}

		row := models.Solution{
			OBDCodeID:     code.ID,
			Title:         sol.Title,
			Difficulty:    sol.Difficulty,
			EstimatedTime: sol.EstimatedTime,
			Steps:         datatypes.JSONSlice[string](sol.Steps),
			SortOrder:     i,
			Parts:         parts,
		}
		if err := tx.Omit("Parts.*").Create(&row).Error; err != nil {
			return nil, err
		}
	}
	return missing, nil
}
