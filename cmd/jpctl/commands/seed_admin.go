package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	seedEmail    string
	seedName     string
	seedPassword string
	seedRole     string
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create an admin account",
	Long: `Creates an admin account, a super admin unless --role says otherwise.
Fails if the email is already taken.

Examples:
  jpctl seed-admin --email owner@jpperformancecars.co.uk --name "Owner" --password "..."
  jpctl seed-admin --email workshop@jpperformancecars.co.uk --name "Workshop" --password "..." --role admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(seedEmail, seedName, seedPassword, seedRole)
		if err != nil {
			return err
		}
		db, err := openDB()
		if err != nil {
			return err
		}

		var existing models.Admin
		err = db.WithContext(cmd.Context()).Where("email = ?", admin.Email).First(&existing).Error
		if err == nil {
			return fmt.Errorf("admin with email %q already exists", admin.Email)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("database error: %w", err)
		}

		if err := db.WithContext(cmd.Context()).Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "✅ Admin Created Successfully!")
		fmt.Fprintf(out, "ID:    %s\n", admin.ID)
		fmt.Fprintf(out, "Role:  %s\n", admin.Role)
		fmt.Fprintf(out, "Email: %s\n", admin.Email)
		fmt.Fprintf(out, "Name:  %s\n", admin.Name)
		fmt.Fprintln(out, "Login at POST /api/v1/admin/login with this email and password.")
		return nil
	},
}

func init() {
	seedAdminCmd.Flags().StringVar(&seedEmail, "email", "", "Admin email (required)")
	seedAdminCmd.Flags().StringVar(&seedName, "name", "", "Display name (required)")
	seedAdminCmd.Flags().StringVar(&seedPassword, "password", "", fmt.Sprintf("Password, at least %d characters (required)", services.MinAdminPasswordLength))
	seedAdminCmd.Flags().StringVar(&seedRole, "role", models.AdminRoleSuper, "Role: super_admin or admin")
	_ = seedAdminCmd.MarkFlagRequired("email")
	_ = seedAdminCmd.MarkFlagRequired("name")
	_ = seedAdminCmd.MarkFlagRequired("password")
}

func newAdmin(email, name, password, role string) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("a valid --email is required")
	}
	if name == "" {
		return nil, errors.New("--name cannot be empty")
	}
	if role != models.AdminRoleSuper && role != models.AdminRoleStaff {
		return nil, fmt.Errorf("unknown --role %q (want %s or %s)", role, models.AdminRoleSuper, models.AdminRoleStaff)
	}
	if !services.ValidateAdminPassword(password) {
		return nil, fmt.Errorf("password must be at least %d characters", services.MinAdminPasswordLength)
	}
	hash, err := services.HashAdminPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &models.Admin{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		Status:       models.AdminStatusActive,
	}, nil
}
