package services

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// AdminAuthService handles admin password and token hashing.
type AdminAuthService struct{}

func NewAdminAuthService() *AdminAuthService {
	return &AdminAuthService{}
}

// MinAdminPasswordLength is enforced when an admin account is created.
const MinAdminPasswordLength = 10

// HashPassword hashes a password with bcrypt.
func (s *AdminAuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if a password matches its bcrypt hash
func (s *AdminAuthService) VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *AdminAuthService) ValidatePassword(password string) bool {
	return len(password) >= MinAdminPasswordLength
}

// HashToken is how session tokens are stored: the raw JWT never touches the
// database.
func (s *AdminAuthService) HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

var adminAuthService = NewAdminAuthService()

func HashAdminPassword(password string) (string, error) {
	return adminAuthService.HashPassword(password)
}

func VerifyAdminPassword(hash, password string) bool {
	return adminAuthService.VerifyPassword(hash, password)
}

func ValidateAdminPassword(password string) bool {
	return adminAuthService.ValidatePassword(password)
}

func HashAdminToken(token string) string {
	return adminAuthService.HashToken(token)
}
