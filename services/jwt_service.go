package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const adminTokenIssuer = "jp-performance-admin"

// AdminTokenTTL matches the admin session lifetime.
const AdminTokenTTL = 7 * 24 * time.Hour

var ErrJWTNotInitialized = errors.New("jwt service not initialized")

// AdminJWTClaims represents the JWT claims for admin tokens
type AdminJWTClaims struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies admin tokens with HS256.
type JWTService struct {
	secretKey []byte
	now       func() time.Time
}

var jwtService *JWTService

func NewJWTService(secretKey string) (*JWTService, error) {
	if secretKey == "" {
		return nil, errors.New("JWT secret key cannot be empty")
	}
	return &JWTService{secretKey: []byte(secretKey), now: time.Now}, nil
}

// InitJWTService installs the global service used by the admin middleware.
func InitJWTService(secretKey string) error {
	svc, err := NewJWTService(secretKey)
	if err != nil {
		return err
	}
	jwtService = svc
	return nil
}

// GenerateAdminJWT creates a token that expires after AdminTokenTTL.
func (j *JWTService) GenerateAdminJWT(adminID, email, role string) (string, error) {
	if adminID == "" || email == "" {
		return "", errors.New("adminID and email cannot be empty")
	}

	now := j.now()
	claims := AdminJWTClaims{
		AdminID: adminID,
		Email:   email,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(AdminTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    adminTokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyAdminJWT parses tokenString and returns its claims when the
// signature, expiry and issuer are all valid.
func (j *JWTService) VerifyAdminJWT(tokenString string) (*AdminJWTClaims, error) {
	claims := &AdminJWTClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithIssuer(adminTokenIssuer), jwt.WithTimeFunc(j.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.AdminID == "" || claims.Email == "" {
		return nil, errors.New("token missing required claims")
	}
	return claims, nil
}

// GenerateAdminJWT generates a token with the global service.
func GenerateAdminJWT(adminID, email, role string) (string, error) {
	if jwtService == nil {
		return "", ErrJWTNotInitialized
	}
	return jwtService.GenerateAdminJWT(adminID, email, role)
}

// VerifyAdminJWT verifies a token with the global service.
func VerifyAdminJWT(tokenString string) (*AdminJWTClaims, error) {
	if jwtService == nil {
		return nil, ErrJWTNotInitialized
	}
	return jwtService.VerifyAdminJWT(tokenString)
}
