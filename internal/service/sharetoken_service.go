package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"wingtrack/internal/models"
)

const shareTokenTTL = 7 * 24 * time.Hour

// ShareClaims is the signed progress snapshot carried in a share token
type ShareClaims struct {
	Name      string `json:"name"`
	XP        int    `json:"xp"`
	BeltLevel int    `json:"beltLevel"`
	jwt.RegisteredClaims
}

// ShareTokenService issues and verifies signed progress snapshots, so a
// student can hand their instructor verifiable proof of progress before
// a promotion code is issued.
type ShareTokenService struct {
	profiles *ProfileService
	secret   []byte
	now      func() time.Time
}

// NewShareTokenService creates a new share token service
func NewShareTokenService(profiles *ProfileService, secret string) *ShareTokenService {
	return &ShareTokenService{
		profiles: profiles,
		secret:   []byte(secret),
		now:      time.Now,
	}
}

// Issue signs a snapshot of the active profile's progress. Tokens expire
// after seven days.
func (s *ShareTokenService) Issue() (string, error) {
	var claims ShareClaims
	err := s.profiles.View(func(p *models.Profile) error {
		claims.Name = p.Name
		claims.XP = p.XP
		claims.BeltLevel = p.UnlockedBeltLevel
		claims.Subject = p.StudentID
		return nil
	})
	if err != nil {
		return "", err
	}

	now := s.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(shareTokenTTL))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign share token: %w", err)
	}
	return signed, nil
}

// Verify parses a share token and returns its claims. Expired or
// tampered tokens fail.
func (s *ShareTokenService) Verify(tokenString string) (*ShareClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	claims := &ShareClaims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid share token: %w", err)
	}
	return claims, nil
}
