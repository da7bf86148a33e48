package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"wingtrack/internal/models"
	"wingtrack/internal/validation"
)

// PromotionService derives and checks instructor promotion codes. A code
// is bound to one student and one belt level, so the same code cannot
// promote anyone else or unlock a different sash.
type PromotionService struct {
	profiles    *ProfileService
	progression *ProgressionService
	secret      string
}

// NewPromotionService creates a new promotion service
func NewPromotionService(profiles *ProfileService, progression *ProgressionService, secret string) *PromotionService {
	return &PromotionService{
		profiles:    profiles,
		progression: progression,
		secret:      secret,
	}
}

// CodeFor derives the promotion code for a student and belt level:
// the first 8 hex characters of SHA-256("STUDENTID-level-secret"),
// uppercased
func (s *PromotionService) CodeFor(studentID string, beltLevel int) string {
	seed := fmt.Sprintf("%s-%d-%s", strings.ToUpper(studentID), beltLevel, s.secret)
	sum := sha256.Sum256([]byte(seed))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:8])
}

// CodeForActive derives the code that would promote the active profile
// to the given belt level. Instructors use this to hand out codes.
func (s *PromotionService) CodeForActive(beltLevel int) (string, error) {
	studentID, err := s.activeStudentID()
	if err != nil {
		return "", err
	}
	return s.CodeFor(studentID, beltLevel), nil
}

// Verify checks a submitted promotion code against the active profile
// and applies the belt promotion on a match. Comparison ignores case and
// surrounding whitespace.
func (s *PromotionService) Verify(beltLevel int, code string) error {
	studentID, err := s.activeStudentID()
	if err != nil {
		return err
	}

	expected := s.CodeFor(studentID, beltLevel)
	if !strings.EqualFold(strings.TrimSpace(code), expected) {
		return validation.ValidationError{Field: "code", Message: "incorrect promotion code"}
	}
	return s.progression.ApplyPromotion(beltLevel)
}

func (s *PromotionService) activeStudentID() (string, error) {
	var studentID string
	err := s.profiles.View(func(p *models.Profile) error {
		studentID = p.StudentID
		return nil
	})
	if err != nil {
		return "", err
	}
	return studentID, nil
}
