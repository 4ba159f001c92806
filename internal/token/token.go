package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed, tampered, and expired tokens. The
// caller cannot distinguish the three; a token is either good or it is
// not.
var ErrInvalidToken = errors.New("invalid or expired token")

// Service issues and validates stateless bearer tokens. A token carries
// the holder's subject (email) and an absolute expiry; nothing is
// stored server-side.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates a token Service signing with secret. Tokens expire
// ttl after issuance.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Used in tests to exercise
// expiry.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Issue creates a signed token for subject.
func (s *Service) Issue(subject string) (string, error) {
	issuedAt := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Validate checks signature and expiry and returns the token's subject.
func (s *Service) Validate(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// MatchesSubject reports whether raw is a valid token issued for
// subject. A well-formed, unexpired token for a different subject
// returns false.
func (s *Service) MatchesSubject(raw, subject string) bool {
	got, err := s.Validate(raw)
	if err != nil {
		return false
	}
	return got == subject
}
