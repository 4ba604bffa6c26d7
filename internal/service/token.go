package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/careconnect/backend/internal/model"
)

var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrMissingSubject = errors.New("token has no subject")
)

// IssuedToken is a signed bearer token and its absolute expiry.
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// TokenService signs and validates stateless HS256 bearer tokens.
// There is no server-side registry: signature plus expiry is the whole check.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string, now func() time.Time) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}
	if now == nil {
		now = time.Now
	}
	return &TokenService{secret: []byte(secret), now: now}, nil
}

func (s *TokenService) Issue(subject string, ttl time.Duration) (IssuedToken, error) {
	now := s.now()
	// JWT NumericDate는 초 단위이므로 만료 시각도 초 단위로 맞춤
	expiresAt := now.Add(ttl).Truncate(time.Second)

	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return IssuedToken{}, err
	}

	return IssuedToken{Value: signed, ExpiresAt: expiresAt}, nil
}

// Validate verifies the signature and expiry of tokenStr and returns its identity.
// Expiry is checked both by the jwt parser and explicitly against the service clock.
func (s *TokenService) Validate(tokenStr string) (*model.AuthUser, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(s.now()) {
		return nil, ErrTokenExpired
	}

	return &model.AuthUser{
		Subject:   claims.Subject,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
