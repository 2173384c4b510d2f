// Package tokens emite y verifica los access tokens PASETO v4.local del login
// de empleados.
package tokens

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/ports/auth"
)

const (
	issuer   = "pet-spa-booking"
	audience = "pet-spa-booking-api"

	keyBytesSize = 32
	keyHexSize   = 64

	claimEmail   = "email"
	claimRole    = "role"
	claimOwnedID = "owned_id"
)

// Service implementa auth.AuthVerifier y el TokenIssuer del login.
type Service struct {
	key paseto.V4SymmetricKey
	ttl time.Duration
	now func() time.Time
}

func NewService(keyHex string, ttl time.Duration) (*Service, error) {
	if len(keyHex) != keyHexSize {
		return nil, fmt.Errorf("token key must be exactly %d hex characters, got %d", keyHexSize, len(keyHex))
	}
	raw, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex token key: %w", err)
	}
	if len(raw) != keyBytesSize {
		return nil, fmt.Errorf("decoded token key must be %d bytes, got %d", keyBytesSize, len(raw))
	}
	key, err := paseto.V4SymmetricKeyFromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("create token key: %w", err)
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Service{key: key, ttl: ttl, now: time.Now}, nil
}

// Issue cifra los claims; devuelve el token y su vencimiento.
func (s *Service) Issue(c auth.Claims) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)

	t := paseto.NewToken()
	t.SetIssuer(issuer)
	t.SetAudience(audience)
	t.SetSubject(c.Subject)
	t.SetIssuedAt(now)
	t.SetNotBefore(now)
	t.SetExpiration(exp)
	t.SetJti(uuid.NewString())

	for k, v := range map[string]string{
		claimEmail:   c.Email,
		claimRole:    c.Role,
		claimOwnedID: c.OwnedResourceID,
	} {
		if err := t.Set(k, v); err != nil {
			return "", time.Time{}, fmt.Errorf("set claim %s: %w", k, err)
		}
	}

	return t.V4Encrypt(s.key, nil), exp, nil
}

// Verify descifra y valida el token. Cualquier falla es Unauthorized.
func (s *Service) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, apperr.Unauthorized("missing token")
	}

	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.ForAudience(audience))
	parser.AddRule(paseto.IssuedBy(issuer))
	parser.AddRule(paseto.ValidAt(s.now()))

	t, err := parser.ParseV4Local(s.key, token, nil)
	if err != nil {
		return auth.Claims{}, apperr.Unauthorized("invalid token").WithCause(err)
	}

	sub, err := t.GetSubject()
	if err != nil || sub == "" {
		return auth.Claims{}, apperr.Unauthorized("token missing subject")
	}
	role, err := t.GetString(claimRole)
	if err != nil {
		return auth.Claims{}, apperr.Unauthorized("token missing role")
	}
	// email y owned_id son opcionales
	email, _ := t.GetString(claimEmail)
	owned, _ := t.GetString(claimOwnedID)

	return auth.Claims{
		Subject:         sub,
		Email:           email,
		Role:            role,
		OwnedResourceID: owned,
	}, nil
}
