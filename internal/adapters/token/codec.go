// Package token implements the self-issued signed token used by direct-login accounts.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/ports"
)

// Verification failure kinds. Callers treat all of them as "no proof".
var (
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
	ErrMalformed        = errors.New("token malformed")
)

// MinSecretLen is the minimum HMAC secret length accepted outside tests.
const MinSecretLen = 32

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Options configures a Codec.
type Options struct {
	Secret string
	Issuer string
	TTL    time.Duration
	// Now overrides the clock; defaults to time.Now.
	Now func() time.Time
}

// Codec issues and verifies HS256 tokens.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

var _ ports.TokenCodec = (*Codec)(nil)

// NewCodec constructs a Codec.
func NewCodec(opts Options) (*Codec, error) {
	if opts.Secret == "" {
		return nil, errors.New("token secret is required")
	}
	if opts.TTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Codec{
		secret: []byte(opts.Secret),
		issuer: opts.Issuer,
		ttl:    opts.TTL,
		now:    now,
	}, nil
}

// TTL returns the token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs a token for the given identity expiring TTL from now.
func (c *Codec) Issue(userID, email string, role domainauth.Role) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	now := c.now().UTC().Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the carried claims.
func (c *Codec) Verify(raw string) (ports.TokenClaims, error) {
	if raw == "" {
		return ports.TokenClaims{}, ErrMalformed
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	}
	if c.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(c.issuer))
	}

	var cl claims
	tok, err := jwt.ParseWithClaims(raw, &cl, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, parserOpts...)
	if err != nil {
		return ports.TokenClaims{}, classify(err)
	}
	if !tok.Valid || cl.Subject == "" {
		return ports.TokenClaims{}, ErrMalformed
	}

	out := ports.TokenClaims{
		UserID: cl.Subject,
		Email:  cl.Email,
		Role:   domainauth.Role(cl.Role),
	}
	if cl.IssuedAt != nil {
		out.IssuedAt = cl.IssuedAt.Time
	}
	if cl.ExpiresAt != nil {
		out.ExpiresAt = cl.ExpiresAt.Time
	}
	return out, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}
