package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SupabaseAudience is the audience Supabase stamps on signed-in user tokens.
const SupabaseAudience = "authenticated"

// ErrMissingSecret is returned when the verifier has no signing secret.
var ErrMissingSecret = errors.New("jwt secret must not be empty")

// Claims is the subset of a Supabase access token the API reads.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Verifier checks HS256 tokens signed with the project's JWT secret.
type Verifier struct {
	secret []byte
	ttl    time.Duration
}

// NewVerifier constructs a verifier. ttl only applies to tokens issued by
// GenerateToken.
func NewVerifier(secret string, ttl time.Duration) *Verifier {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Verifier{secret: []byte(secret), ttl: ttl}
}

// GenerateToken issues a token shaped like a Supabase session token. It is
// used by tests and local tooling.
func (v *Verifier) GenerateToken(subject, email string) (string, error) {
	if len(v.secret) == 0 {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Audience:  jwt.ClaimStrings{SupabaseAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: email,
		Role:  SupabaseAudience,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// ParseToken verifies the signature, expiry and audience of token.
func (v *Verifier) ParseToken(token string) (*Claims, error) {
	if len(v.secret) == 0 {
		return nil, ErrMissingSecret
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(SupabaseAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return claims, nil
}
