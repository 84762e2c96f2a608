package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthCookieName is the dedicated cookie carrying the session token.
const AuthCookieName = "jobcard_auth_token"

// TokenFromRequest pulls the bearer credential out of an inbound request.
// The dedicated cookie wins; an Authorization: Bearer header is the
// fallback. Absence is a valid outcome, not an error.
func TokenFromRequest(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(AuthCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimSpace(authHeader[len("Bearer "):])
		if token != "" {
			return token, true
		}
	}

	return "", false
}

// Claims represents the signed JWT claim payload.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTTokenService signs and verifies HS256 session tokens against a
// process-wide secret. Purely cryptographic, no store access.
type JWTTokenService struct {
	Secret   []byte
	TokenTTL time.Duration
}

func NewJWTTokenService(secret string, ttl time.Duration) *JWTTokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTTokenService{
		Secret:   []byte(secret),
		TokenTTL: ttl,
	}
}

// GenerateToken mints a signed token for an authenticated user.
func (j *JWTTokenService) GenerateToken(user *User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.TokenTTL)

	claims := &Claims{
		UserID: strconv.FormatInt(user.ID, 10),
		Email:  user.Email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// VerifyToken validates signature and expiry, then decodes the claim
// payload into a Session. Malformed input, a bad signature or a wrong
// algorithm yield ErrInvalidToken; a passed expiry yields ErrTokenExpired.
func (j *JWTTokenService) VerifyToken(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return sessionFromClaims(claims)
}

func sessionFromClaims(claims *Claims) (*Session, error) {
	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	role := Role(claims.Role)
	if !role.Valid() {
		return nil, ErrInvalidToken
	}

	session := &Session{
		UserID: userID,
		Email:  claims.Email,
		Role:   role,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	return session, nil
}
