// Package jwtpayload reads the claims of a compact JWT for display purposes.
// Signatures are not verified; the backend remains the only authority.
package jwtpayload

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
)

// Decode returns the payload claims of token, or nil when token has no
// payload segment or the segment is not base64url-encoded UTF-8 JSON object
// text. It never panics.
func Decode(token string) jwt.MapClaims {
	parts := strings.Split(token, ".")
	if len(parts) < 2 || parts[1] == "" {
		return nil
	}

	b64 := strings.NewReplacer("-", "+", "_", "/").Replace(parts[1])
	if pad := len(b64) % 4; pad != 0 {
		b64 += strings.Repeat("=", 4-pad)
	}

	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil || !utf8.Valid(raw) {
		return nil
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil
	}
	return claims
}

// Username returns the subject claim, falling back to a "username" claim.
func Username(claims jwt.MapClaims) string {
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub
	}
	if name, ok := claims["username"].(string); ok {
		return name
	}
	return ""
}

// Roles returns the "roles" claim, accepting either a JSON array of strings
// or a comma-separated string.
func Roles(claims jwt.MapClaims) []string {
	var roles []string

	switch v := claims["roles"].(type) {
	case []any:
		for _, r := range v {
			if s, ok := r.(string); ok && s != "" {
				roles = append(roles, s)
			}
		}
	case string:
		for _, r := range strings.Split(v, ",") {
			if r = strings.TrimSpace(r); r != "" {
				roles = append(roles, r)
			}
		}
	}

	return roles
}

// Expired reports whether the exp claim is at or before now. Tokens without
// a readable exp claim are not considered expired.
func Expired(claims jwt.MapClaims, now time.Time) bool {
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
