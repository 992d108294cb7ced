// actor.go extracts the acting identity from an incoming request so audit
// entries can name who performed a mutation. The identity comes from a bearer
// token issued by the platform gateway when present, otherwise from the
// X-User-* headers the gateway sets for service-to-service calls. A request
// carrying neither yields a zero actor; the audit service stamps those as
// "system".
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wms-platform/tenants-admin/internal/db/models"
)

// Claims is the token claims structure issued by the platform gateway
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// ParseActorToken parses and validates a gateway-issued bearer token
func ParseActorToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims type")
	}
	return claims, nil
}

// ActorFromRequest resolves the acting identity of a request. Token claims win
// over headers; an unparseable token falls back to the headers rather than
// failing, because actor identity is advisory for the audit trail, not an
// authorization decision.
func ActorFromRequest(r *http.Request, jwtSecret string) models.AuditActor {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") && jwtSecret != "" {
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if claims, err := ParseActorToken(tokenString, jwtSecret); err == nil {
			return models.AuditActor{
				UserID:   claims.UserID,
				Username: claims.Username,
				Email:    claims.Email,
			}
		}
	}

	return models.AuditActor{
		UserID:   r.Header.Get("X-User-Id"),
		Username: r.Header.Get("X-User-Name"),
		Email:    r.Header.Get("X-User-Email"),
	}
}
