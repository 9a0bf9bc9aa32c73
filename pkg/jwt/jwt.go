// Package jwt implementa el códec de tokens compactos header.payload.signature
// firmados con HMAC-SHA256. Dos alcances: "api" para servicio a servicio y
// "user" para la sesión del usuario final.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Alcances de token.
const (
	ScopeAPI  = "api"
	ScopeUser = "user"
)

// ErrInvalidToken agrupa cualquier fallo de verificación: estructura, firma, algoritmo o expiración.
var ErrInvalidToken = errors.New("jwt: token inválido")

// Claims incluye los claims estándar (sub, iss, iat, exp) más el alcance.
type Claims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
	Email string `json:"email,omitempty"`
}

// Codec emite y verifica tokens con un secreto compartido.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec construye el códec. expMinutes debe ser positivo: no se emiten tokens sin expiración.
func NewCodec(secret, issuer string, expMinutes int) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if expMinutes <= 0 {
		return nil, fmt.Errorf("jwt: expiración inválida (%d min)", expMinutes)
	}
	return &Codec{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    time.Duration(expMinutes) * time.Minute,
		now:    time.Now,
	}, nil
}

// WithClock reemplaza el reloj; lo usan los tests para emitir tokens vencidos.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	cp := *c
	cp.now = now
	return &cp
}

// Issue firma un token con el alcance y sujeto indicados.
func (c *Codec) Issue(scope, subject, email string) (string, error) {
	if scope == "" {
		return "", fmt.Errorf("jwt: scope vacío")
	}
	now := c.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Scope: scope,
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify devuelve los claims solo si la firma recalculada coincide, el algoritmo es HMAC
// y el token no expiró. Cualquier otro caso devuelve ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Scope == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyScope verifica el token y exige que su alcance esté entre los permitidos.
func (c *Codec) VerifyScope(tokenString string, scopes ...string) (*Claims, error) {
	claims, err := c.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	for _, s := range scopes {
		if claims.Scope == s {
			return claims, nil
		}
	}
	return nil, fmt.Errorf("%w: alcance %q no permitido", ErrInvalidToken, claims.Scope)
}
