package jwt_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/hrportal-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "hrportal-test"
	testUserID = "65f1c2a9e4b0a1b2c3d4e5f6"
)

func newCodec(t *testing.T) *pkgjwt.Codec {
	t.Helper()
	c, err := pkgjwt.NewCodec(testSecret, testIssuer, 60)
	require.NoError(t, err)
	return c
}

// mutate cambia un carácter en el centro del segmento indicado (0 header, 1 payload, 2 firma).
func mutate(token string, segment int) string {
	parts := strings.Split(token, ".")
	seg := []byte(parts[segment])
	i := len(seg) / 2
	if seg[i] == 'A' {
		seg[i] = 'B'
	} else {
		seg[i] = 'A'
	}
	parts[segment] = string(seg)
	return strings.Join(parts, ".")
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	c := newCodec(t)

	tok, err := c.Issue(pkgjwt.ScopeUser, testUserID, "ana@example.com")
	require.NoError(t, err)
	assert.Len(t, strings.Split(tok, "."), 3, "formato compacto header.payload.signature")

	claims, err := c.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, pkgjwt.ScopeUser, claims.Scope)
	assert.Equal(t, testUserID, claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, testIssuer, claims.Issuer)
	require.NotNil(t, claims.IssuedAt, "iat siempre presente")
	require.NotNil(t, claims.ExpiresAt, "exp siempre presente")
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestVerify_FirmaMutada_Rechaza(t *testing.T) {
	c := newCodec(t)
	tok, err := c.Issue(pkgjwt.ScopeAPI, "", "")
	require.NoError(t, err)

	_, err = c.Verify(mutate(tok, 2))
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

// Los bits de relleno del último carácter de la firma también cuentan.
func TestVerify_UltimoCaracterFirma_Rechaza(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	c := newCodec(t)
	tok, err := c.Issue(pkgjwt.ScopeAPI, "", "")
	require.NoError(t, err)

	last := len(tok) - 1
	for _, r := range alphabet {
		if byte(r) == tok[last] {
			continue
		}
		mutated := tok[:last] + string(r)
		_, err := c.Verify(mutated)
		assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken, "%q -> %q", tok[last], r)
	}
}

func TestVerify_PayloadMutado_Rechaza(t *testing.T) {
	c := newCodec(t)
	tok, err := c.Issue(pkgjwt.ScopeAPI, "", "")
	require.NoError(t, err)

	_, err = c.Verify(mutate(tok, 1))
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestVerify_Malformado_Rechaza(t *testing.T) {
	c := newCodec(t)
	for _, tok := range []string{"", "abc", "a.b", "a.b.c", "token.invalido.aqui", "...."} {
		claims, err := c.Verify(tok)
		assert.Nil(t, claims, tok)
		assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken, tok)
	}
}

func TestVerify_SecretIncorrecto_Rechaza(t *testing.T) {
	tok, err := newCodec(t).Issue(pkgjwt.ScopeUser, testUserID, "")
	require.NoError(t, err)

	other, err := pkgjwt.NewCodec("otro-secret-completamente-distinto", testIssuer, 60)
	require.NoError(t, err)
	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestVerify_TokenExpirado_Rechaza(t *testing.T) {
	c := newCodec(t)
	past := c.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	tok, err := past.Issue(pkgjwt.ScopeUser, testUserID, "")
	require.NoError(t, err)

	_, err = c.Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestVerifyScope(t *testing.T) {
	c := newCodec(t)
	apiTok, err := c.Issue(pkgjwt.ScopeAPI, "", "")
	require.NoError(t, err)

	_, err = c.VerifyScope(apiTok, pkgjwt.ScopeAPI)
	assert.NoError(t, err)

	_, err = c.VerifyScope(apiTok, pkgjwt.ScopeUser)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken, "un token api no abre rutas de usuario")
}

func TestNewCodec_Validaciones(t *testing.T) {
	_, err := pkgjwt.NewCodec("", testIssuer, 60)
	assert.Error(t, err)

	_, err = pkgjwt.NewCodec(testSecret, testIssuer, 0)
	assert.Error(t, err)
}
