package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

type sessionInfo struct {
	SessionID string `json:"sid"`
	Address   string `json:"address"`
}

func TestJWT(t *testing.T) {
	engine := NewEngine[sessionInfo]("secret")
	token, err := engine.Generate(time.Minute, sessionInfo{SessionID: "abc", Address: "1xyz"})
	require.Nil(t, err)

	info, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, sessionInfo{SessionID: "abc", Address: "1xyz"}, info)
}

func TestJWTString(t *testing.T) {
	engine := NewEngine[string]("secret")
	token, err := engine.Generate(time.Minute, "abc")
	require.Nil(t, err)

	msg, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "abc", msg)
}

func TestJWTExpiration(t *testing.T) {
	engine := NewEngine[string]("secret")
	token, err := engine.Generate(-time.Minute, "abc")
	require.Nil(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewEngine[string]("secret").Generate(time.Minute, "abc")
	require.NoError(t, err)

	_, err = NewEngine[string]("another").Verify(token)
	require.Error(t, err)
}

func TestJWTRejectsOtherAlgorithm(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewEngine[string]("secret").Verify(token)
	require.Error(t, err)
}

func TestJWTRejectsForeignIssuer(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewEngine[string]("secret").Verify(token)
	require.ErrorIs(t, err, ErrInvalidIssuer)
}
