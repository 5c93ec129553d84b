package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/mitchellh/mapstructure"
)

const issuer = "questboard"

var ErrInvalidIssuer = errors.New("token was not issued by this server")

// Engine signs and verifies tokens carrying an object of type T.
type Engine[T any] interface {
	// Generate creates a token string containing the obj and expiration.
	Generate(expiration time.Duration, obj T) (string, error)

	// Verify returns an error if the token is invalid or expired. Otherwise it
	// parses the carried object.
	Verify(token string) (T, error)
}

type claims struct {
	jwt.RegisteredClaims
	Payload any `json:"obj"`
}

type hmacEngine[T any] struct {
	key    []byte
	parser *jwt.Parser
}

func NewEngine[T any](secret string) Engine[T] {
	return &hmacEngine[T]{
		key:    []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (e *hmacEngine[T]) Generate(expiration time.Duration, obj T) (string, error) {
	issuedAt := jwt.NewNumericDate(time.Now())
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  issuedAt,
			NotBefore: issuedAt,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(expiration)),
		},
		Payload: obj,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(e.key)
}

func (e *hmacEngine[T]) Verify(token string) (T, error) {
	var obj T
	var c claims
	if _, err := e.parser.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return e.key, nil
	}); err != nil {
		return obj, err
	}

	if !c.VerifyIssuer(issuer, true) {
		return obj, ErrInvalidIssuer
	}

	// Payload went through JSON, so structs come back as maps.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: &obj})
	if err != nil {
		return obj, err
	}

	return obj, decoder.Decode(c.Payload)
}
