package auth

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("could not validate credentials")

// Verifier checks bearer tokens issued by the external identity provider.
type Verifier struct {
	key       []byte
	algorithm string
}

func NewVerifier(signKey, algorithm string) *Verifier {
	return &Verifier{key: []byte(signKey), algorithm: algorithm}
}

// UserID verifies tokenString and returns its subject claim as a user id.
func (v *Verifier) UserID(tokenString string) (int, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.key, nil
	}, jwt.WithValidMethods([]string{v.algorithm}))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return 0, ErrInvalidToken
	}

	if claims.Subject == "" {
		return 0, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	uid, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, fmt.Errorf("%w: subject %q is not a user id", ErrInvalidToken, claims.Subject)
	}
	return uid, nil
}

// Sign issues a token for userID. The service never hands tokens out; this
// exists for tests and local tooling.
func (v *Verifier) Sign(userID int, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = strconv.Itoa(userID)
	method := jwt.GetSigningMethod(v.algorithm)
	if method == nil {
		return "", fmt.Errorf("unknown signing method %q", v.algorithm)
	}
	return jwt.NewWithClaims(method, claims).SignedString(v.key)
}
