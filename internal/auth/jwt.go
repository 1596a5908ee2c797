// Package auth issues and validates the short-lived tokens handed to the
// browser softphone client.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ScopeOutgoingCall allows a client to place outbound calls through the
// bridge.
const ScopeOutgoingCall = "client:outgoing"

// ClientClaims represents the claims in a client capability token
type ClientClaims struct {
	ClientName string `json:"client_name"`
	Scope      string `json:"scope"`
	jwt.RegisteredClaims
}

// Issuer signs and validates client tokens with a shared HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates a token issuer. Tokens expire after one hour.
func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	return &Issuer{secret: []byte(secret), ttl: time.Hour}, nil
}

// IssueClientToken generates a capability token for a browser client
func (i *Issuer) IssueClientToken(clientName string) (string, error) {
	now := time.Now()
	claims := &ClientClaims{
		ClientName: clientName,
		Scope:      ScopeOutgoingCall,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ValidateToken validates a client token and returns the claims
func (i *Issuer) ValidateToken(tokenString string) (*ClientClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ClientClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*ClientClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrInvalidKey
}
