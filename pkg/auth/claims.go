package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	Subject string
	JTI     string
}

// AccessTokenClaims represents the typed JWT accepted by the gated endpoints.
// Only the registered claims are read; the subject identifies the caller.
type AccessTokenClaims struct {
	jwt.RegisteredClaims
}
