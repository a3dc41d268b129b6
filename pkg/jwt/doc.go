// Package jwt issues and validates the RS256 access tokens that carry a
// caller's identity into the Agenda API.
//
// # Token Generation
//
//	svc, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "keys/private.pem",
//	    Issuer:         "agenda",
//	    ExpirationMins: 60,
//	})
//	token, err := svc.Sign(jwt.Claims{
//	    Email: "ana@school.edu",
//	    Name:  "Ana",
//	    Roles: []string{"ROLE_TEACHER"},
//	})
//
// # Token Validation
//
// A service configured with only PublicKeyPath validates but cannot sign:
//
//	claims, err := svc.Validate(token)
//	if errors.Is(err, jwt.ErrTokenExpired) { ... }
//
// Tokens must be RS256, carry the configured issuer, an expiry and an
// email claim.
//
// # Key Pairs
//
// GenerateKeyPair writes a PKCS#1 private key and a PKIX public key.
package jwt
