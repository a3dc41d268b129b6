package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// ============================================================================
// Test Helpers
// ============================================================================

func newTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	return privateKey
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewTestService(newTestKey(t), "test-issuer", 15*time.Minute)
}

func teacherClaims() Claims {
	return Claims{
		Email: "ana@school.edu",
		Name:  "Ana",
		Roles: []string{"ROLE_TEACHER", "admin"},
	}
}

// ============================================================================
// Sign Tests
// ============================================================================

func TestSign_ValidClaims_ReturnsToken(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, err := svc.Sign(teacherClaims())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(strings.Split(token, ".")) != 3 {
		t.Errorf("expected 3 token segments, got %q", token)
	}
}

func TestSign_NilPrivateKey_ReturnsErrInvalidKey(t *testing.T) {
	t.Parallel()
	svc := &Service{}

	_, err := svc.Sign(teacherClaims())

	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestSign_SetsRegisteredClaims(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, _ := svc.Sign(teacherClaims())
	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if claims.Issuer != "test-issuer" {
		t.Errorf("expected issuer test-issuer, got %q", claims.Issuer)
	}
	if claims.Subject != "ana@school.edu" {
		t.Errorf("expected subject to default to email, got %q", claims.Subject)
	}
	if claims.ID == "" {
		t.Error("expected a token id")
	}
	if claims.IssuedAt == nil || time.Since(claims.IssuedAt.Time) > time.Minute {
		t.Errorf("unexpected issued at %v", claims.IssuedAt)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("expected expiration")
	}
	if d := time.Until(claims.ExpiresAt.Time); d < 14*time.Minute || d > 15*time.Minute {
		t.Errorf("expected ~15m expiration, got %v", d)
	}
}

func TestSign_PreservesCustomExpiration(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	custom := time.Now().Add(3 * time.Hour).Truncate(time.Second)

	claims := teacherClaims()
	claims.ExpiresAt = gojwt.NewNumericDate(custom)
	token, _ := svc.Sign(claims)
	got, err := svc.Validate(token)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.ExpiresAt.Time.Equal(custom) {
		t.Errorf("expected expiration %v, got %v", custom, got.ExpiresAt.Time)
	}
}

// ============================================================================
// Validate Tests
// ============================================================================

func TestValidate_RoundTripCustomClaims(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, _ := svc.Sign(teacherClaims())
	claims, err := svc.ValidateAccessToken(token)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Email != "ana@school.edu" || claims.Name != "Ana" {
		t.Errorf("unexpected identity %q %q", claims.Email, claims.Name)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "ROLE_TEACHER" || claims.Roles[1] != "admin" {
		t.Errorf("unexpected roles %v", claims.Roles)
	}
}

func TestValidate_NilPublicKey_ReturnsErrInvalidKey(t *testing.T) {
	t.Parallel()
	svc := &Service{}

	_, err := svc.Validate("a.b.c")

	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestValidate_Malformed_ReturnsErrInvalidToken(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	for _, token := range []string{"", "abc", "a.b", "a.b.c.d", "not.a.token"} {
		if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestValidate_Expired_ReturnsErrTokenExpired(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	claims := teacherClaims()
	claims.ExpiresAt = gojwt.NewNumericDate(time.Now().Add(-time.Minute))
	token, _ := svc.Sign(claims)

	if _, err := svc.Validate(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidate_OtherKey_ReturnsErrInvalidSignature(t *testing.T) {
	t.Parallel()
	signer := newTestService(t)
	verifier := newTestService(t)

	token, _ := signer.Sign(teacherClaims())

	if _, err := verifier.Validate(token); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestValidate_WrongIssuer_ReturnsErrInvalidToken(t *testing.T) {
	t.Parallel()
	key := newTestKey(t)
	signer := NewTestService(key, "someone-else", time.Minute)
	verifier := NewTestService(key, "test-issuer", time.Minute)

	token, _ := signer.Sign(teacherClaims())

	if _, err := verifier.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidate_MissingEmail_ReturnsErrInvalidToken(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, _ := svc.Sign(Claims{Name: "Nobody"})

	if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidate_HS256_Rejected(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	claims := teacherClaims()
	claims.Issuer = "test-issuer"
	claims.ExpiresAt = gojwt.NewNumericDate(time.Now().Add(time.Hour))
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("failed to sign HS256: %v", err)
	}

	if _, err := svc.Validate(token); err == nil {
		t.Error("expected HS256 token to be rejected")
	}
}

// ============================================================================
// Key File Tests
// ============================================================================

func TestGenerateKeyPair_NewServiceFromFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	if err := GenerateKeyPair(privPath, pubPath); err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	info, err := os.Stat(privPath)
	if err != nil {
		t.Fatalf("private key missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected private key mode 0600, got %v", info.Mode().Perm())
	}

	signer, err := NewService(Config{PrivateKeyPath: privPath, Issuer: "agenda", ExpirationMins: 5})
	if err != nil {
		t.Fatalf("NewService(private) failed: %v", err)
	}
	verifier, err := NewService(Config{PublicKeyPath: pubPath, Issuer: "agenda"})
	if err != nil {
		t.Fatalf("NewService(public) failed: %v", err)
	}

	token, err := signer.Sign(teacherClaims())
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := verifier.Validate(token); err != nil {
		t.Errorf("validate with public key failed: %v", err)
	}
	if _, err := verifier.Sign(teacherClaims()); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("public-only service must not sign, got %v", err)
	}
	if signer.GetExpiration() != 5*time.Minute {
		t.Errorf("unexpected expiration %v", signer.GetExpiration())
	}
}

func TestNewService_MissingKeyFile(t *testing.T) {
	t.Parallel()

	_, err := NewService(Config{PrivateKeyPath: filepath.Join(t.TempDir(), "absent.pem")})

	if err == nil {
		t.Error("expected error for missing key file")
	}
}
