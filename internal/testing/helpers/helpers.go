// Package helpers provides common test utilities for HTTP level testing.
//
// This package includes a token issuer, HTTP request builders, response
// validators, and store assertion helpers.
package helpers

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/forgo/agenda/internal/database"
	"github.com/forgo/agenda/internal/model"
	"github.com/forgo/agenda/pkg/jwt"
)

// ============================================================================
// JWT Helpers
// ============================================================================

// TokenIssuer signs identity tokens with an in-memory key. Its Service
// validates them, so it can back the auth middleware directly.
type TokenIssuer struct {
	t       *testing.T
	Service *jwt.Service
}

// NewTokenIssuer creates a token issuer with a fresh RSA key
func NewTokenIssuer(t *testing.T) *TokenIssuer {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("helpers: failed to generate RSA key: %v", err)
	}

	return &TokenIssuer{
		t:       t,
		Service: jwt.NewTestService(privateKey, "agenda-test", 15*time.Minute),
	}
}

// Token signs a valid token for email carrying roles
func (ti *TokenIssuer) Token(email string, roles ...string) string {
	ti.t.Helper()

	token, err := ti.Service.Sign(jwt.Claims{Email: email, Name: email, Roles: roles})
	if err != nil {
		ti.t.Fatalf("helpers: failed to sign token: %v", err)
	}
	return token
}

// ExpiredToken signs a token that expired an hour ago
func (ti *TokenIssuer) ExpiredToken(email string, roles ...string) string {
	ti.t.Helper()

	claims := jwt.Claims{Email: email, Roles: roles}
	claims.ExpiresAt = gojwt.NewNumericDate(time.Now().Add(-1 * time.Hour))

	token, err := ti.Service.Sign(claims)
	if err != nil {
		ti.t.Fatalf("helpers: failed to sign token: %v", err)
	}
	return token
}

// ============================================================================
// HTTP Request Helpers
// ============================================================================

// RequestBuilder helps construct HTTP requests for testing
type RequestBuilder struct {
	t       *testing.T
	method  string
	path    string
	body    interface{}
	rawBody string
	headers map[string]string
}

// NewRequest creates a new request builder
func NewRequest(t *testing.T, method, path string) *RequestBuilder {
	t.Helper()
	return &RequestBuilder{
		t:       t,
		method:  method,
		path:    path,
		headers: make(map[string]string),
	}
}

// WithBody sets the request body (will be JSON encoded)
func (rb *RequestBuilder) WithBody(body interface{}) *RequestBuilder {
	rb.body = body
	return rb
}

// WithRawBody sets the request body verbatim
func (rb *RequestBuilder) WithRawBody(body string) *RequestBuilder {
	rb.rawBody = body
	return rb
}

// WithHeader adds a header to the request
func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.headers[key] = value
	return rb
}

// WithEventKey sets the titulo, fechaInicio and fechaFin headers
func (rb *RequestBuilder) WithEventKey(title string, start, end int64) *RequestBuilder {
	rb.headers[model.HeaderEventTitle] = title
	rb.headers[model.HeaderEventStart] = strconv.FormatInt(start, 10)
	rb.headers[model.HeaderEventEnd] = strconv.FormatInt(end, 10)
	return rb
}

// WithToken adds a bearer token
func (rb *RequestBuilder) WithToken(token string) *RequestBuilder {
	rb.headers["Authorization"] = "Bearer " + token
	return rb
}

// Build creates the HTTP request
func (rb *RequestBuilder) Build() *http.Request {
	rb.t.Helper()

	var bodyReader io.Reader
	switch {
	case rb.body != nil:
		bodyBytes, err := json.Marshal(rb.body)
		if err != nil {
			rb.t.Fatalf("helpers: failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	case rb.rawBody != "":
		bodyReader = bytes.NewReader([]byte(rb.rawBody))
	}

	req := httptest.NewRequest(rb.method, rb.path, bodyReader)
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range rb.headers {
		req.Header.Set(k, v)
	}
	return req
}

// Do builds the request and serves it through h
func (rb *RequestBuilder) Do(h http.Handler) *httptest.ResponseRecorder {
	rb.t.Helper()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, rb.Build())
	return rr
}

// ============================================================================
// Response Assertion Helpers
// ============================================================================

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, resp *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if resp.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, resp.Code, resp.Body.String())
	}
}

// AssertFailure validates a {codigo, message} failure body and returns it
func AssertFailure(t *testing.T, resp *httptest.ResponseRecorder, expectedStatus int, expectedCode model.ErrorCode) model.Failure {
	t.Helper()

	AssertStatus(t, resp, expectedStatus)

	var f model.Failure
	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, &f); err != nil {
		t.Fatalf("failed to decode failure: %v. Body: %s", err, string(bodyBytes))
	}
	if f.Code != expectedCode {
		t.Errorf("expected codigo %d, got %d (%s)", expectedCode, f.Code, f.Message)
	}
	return f
}

// AssertMessage checks a 200 {message} body
func AssertMessage(t *testing.T, resp *httptest.ResponseRecorder, expected string) {
	t.Helper()

	AssertStatus(t, resp, http.StatusOK)

	var body model.MessageResponse
	DecodeResponse(t, resp, &body)
	if body.Message != expected {
		t.Errorf("expected message %q, got %q", expected, body.Message)
	}
}

// DecodeResponse decodes the response body into the given struct
func DecodeResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, v); err != nil {
		t.Fatalf("failed to decode response: %v. Body: %s", err, string(bodyBytes))
	}
}

// ============================================================================
// Database Assertion Helpers
// ============================================================================

// AssertRecordExists checks that table holds a record with the given id.
// id may be a string or a composite array id.
func AssertRecordExists(t *testing.T, db database.Database, table string, id interface{}) {
	t.Helper()

	if !recordExists(t, db, table, id) {
		t.Errorf("expected record %s:%v to exist, but it doesn't", table, id)
	}
}

// AssertRecordNotExists checks that a record does not exist
func AssertRecordNotExists(t *testing.T, db database.Database, table string, id interface{}) {
	t.Helper()

	if recordExists(t, db, table, id) {
		t.Errorf("expected record %s:%v to not exist, but it does", table, id)
	}
}

func recordExists(t *testing.T, db database.Database, table string, id interface{}) bool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results, err := db.Query(ctx, "SELECT * FROM type::thing($table, $id)", map[string]interface{}{
		"table": table,
		"id":    id,
	})
	if err != nil {
		t.Fatalf("failed to query for record: %v", err)
	}
	return hasResults(results)
}

// hasResults checks if SurrealDB query returned any results
func hasResults(results []interface{}) bool {
	if len(results) == 0 {
		return false
	}

	resp, ok := results[0].(map[string]interface{})
	if !ok {
		return false
	}

	switch v := resp["result"].(type) {
	case []interface{}:
		return len(v) > 0
	case map[string]interface{}:
		return true
	case nil:
		return false
	default:
		return true
	}
}
