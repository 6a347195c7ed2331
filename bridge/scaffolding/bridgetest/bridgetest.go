// Package bridgetest drives bridge routes through a real WebHandler.
package bridgetest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrazmi/stockdata/infrastructure/web"
)

// APIRoute is the prefix bridges are mounted under in tests.
const APIRoute = "/api/v1"

// NewHandler returns a handler and the API group to register routes on.
func NewHandler() (*web.WebHandler, *web.RouteGroup) {
	h := web.NewWebHandler()
	return h, h.Group(APIRoute)
}

// Do sends a request to h. A non-nil body is sent as JSON.
func Do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, APIRoute+path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// Decode unmarshals the recorded body into a T.
func Decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

// ExpectStatus fails the test when the recorded status differs from want.
func ExpectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body %s", rec.Code, want, rec.Body.String())
	}
}

// Record is the single-record envelope.
type Record[T any] struct {
	Record T `json:"record"`
}

// Page is the list envelope.
type Page[T any] struct {
	Records  []T `json:"records"`
	PageInfo struct {
		Limit      int    `json:"limit"`
		NextCursor string `json:"nextCursor"`
		PageTotal  int    `json:"pageTotal"`
	} `json:"pageInfo"`
}

// Error is the error envelope.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
