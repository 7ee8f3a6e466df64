package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, http.StatusBadRequest, "ID manquant", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if got := w.Body.String(); got != `{"error":"ID manquant"}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestJSONErrorDetails(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, http.StatusInternalServerError, "failed", "boom")
	if got := w.Body.String(); got != `{"error":"failed","details":"boom"}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestJSONNilAndMessage(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, nil)
	if w.Body.String() != "null" {
		t.Fatalf("expected null body got %s", w.Body.String())
	}
	w = httptest.NewRecorder()
	JSONMessage(w, http.StatusOK, "ok")
	if w.Body.String() != `{"message":"ok"}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestJSONEncodeError(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, map[string]any{"ch": make(chan int)})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", w.Code)
	}
}

func TestWantsHTML(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if WantsHTML(r) {
		t.Fatalf("empty Accept must not select HTML")
	}
	r.Header.Set("Accept", "text/html,application/xhtml+xml")
	if !WantsHTML(r) {
		t.Fatalf("expected HTML for browser Accept")
	}
}
