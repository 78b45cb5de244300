package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTimeoutExpiredWritesUnavailable(t *testing.T) {
	handlerDone := make(chan struct{})
	handler := Timeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer close(handlerDone)
		time.Sleep(60 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("late result"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ai/grammar", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if !strings.Contains(rec.Body.String(), "temporarily unavailable") {
		t.Errorf("body = %q, want unavailable message", rec.Body.String())
	}

	// The handler outlives the deadline and writes its own response.
	// None of it may reach the client writer.
	<-handlerDone
	if strings.Contains(rec.Body.String(), "late result") {
		t.Errorf("late handler output leaked into the response: %q", rec.Body.String())
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status after late handler write = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestTimeoutPassesThroughFastHandler(t *testing.T) {
	handler := Timeout(1 * time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Tool", "improve")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("done"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ai/improve", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if rec.Body.String() != "done" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "done")
	}
	if rec.Header().Get("X-Tool") != "improve" {
		t.Errorf("X-Tool header = %q, want improve", rec.Header().Get("X-Tool"))
	}
}

func TestTimeoutDeadlineVisibleToHandler(t *testing.T) {
	var hasDeadline bool
	handler := Timeout(1 * time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ai/grammar", nil))

	if !hasDeadline {
		t.Error("handler context should carry a deadline")
	}
}

func TestTimeoutPropagatesPanicToRecovery(t *testing.T) {
	handler := Recovery(Timeout(1 * time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler blew up")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ai/grammar", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
