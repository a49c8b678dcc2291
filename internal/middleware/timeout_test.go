package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDeadline_KeepsHandlerResponse(t *testing.T) {
	handler := Deadline(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Deadline(); !ok {
			t.Error("expected a deadline on the request context")
		}
		<-r.Context().Done()
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("lo siento"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/api/ai/chat", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	if rr.Body.String() != "lo siento" {
		t.Errorf("body = %q", rr.Body.String())
	}
}
