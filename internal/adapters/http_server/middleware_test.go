package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func TestInstrument_LogsRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	m := chi.NewRouter()
	m.Use(Instrument(zerolog.New(&buf)))
	m.Get("/v1/hotels/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/hotels/trip-77", nil))

	line := buf.String()
	if !strings.Contains(line, `"route":"/v1/hotels/{id}"`) || !strings.Contains(line, `"status":418`) {
		t.Fatalf("unexpected access log: %s", line)
	}
}

func TestRemoteIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.7:5555"
	if got := remoteIP(r); got != "10.0.0.7" {
		t.Fatalf("got %s", got)
	}
	r.RemoteAddr = "10.0.0.8"
	if got := remoteIP(r); got != "10.0.0.8" {
		t.Fatalf("got %s", got)
	}
}
