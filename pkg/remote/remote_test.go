package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoJSONRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("X-Test") != "yes" {
			t.Errorf("X-Test = %q, want yes", r.Header.Get("X-Test"))
		}

		var in map[string]string
		json.NewDecoder(r.Body).Decode(&in)
		json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"]})
	}))
	defer server.Close()

	var out struct {
		Echo string `json:"echo"`
	}
	err := DoJSON(context.Background(), server.Client(), http.MethodPost, server.URL,
		map[string]string{"X-Test": "yes"}, map[string]string{"msg": "hi"}, &out, time.Second)
	if err != nil {
		t.Fatalf("DoJSON: %v", err)
	}
	if out.Echo != "hi" {
		t.Errorf("echo = %q, want hi", out.Echo)
	}
}

func TestDoJSONNilBodyAndOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "" {
			t.Errorf("Content-Type = %q for a bodyless request, want empty", r.Header.Get("Content-Type"))
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	if err := DoJSON(context.Background(), server.Client(), http.MethodGet, server.URL, nil, nil, nil, time.Second); err != nil {
		t.Fatalf("DoJSON: %v", err)
	}
}

func TestDoJSONStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	err := DoJSON(context.Background(), server.Client(), http.MethodGet, server.URL, nil, nil, nil, time.Second)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusTooManyRequests {
		t.Errorf("Code = %d, want 429", statusErr.Code)
	}
	if statusErr.Body != "quota exceeded" {
		t.Errorf("Body = %q, want the trimmed response body", statusErr.Body)
	}
}

func TestDoJSONTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	err := DoJSON(context.Background(), server.Client(), http.MethodGet, server.URL, nil, nil, nil, 20*time.Millisecond)
	if err == nil {
		t.Error("DoJSON = nil error, want timeout")
	}
}

func TestDoJSONDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	var out map[string]string
	if err := DoJSON(context.Background(), server.Client(), http.MethodGet, server.URL, nil, nil, &out, time.Second); err == nil {
		t.Error("DoJSON = nil error, want decode failure")
	}
}
