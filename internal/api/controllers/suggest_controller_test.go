package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"roam/internal/models/request_models"
	"roam/internal/models/response_models"
	"roam/pkg/utils"
)

type stubSuggestService struct {
	resp        response_models.SuggestResponse
	suggestErr  error
	feedbackErr error
	lastSuggest request_models.SuggestRequest
}

func (s *stubSuggestService) Suggest(_ context.Context, req request_models.SuggestRequest) (response_models.SuggestResponse, error) {
	s.lastSuggest = req
	return s.resp, s.suggestErr
}

func (s *stubSuggestService) ForwardFeedback(context.Context, request_models.FeedbackRequest) error {
	return s.feedbackErr
}

func newTestRouter(svc *stubSuggestService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/suggestions", NewSuggestController(svc).CreateSuggestions)
	r.POST("/feedback", NewFeedbackController(svc).SubmitFeedback)
	r.GET("/health", NewHealthController().Health)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, utils.APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed utils.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("parse response %q: %v", w.Body.String(), err)
	}
	return w, parsed
}

func TestCreateSuggestionsSuccess(t *testing.T) {
	svc := &stubSuggestService{resp: response_models.SuggestResponse{
		Suggestions: []response_models.Suggestion{{ID: "m1", Name: "Dolores Park", Rank: 1}},
		Metadata:    response_models.SuggestMetadata{Returned: 1, CandidateSource: "offline:mission-sf"},
	}}
	r := newTestRouter(svc)

	w, parsed := doRequest(t, r, http.MethodPost, "/suggestions",
		`{"lat":37.7599,"lng":-122.4148,"window_minutes":90,"mode":"walk","moods":["chill"]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if parsed.Status != "success" {
		t.Errorf("status field = %q, want success", parsed.Status)
	}
	if svc.lastSuggest.WindowMinutes != 90 || svc.lastSuggest.Mode != "walk" {
		t.Errorf("bound request = %+v", svc.lastSuggest)
	}
}

func TestCreateSuggestionsZeroCoordinates(t *testing.T) {
	// Zero is a legitimate coordinate component: the Greenwich meridian and
	// the equator must bind, not get mistaken for a missing field.
	tests := []struct {
		name string
		body string
	}{
		{"zero longitude", `{"lat":51.4779,"lng":0,"window_minutes":45,"mode":"walk"}`},
		{"zero latitude", `{"lat":0,"lng":6.7326,"window_minutes":45,"mode":"bike"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubSuggestService{}
			r := newTestRouter(svc)

			w, parsed := doRequest(t, r, http.MethodPost, "/suggestions", tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
			}
			if parsed.Status != "success" {
				t.Errorf("status field = %q, want success", parsed.Status)
			}
			if svc.lastSuggest.Lat == nil || svc.lastSuggest.Lng == nil {
				t.Fatal("coordinates did not bind")
			}
		})
	}
}

func TestCreateSuggestionsBadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json"},
		{"missing required fields", `{"lat":37.7599}`},
		{"empty body", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubSuggestService{})
			w, parsed := doRequest(t, r, http.MethodPost, "/suggestions", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if parsed.Status != "error" {
				t.Errorf("status field = %q, want error", parsed.Status)
			}
		})
	}
}

func TestCreateSuggestionsValidationError(t *testing.T) {
	svc := &stubSuggestService{suggestErr: utils.ValidationError("window_minutes must be between 15 and 480")}
	r := newTestRouter(svc)

	w, parsed := doRequest(t, r, http.MethodPost, "/suggestions",
		`{"lat":37.7599,"lng":-122.4148,"window_minutes":600,"mode":"walk"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(parsed.Message, "window_minutes") {
		t.Errorf("message = %q, want the validation detail surfaced", parsed.Message)
	}
}

func TestSubmitFeedback(t *testing.T) {
	r := newTestRouter(&stubSuggestService{})

	w, parsed := doRequest(t, r, http.MethodPost, "/feedback",
		`{"place_id":"m1","event_type":"chosen","category":"park","hour":15}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if parsed.Status != "success" {
		t.Errorf("status field = %q, want success", parsed.Status)
	}
}

func TestSubmitFeedbackDisabled(t *testing.T) {
	svc := &stubSuggestService{feedbackErr: utils.ErrFeedbackDisabled}
	r := newTestRouter(svc)

	w, _ := doRequest(t, r, http.MethodPost, "/feedback",
		`{"place_id":"m1","event_type":"chosen"}`)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&stubSuggestService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}
