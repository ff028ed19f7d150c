package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/steadyapp/steady-backend/internal/domain/models"
	"github.com/steadyapp/steady-backend/internal/service/steadiness"
	"github.com/steadyapp/steady-backend/pkg/logger"
)

func newTestHandler(t *testing.T) (*Steadiness, *steadiness.Service) {
	t.Helper()
	engine := steadiness.New(steadiness.Defaults(), logger.InitLogger("handler-test", logger.LevelError))
	return NewSteadiness(engine, "Sydney", logger.InitLogger("handler-test", logger.LevelError)), engine
}

// weeklySessions builds n sessions spaced one week apart ending near now,
// so they always land inside the engine's lookback.
func weeklySessions(driverID string, earnings []float64) []models.Session {
	sessions := make([]models.Session, 0, len(earnings))
	end := time.Now().Add(-24 * time.Hour)
	for i, e := range earnings {
		sessions = append(sessions, models.Session{
			DriverID:    driverID,
			Timestamp:   end.Add(-time.Duration(len(earnings)-1-i) * 7 * 24 * time.Hour),
			HoursWorked: 8,
			Earnings:    e,
			Zones:       []string{"CBD"},
		})
	}
	return sessions
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return body
}

func TestGetScore_MissingDriverID(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/steadiness/score", nil)
	rec := httptest.NewRecorder()
	h.GetScore(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestGetScore_BadPeriod(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/steadiness/score?driver_id=driver1&period=hourly", nil)
	rec := httptest.NewRecorder()
	h.GetScore(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestGetScore_UnknownDriver(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/steadiness/score?driver_id=ghost", nil)
	rec := httptest.NewRecorder()
	h.GetScore(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := decodeBody(t, rec)
	result, ok := body["steadiness"].(map[string]any)
	if !ok {
		t.Fatalf("missing steadiness envelope: %v", body)
	}
	if result["score"].(float64) != 0 {
		t.Errorf("score = %v, want 0", result["score"])
	}
	if result["comparison_text"] != "No session data found" {
		t.Errorf("comparison_text = %q, want the reason", result["comparison_text"])
	}
}

func TestGetScore_SteadyDriver(t *testing.T) {
	h, engine := newTestHandler(t)
	sessions := weeklySessions("driver1", []float64{800, 820, 810, 790, 805, 815})
	if err := engine.Load(context.Background(), "driver1", sessions); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/steadiness/score?driver_id=driver1&period=weekly", nil)
	rec := httptest.NewRecorder()
	h.GetScore(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	body := decodeBody(t, rec)
	result := body["steadiness"].(map[string]any)
	if score := result["score"].(float64); score < 85 {
		t.Errorf("score = %v, want >= 85 for a steady earner", score)
	}
	text, _ := result["comparison_text"].(string)
	if !strings.Contains(text, "Sydney") {
		t.Errorf("comparison_text = %q, want the cohort city in it", text)
	}
}

func TestGetBreakdown_MissingDriverID(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/steadiness/breakdown", nil)
	rec := httptest.NewRecorder()
	h.GetBreakdown(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestGetBreakdown_RendersInsights(t *testing.T) {
	h, engine := newTestHandler(t)
	sessions := weeklySessions("driver1", []float64{800, 820, 810, 790, 805, 815})
	if err := engine.Load(context.Background(), "driver1", sessions); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/steadiness/breakdown?driver_id=driver1", nil)
	rec := httptest.NewRecorder()
	h.GetBreakdown(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	result := body["breakdown"].(map[string]any)
	insights, _ := result["insights"].([]any)
	texts, _ := result["insight_text"].([]any)
	if len(insights) == 0 {
		t.Fatal("expected at least one insight")
	}
	if len(texts) != len(insights) {
		t.Fatalf("insight_text has %d entries for %d insights", len(texts), len(insights))
	}
	for i, txt := range texts {
		if txt == "" {
			t.Errorf("insight %d rendered to an empty string", i)
		}
	}
}

func TestGetVolatility_BadWeeks(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, weeks := range []string{"abc", "0", "500"} {
		req := httptest.NewRequest(http.MethodGet, "/steadiness/volatility?driver_id=driver1&weeks="+weeks, nil)
		rec := httptest.NewRecorder()
		h.GetVolatility(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("weeks=%s: status = %d, want %d", weeks, rec.Code, http.StatusUnprocessableEntity)
		}
	}
}

func TestGetVolatility_InsufficientData(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/steadiness/volatility?driver_id=ghost&weeks=12", nil)
	rec := httptest.NewRecorder()
	h.GetVolatility(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	result := body["volatility"].(map[string]any)
	if result["direction"] != "insufficient_data" {
		t.Errorf("direction = %v, want insufficient_data", result["direction"])
	}
}

func TestLoadSessions(t *testing.T) {
	h, engine := newTestHandler(t)

	payload := `{
		"driver_id": "driver1",
		"sessions": [
			{"timestamp": "` + time.Now().Add(-48*time.Hour).Format(time.RFC3339) + `", "hours_worked": 6, "earnings": 240, "zones": ["CBD"]}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.LoadSessions(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["sessions_loaded"].(float64) != 1 {
		t.Errorf("sessions_loaded = %v, want 1", body["sessions_loaded"])
	}

	// The history must actually land in the engine. One session is below
	// the analysis minimum, so the engine reports that rather than no data.
	result, err := engine.GetSteadinessScore(context.Background(), "driver1", "weekly")
	if err != nil {
		t.Fatal(err)
	}
	if result.Reason != "Need at least 4 sessions" {
		t.Errorf("reason = %q, want the minimum-sessions reason", result.Reason)
	}
}

func TestLoadSessions_Invalid(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{"empty body", ``, http.StatusBadRequest},
		{"malformed json", `{"driver_id":`, http.StatusBadRequest},
		{"unknown field", `{"driver_id": "d", "sessions": [], "extra": 1}`, http.StatusBadRequest},
		{"no sessions", `{"driver_id": "d", "sessions": []}`, http.StatusUnprocessableEntity},
		{"negative earnings", `{"driver_id": "d", "sessions": [{"timestamp": "2026-08-01T10:00:00Z", "hours_worked": 5, "earnings": -10, "zones": []}]}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(tt.payload))
			rec := httptest.NewRecorder()
			h.LoadSessions(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d, body: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}
