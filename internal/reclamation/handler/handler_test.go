package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salescrm_backend/internal/audit"
	"salescrm_backend/internal/events"
	"salescrm_backend/internal/prospects/repository"
	reclamationrepo "salescrm_backend/internal/reclamation/repository"
	"salescrm_backend/internal/reclamation/service"
	"salescrm_backend/platform/httpkit"
	"salescrm_backend/platform/logger"
)

const testCronSecret = "cron-secret-for-tests"

type testCronConfig struct{}

func (testCronConfig) GetCronSecret() string { return testCronSecret }

type stubRepo struct {
	prospects []reclamationrepo.ProspectCandidate
	listErr   error
}

func (s *stubRepo) ListProspects(context.Context) ([]reclamationrepo.ProspectCandidate, error) {
	return s.prospects, s.listErr
}

func (s *stubRepo) ListActivities(context.Context) ([]reclamationrepo.ActivityRecord, error) {
	return nil, nil
}

func (s *stubRepo) ListHolidayCalendars(context.Context) (map[uuid.UUID][]time.Time, error) {
	return nil, nil
}

func (s *stubRepo) ReleaseProspects(context.Context, []uuid.UUID) error {
	return nil
}

type stubAuditWriter struct{}

func (stubAuditWriter) Append(context.Context, audit.AppendParams) (audit.Record, error) {
	return audit.Record{}, nil
}

type nopBus struct{}

func (nopBus) Publish(context.Context, events.Event)           {}
func (nopBus) PublishSync(context.Context, events.Event) error { return nil }
func (nopBus) Subscribe(string, events.Handler)                {}

func newTestRouter(repo *stubRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New("development")
	svc := service.New(repo, stubAuditWriter{}, nopBus{}, log, 7)
	h := NewHandler(svc, log)

	engine := gin.New()
	cron := engine.Group("/api/v1/cron")
	cron.Use(httpkit.CronSecretRequired(testCronConfig{}))
	cron.GET("/release-inactive-prospects", h.ReleaseInactive)
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cron/release-inactive-prospects", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestReleaseInactive_RejectsMissingSecret(t *testing.T) {
	engine := newTestRouter(&stubRepo{})

	rec := doRequest(t, engine, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["success"] != false || body["message"] != "Unauthorized" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestReleaseInactive_RejectsWrongSecret(t *testing.T) {
	engine := newTestRouter(&stubRepo{})

	rec := doRequest(t, engine, "Bearer not-the-secret")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestReleaseInactive_ReturnsReleasedBatch(t *testing.T) {
	ownerID := uuid.New()
	stale := reclamationrepo.ProspectCandidate{
		ID:              uuid.New(),
		OrganizationID:  uuid.New(),
		OwnerID:         &ownerID,
		OwnerName:       "Alex Doe",
		CompanyName:     "Acme BV",
		Status:          repository.StatusContacted,
		CreatedAt:       time.Now().AddDate(0, 0, -30),
		StatusChangedAt: time.Now().AddDate(0, 0, -30),
	}
	engine := newTestRouter(&stubRepo{prospects: []reclamationrepo.ProspectCandidate{stale}})

	rec := doRequest(t, engine, "Bearer "+testCronSecret)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success       bool     `json:"success"`
		ReleasedCount int      `json:"releasedCount"`
		ReleasedIDs   []string `json:"releasedIds"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !body.Success {
		t.Fatal("expected success true")
	}
	if body.ReleasedCount != 1 {
		t.Fatalf("expected releasedCount 1, got %d", body.ReleasedCount)
	}
	if len(body.ReleasedIDs) != 1 || body.ReleasedIDs[0] != stale.ID.String() {
		t.Fatalf("expected released ID %s, got %v", stale.ID, body.ReleasedIDs)
	}
}

func TestReleaseInactive_EmptyRunReturnsEmptyList(t *testing.T) {
	engine := newTestRouter(&stubRepo{})

	rec := doRequest(t, engine, "Bearer "+testCronSecret)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if string(body["releasedIds"]) != "[]" {
		t.Fatalf("expected releasedIds to be an empty array, got %s", body["releasedIds"])
	}
}

func TestReleaseInactive_SnapshotFailureReturns500(t *testing.T) {
	engine := newTestRouter(&stubRepo{listErr: errors.New("connection refused")})

	rec := doRequest(t, engine, "Bearer "+testCronSecret)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["success"] != false {
		t.Fatalf("expected success false, got %v", body["success"])
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("expected error field in response")
	}
}
