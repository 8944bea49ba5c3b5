package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"salescrm_backend/internal/email"
	"salescrm_backend/internal/events"
	"salescrm_backend/platform/logger"
)

type testNotificationConfig struct {
	managerEmail string
}

func (c testNotificationConfig) GetManagerEmail() string { return c.managerEmail }
func (c testNotificationConfig) GetAppBaseURL() string   { return "https://app.example.com" }

type testSender struct {
	releaseSummaryCalls int
	assignedCalls       int
	lastTo              string
	lastReleased        []email.ReleasedProspect
	lastCompany         string
	lastOwner           string
	lastURL             string
	err                 error
}

func (s *testSender) SendReleaseSummaryEmail(_ context.Context, toEmail string, released []email.ReleasedProspect, _ string) error {
	s.releaseSummaryCalls++
	s.lastTo = toEmail
	s.lastReleased = released
	return s.err
}

func (s *testSender) SendProspectAssignedEmail(_ context.Context, toEmail, companyName, ownerName, prospectURL string) error {
	s.assignedCalls++
	s.lastTo = toEmail
	s.lastCompany = companyName
	s.lastOwner = ownerName
	s.lastURL = prospectURL
	return s.err
}

func (s *testSender) SendCustomEmail(context.Context, string, string, string) error { return nil }

func releasedEvent() events.ProspectsReleased {
	return events.ProspectsReleased{
		BaseEvent:      events.NewBaseEvent(),
		OrganizationID: uuid.New(),
		ReleasedIDs:    []uuid.UUID{uuid.New(), uuid.New()},
		CompanyNames:   []string{"Acme BV", "Globex"},
		PreviousOwners: []string{"Alex Doe", "Sam Lee"},
	}
}

func TestOnProspectsReleased_SendsManagerSummary(t *testing.T) {
	sender := &testSender{}
	bus := events.NewInMemoryBus(logger.New("development"))
	m := NewModule(bus, sender, testNotificationConfig{managerEmail: "manager@example.com"}, logger.New("development"))

	if err := m.onProspectsReleased(context.Background(), releasedEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sender.releaseSummaryCalls != 1 {
		t.Fatalf("expected 1 summary email, got %d", sender.releaseSummaryCalls)
	}
	if sender.lastTo != "manager@example.com" {
		t.Fatalf("expected email to manager, got %q", sender.lastTo)
	}
	if len(sender.lastReleased) != 2 {
		t.Fatalf("expected 2 released lines, got %d", len(sender.lastReleased))
	}
	if sender.lastReleased[0].CompanyName != "Acme BV" || sender.lastReleased[0].PreviousOwner != "Alex Doe" {
		t.Fatalf("unexpected first line: %+v", sender.lastReleased[0])
	}
}

func TestOnProspectsReleased_NoManagerConfigured(t *testing.T) {
	sender := &testSender{}
	bus := events.NewInMemoryBus(logger.New("development"))
	m := NewModule(bus, sender, testNotificationConfig{}, logger.New("development"))

	if err := m.onProspectsReleased(context.Background(), releasedEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.releaseSummaryCalls != 0 {
		t.Fatalf("expected no email without a manager address, got %d", sender.releaseSummaryCalls)
	}
}

func TestOnProspectsReleased_SenderFailureReturnsError(t *testing.T) {
	sender := &testSender{err: errors.New("smtp timeout")}
	bus := events.NewInMemoryBus(logger.New("development"))
	m := NewModule(bus, sender, testNotificationConfig{managerEmail: "manager@example.com"}, logger.New("development"))

	if err := m.onProspectsReleased(context.Background(), releasedEvent()); err == nil {
		t.Fatal("expected error from failed delivery")
	}
}

func assignedEvent(owner *uuid.UUID) events.ProspectAssigned {
	return events.ProspectAssigned{
		BaseEvent:      events.NewBaseEvent(),
		ProspectID:     uuid.MustParse("6f1d8a8e-0c6d-4c8a-9be0-0f6c3f8a2d11"),
		OrganizationID: uuid.New(),
		CompanyName:    "Acme BV",
		NewOwner:       owner,
		NewOwnerName:   "Alex Doe",
		AssignedByID:   uuid.New(),
	}
}

func TestOnProspectAssigned_SendsManagerNotice(t *testing.T) {
	sender := &testSender{}
	bus := events.NewInMemoryBus(logger.New("development"))
	m := NewModule(bus, sender, testNotificationConfig{managerEmail: "manager@example.com"}, logger.New("development"))

	owner := uuid.New()
	if err := m.onProspectAssigned(context.Background(), assignedEvent(&owner)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sender.assignedCalls != 1 {
		t.Fatalf("expected 1 assignment email, got %d", sender.assignedCalls)
	}
	if sender.lastTo != "manager@example.com" {
		t.Fatalf("expected email to manager, got %q", sender.lastTo)
	}
	if sender.lastCompany != "Acme BV" || sender.lastOwner != "Alex Doe" {
		t.Fatalf("unexpected email content: %q owned by %q", sender.lastCompany, sender.lastOwner)
	}
	wantURL := "https://app.example.com/prospects/6f1d8a8e-0c6d-4c8a-9be0-0f6c3f8a2d11"
	if sender.lastURL != wantURL {
		t.Fatalf("expected prospect URL %q, got %q", wantURL, sender.lastURL)
	}
}

func TestOnProspectAssigned_UnassignmentSkipped(t *testing.T) {
	sender := &testSender{}
	bus := events.NewInMemoryBus(logger.New("development"))
	m := NewModule(bus, sender, testNotificationConfig{managerEmail: "manager@example.com"}, logger.New("development"))

	if err := m.onProspectAssigned(context.Background(), assignedEvent(nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.assignedCalls != 0 {
		t.Fatalf("expected no email for a return to the pool, got %d", sender.assignedCalls)
	}
}
