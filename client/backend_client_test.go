package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutorhive/booking_gateway/booking"
	"github.com/tutorhive/booking_gateway/models"
)

func TestUpdateBookingStatusRequestShape(t *testing.T) {
	bookingID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		wantPath := "/api/v1/bookings/" + bookingID.String() + "/status"
		if r.URL.Path != wantPath {
			t.Errorf("expected path %s, got %s", wantPath, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer service-token" {
			t.Errorf("expected bearer header, got %q", got)
		}

		var body struct {
			Status models.Status `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.Status != models.StatusConfirmed {
			t.Errorf("expected status confirmed, got %s", body.Status)
		}

		json.NewEncoder(w).Encode(models.Booking{ID: bookingID, Status: models.StatusConfirmed})
	}))
	defer srv.Close()

	c := New(srv.URL, "service-token", zap.NewNop())
	b, err := c.UpdateBookingStatus(context.Background(), bookingID, models.StatusConfirmed)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if b.ID != bookingID || b.Status != models.StatusConfirmed {
		t.Fatalf("unexpected booking: %+v", b)
	}
}

func TestRejectionCarriesBackendMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "You are not the tutor for this booking"})
	}))
	defer srv.Close()

	c := New(srv.URL, "service-token", zap.NewNop())
	_, err := c.UpdateBookingStatus(context.Background(), uuid.New(), models.StatusConfirmed)

	var rejection *booking.RemoteRejectionError
	if !errors.As(err, &rejection) {
		t.Fatalf("expected RemoteRejectionError, got %v", err)
	}
	if rejection.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", rejection.StatusCode)
	}
	if rejection.Message != "You are not the tutor for this booking" {
		t.Errorf("backend message not preserved verbatim: %q", rejection.Message)
	}
}

func TestCreateSessionPostsPayload(t *testing.T) {
	bookingID := uuid.New()
	start, _ := time.Parse(time.RFC3339, "2024-01-10T09:00:00Z")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/sessions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var in booking.SessionInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if in.BookingID != bookingID || in.VideoCallLink != "https://meet.example/x" {
			t.Errorf("unexpected payload: %+v", in)
		}

		json.NewEncoder(w).Encode(models.Session{ID: uuid.New(), BookingID: in.BookingID})
	}))
	defer srv.Close()

	c := New(srv.URL, "service-token", zap.NewNop())
	s, err := c.CreateSession(context.Background(), booking.SessionInput{
		BookingID:     bookingID,
		VideoCallLink: "https://meet.example/x",
		SessionNotes:  "Agenda: review chapter 3",
		StartTime:     start,
		EndTime:       start.Add(45 * time.Minute),
	})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if s.BookingID != bookingID {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestGetSessionByBookingIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session not found"})
	}))
	defer srv.Close()

	c := New(srv.URL, "service-token", zap.NewNop())
	_, err := c.GetSessionByBookingID(context.Background(), uuid.New())
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestGetAvailableSlotsSendsWindow(t *testing.T) {
	tutorID := uuid.New()
	from, _ := time.Parse(time.RFC3339, "2024-01-01T00:00:00Z")
	to := from.AddDate(0, 0, 28)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("start_date"); got != from.Format(time.RFC3339) {
			t.Errorf("expected start_date %s, got %s", from.Format(time.RFC3339), got)
		}
		if got := r.URL.Query().Get("end_date"); got != to.Format(time.RFC3339) {
			t.Errorf("expected end_date %s, got %s", to.Format(time.RFC3339), got)
		}

		json.NewEncoder(w).Encode([]models.AvailabilitySlot{
			{ID: uuid.New(), TutorID: tutorID, StartTime: "2024-01-02T09:00:00Z", EndTime: "2024-01-02T10:00:00Z"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "service-token", zap.NewNop())
	slots, err := c.GetAvailableSlots(context.Background(), tutorID, from, to)
	if err != nil {
		t.Fatalf("get slots failed: %v", err)
	}
	if len(slots) != 1 || slots[0].TutorID != tutorID {
		t.Fatalf("unexpected slots: %+v", slots)
	}
}
