package booking

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tutorhive/booking_gateway/models"
)

func TestValidateSessionWindow(t *testing.T) {
	b, _, _ := testBooking(models.StatusPending)

	valid := func() SessionInput {
		return SessionInput{
			BookingID:     b.ID,
			VideoCallLink: "https://meet.example/x",
			SessionNotes:  strings.Repeat("n", 10),
			StartTime:     b.StartTime,
			EndTime:       b.EndTime,
		}
	}

	cases := []struct {
		name      string
		mutate    func(*SessionInput)
		wantField string
	}{
		{"valid input", func(in *SessionInput) {}, ""},
		{"notes of nine characters", func(in *SessionInput) { in.SessionNotes = strings.Repeat("n", 9) }, "session_notes"},
		{"empty notes", func(in *SessionInput) { in.SessionNotes = "" }, "session_notes"},
		{"empty link", func(in *SessionInput) { in.VideoCallLink = "" }, "video_call_link"},
		{"link is not a url", func(in *SessionInput) { in.VideoCallLink = "not a link" }, "video_call_link"},
		{"starts before the booking", func(in *SessionInput) { in.StartTime = b.StartTime.Add(-time.Minute) }, "start_time"},
		{"missing start time", func(in *SessionInput) { in.StartTime = time.Time{} }, "start_time"},
		{"ends after the booking", func(in *SessionInput) { in.EndTime = b.EndTime.Add(time.Minute) }, "end_time"},
		{"ends at start", func(in *SessionInput) { in.EndTime = in.StartTime }, "end_time"},
		{"ends before start", func(in *SessionInput) {
			in.StartTime = b.StartTime.Add(30 * time.Minute)
			in.EndTime = b.StartTime.Add(10 * time.Minute)
		}, "end_time"},
		{"missing end time", func(in *SessionInput) { in.EndTime = time.Time{} }, "end_time"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid()
			tc.mutate(&in)

			err := ValidateSessionWindow(in, b)
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid input, got %v", err)
				}
				return
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := vErr.Fields[tc.wantField]; !ok {
				t.Fatalf("expected a %s field error, got %v", tc.wantField, vErr.Fields)
			}
		})
	}
}

func TestValidateSessionWindowCollectsAllFields(t *testing.T) {
	b, _, _ := testBooking(models.StatusPending)

	in := SessionInput{
		VideoCallLink: "",
		SessionNotes:  "short",
		StartTime:     b.StartTime.Add(-time.Hour),
		EndTime:       b.EndTime.Add(time.Hour),
	}

	err := ValidateSessionWindow(in, b)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"video_call_link", "session_notes", "start_time", "end_time"} {
		if _, ok := vErr.Fields[field]; !ok {
			t.Errorf("missing field error for %s: %v", field, vErr.Fields)
		}
	}
}
