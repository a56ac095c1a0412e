// Package client implements the HTTP contract of the authoritative
// marketplace backend. Every mutation here can be rejected upstream even
// when local checks passed; rejections surface verbatim. The client never
// retries: repeating a partially committed multi-step transition risks
// duplicate session creation, so retry policy lives above this layer.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutorhive/booking_gateway/booking"
	"github.com/tutorhive/booking_gateway/models"
)

// ErrSessionNotFound maps the backend's 404 for a booking with no session.
var ErrSessionNotFound = errors.New("no session exists for this booking")

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

func New(baseURL, serviceToken string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   serviceToken,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

func (c *Client) GetBooking(ctx context.Context, bookingID uuid.UUID) (models.Booking, error) {
	var b models.Booking
	err := c.do(ctx, http.MethodGet, "/api/v1/bookings/"+bookingID.String(), nil, &b, "get booking")
	return b, err
}

type statusUpdateRequest struct {
	Status models.Status `json:"status"`
}

func (c *Client) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, status models.Status) (models.Booking, error) {
	var b models.Booking
	path := "/api/v1/bookings/" + bookingID.String() + "/status"
	err := c.do(ctx, http.MethodPatch, path, statusUpdateRequest{Status: status}, &b, "update booking status")
	return b, err
}

func (c *Client) CreateSession(ctx context.Context, in booking.SessionInput) (models.Session, error) {
	var s models.Session
	err := c.do(ctx, http.MethodPost, "/api/v1/sessions", in, &s, "create session")
	return s, err
}

func (c *Client) UpdateSession(ctx context.Context, sessionID uuid.UUID, in booking.SessionInput) (models.Session, error) {
	var s models.Session
	err := c.do(ctx, http.MethodPut, "/api/v1/sessions/"+sessionID.String(), in, &s, "update session")
	return s, err
}

func (c *Client) GetSessionByBookingID(ctx context.Context, bookingID uuid.UUID) (models.Session, error) {
	var s models.Session
	err := c.do(ctx, http.MethodGet, "/api/v1/bookings/"+bookingID.String()+"/session", nil, &s, "get session")
	var rejection *booking.RemoteRejectionError
	if errors.As(err, &rejection) && rejection.StatusCode == http.StatusNotFound {
		return models.Session{}, ErrSessionNotFound
	}
	return s, err
}

func (c *Client) GetAvailableSlots(ctx context.Context, tutorID uuid.UUID, from, to time.Time) ([]models.AvailabilitySlot, error) {
	q := url.Values{}
	q.Set("start_date", from.Format(time.RFC3339))
	q.Set("end_date", to.Format(time.RFC3339))
	path := "/api/v1/tutors/" + tutorID.String() + "/slots?" + q.Encode()

	var slots []models.AvailabilitySlot
	err := c.do(ctx, http.MethodGet, path, nil, &slots, "get available slots")
	return slots, err
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any, op string) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", op, err)
		}
		body = bytes.NewBuffer(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Debug("backend rejected request",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
		)
		return &booking.RemoteRejectionError{Op: op, StatusCode: resp.StatusCode, Message: upstreamMessage(respBody)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}

// upstreamMessage pulls the backend's message out of its JSON error
// envelope, falling back to the raw body.
func upstreamMessage(body []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return strings.TrimSpace(string(body))
}
