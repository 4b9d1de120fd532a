// Package activitywatch is the HTTP client for the ActivityWatch event
// store. It exposes the bucket and event operations the sync needs, plus
// ReplaceWindow, which composes them into the replace-a-window primitive.
package activitywatch

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/AndreyKarmanov/aw-garmin/internal/domain"
)

// Client talks to an ActivityWatch server's REST API.
type Client struct {
	http       *resty.Client
	clientName string
	logger     *zap.Logger
}

// NewClient builds a client against baseURL (e.g. "http://localhost:5600").
func NewClient(baseURL, clientName string, timeout time.Duration, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL+"/api/0").
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:       httpClient,
		clientName: clientName,
		logger:     logger,
	}
}

type bucketRequest struct {
	Client   string `json:"client"`
	Type     string `json:"type"`
	Hostname string `json:"hostname"`
}

// EnsureBucket creates the bucket if it does not exist. The server answers
// 304 for an existing bucket, which counts as success.
func (c *Client) EnsureBucket(ctx context.Context, bucketID, eventType string) error {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(bucketRequest{Client: c.clientName, Type: eventType, Hostname: hostname}).
		Post("/buckets/" + bucketID)
	if err != nil {
		return fmt.Errorf("ensure bucket %s: %w", bucketID, err)
	}
	switch resp.StatusCode() {
	case http.StatusOK, http.StatusCreated:
		c.logger.Info("created bucket", zap.String("bucket", bucketID))
		return nil
	case http.StatusNotModified:
		c.logger.Debug("bucket already exists", zap.String("bucket", bucketID))
		return nil
	default:
		return fmt.Errorf("ensure bucket %s: unexpected status %d", bucketID, resp.StatusCode())
	}
}

// wireEvent is the event shape on the ActivityWatch API. Duration is in
// seconds; ID is assigned by the server and absent on insert.
type wireEvent struct {
	ID        int64          `json:"id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Duration  float64        `json:"duration"`
	Data      map[string]any `json:"data"`
}

// EventsInWindow lists the bucket's events whose timestamps fall inside the
// window.
func (c *Client) EventsInWindow(ctx context.Context, bucketID string, window domain.Window) ([]StoredEvent, error) {
	var result []wireEvent
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"start": window.Start.Format(time.RFC3339),
			"end":   window.End.Format(time.RFC3339),
			"limit": "-1",
		}).
		SetResult(&result).
		Get("/buckets/" + bucketID + "/events")
	if err != nil {
		return nil, fmt.Errorf("list events in %s: %w", bucketID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list events in %s: unexpected status %d", bucketID, resp.StatusCode())
	}

	events := make([]StoredEvent, 0, len(result))
	for _, event := range result {
		// The server's range query treats the bounds loosely; filter
		// client-side so callers get strict half-open semantics.
		if !window.Contains(event.Timestamp) {
			continue
		}
		events = append(events, StoredEvent{
			ID:        event.ID,
			Timestamp: event.Timestamp,
			Duration:  time.Duration(event.Duration * float64(time.Second)),
			Data:      event.Data,
		})
	}
	return events, nil
}

// StoredEvent is an event as held by the server, with its assigned ID.
type StoredEvent struct {
	ID        int64
	Timestamp time.Time
	Duration  time.Duration
	Data      map[string]any
}

// InsertEvents appends events to the bucket.
func (c *Client) InsertEvents(ctx context.Context, bucketID string, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	payload := make([]wireEvent, 0, len(events))
	for _, event := range events {
		payload = append(payload, toWire(event))
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/buckets/" + bucketID + "/events")
	if err != nil {
		return fmt.Errorf("insert events into %s: %w", bucketID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("insert events into %s: unexpected status %d", bucketID, resp.StatusCode())
	}
	return nil
}

// DeleteEvent removes a single event by its server-assigned ID.
func (c *Client) DeleteEvent(ctx context.Context, bucketID string, eventID int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/buckets/" + bucketID + "/events/" + strconv.FormatInt(eventID, 10))
	if err != nil {
		return fmt.Errorf("delete event %d from %s: %w", eventID, bucketID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("delete event %d from %s: unexpected status %d", eventID, bucketID, resp.StatusCode())
	}
	return nil
}

// ReplaceWindow substitutes all events in the window with the given set:
// list, delete, insert. The new set is fully computed before the first
// delete is issued, and only one window is ever written per run, so a rerun
// over unchanged source data converges to the same final state.
func (c *Client) ReplaceWindow(ctx context.Context, bucketID string, window domain.Window, events []domain.Event) error {
	existing, err := c.EventsInWindow(ctx, bucketID, window)
	if err != nil {
		return err
	}
	for _, event := range existing {
		if err := c.DeleteEvent(ctx, bucketID, event.ID); err != nil {
			return err
		}
	}
	if err := c.InsertEvents(ctx, bucketID, events); err != nil {
		return err
	}

	c.logger.Info("replaced window",
		zap.String("bucket", bucketID),
		zap.Time("window_start", window.Start),
		zap.Time("window_end", window.End),
		zap.Int("deleted", len(existing)),
		zap.Int("inserted", len(events)),
	)
	return nil
}

func toWire(event domain.Event) wireEvent {
	data := map[string]any{
		"title":    event.Title,
		"category": string(event.Category),
	}
	for key, value := range event.Data {
		data[key] = value
	}
	return wireEvent{
		Timestamp: event.Timestamp.UTC(),
		Duration:  event.Duration.Seconds(),
		Data:      data,
	}
}
