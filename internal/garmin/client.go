// Package garmin is the HTTP client for the Garmin Connect wellness API.
package garmin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/AndreyKarmanov/aw-garmin/internal/domain"
)

// ErrAuth is returned when Garmin rejects the credentials or session token.
var ErrAuth = errors.New("garmin: authentication failed")

// timestampLayout is the layout of the GMT timestamps in wellness payloads.
const timestampLayout = "2006-01-02T15:04:05.0"

const dateLayout = "2006-01-02"

// Client talks to the Garmin Connect API. Login must be called before the
// fetch methods; token persistence across runs is out of scope, every run
// logs in fresh.
type Client struct {
	http        *resty.Client
	email       string
	password    string
	displayName string
	logger      *zap.Logger
}

// NewClient builds a Garmin client against baseURL.
func NewClient(baseURL, email, password string, timeout time.Duration, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{
		http:     httpClient,
		email:    email,
		password: password,
		logger:   logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	DisplayName string `json:"displayName"`
}

// Login exchanges the account credentials for a session token and resolves
// the display name used by the wellness endpoints.
func (c *Client) Login(ctx context.Context) error {
	var result loginResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(loginRequest{Username: c.email, Password: c.password}).
		SetResult(&result).
		Post("/auth/login")
	if err != nil {
		return fmt.Errorf("garmin login: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		return ErrAuth
	}
	if resp.IsError() {
		return fmt.Errorf("garmin login: unexpected status %d", resp.StatusCode())
	}
	if result.AccessToken == "" {
		return ErrAuth
	}

	c.displayName = result.DisplayName
	c.http.SetAuthToken(result.AccessToken)

	c.logger.Info("logged in to Garmin Connect", zap.String("display_name", c.displayName))
	return nil
}

// sleepLevel is the wire shape of one entry in the dailySleepData response.
type sleepLevel struct {
	StartGMT      string `json:"startGMT"`
	EndGMT        string `json:"endGMT"`
	ActivityLevel int    `json:"activityLevel"`
}

type sleepResponse struct {
	SleepLevels []sleepLevel `json:"sleepLevels"`
}

// FetchSleep returns the sleep-stage segments the source attributes to the
// given calendar day. A day with no recorded sleep yields an empty slice,
// not an error.
func (c *Client) FetchSleep(ctx context.Context, date time.Time) ([]domain.RawSleepSegment, error) {
	var result sleepResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("date", date.Format(dateLayout)).
		SetResult(&result).
		Get("/wellness-service/wellness/dailySleepData/" + c.displayName)
	if err != nil {
		return nil, fmt.Errorf("garmin fetch sleep: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		return nil, ErrAuth
	}
	if resp.IsError() {
		return nil, fmt.Errorf("garmin fetch sleep: unexpected status %d", resp.StatusCode())
	}

	segments := make([]domain.RawSleepSegment, 0, len(result.SleepLevels))
	for _, level := range result.SleepLevels {
		seg, err := level.toSegment()
		if err != nil {
			// A malformed segment is logged and skipped rather than
			// aborting the whole day.
			c.logger.Warn("skipping malformed sleep level", zap.Error(err))
			continue
		}
		segments = append(segments, seg)
	}

	c.logger.Info("fetched sleep segments",
		zap.String("date", date.Format(dateLayout)),
		zap.Int("count", len(segments)),
	)
	return segments, nil
}

func (l sleepLevel) toSegment() (domain.RawSleepSegment, error) {
	start, err := time.ParseInLocation(timestampLayout, l.StartGMT, time.UTC)
	if err != nil {
		return domain.RawSleepSegment{}, fmt.Errorf("parse startGMT %q: %w", l.StartGMT, err)
	}
	end, err := time.ParseInLocation(timestampLayout, l.EndGMT, time.UTC)
	if err != nil {
		return domain.RawSleepSegment{}, fmt.Errorf("parse endGMT %q: %w", l.EndGMT, err)
	}
	return domain.RawSleepSegment{
		Stage:    domain.StageFromLevel(l.ActivityLevel),
		RawStage: strconv.Itoa(l.ActivityLevel),
		Start:    start,
		End:      end,
	}, nil
}

// allDayEvent is the wire shape of one entry in the dailyEvents response.
// Duration is reported in minutes.
type allDayEvent struct {
	StartTimestampGMT string `json:"startTimestampGMT"`
	Duration          int    `json:"duration"`
	ActivityType      string `json:"activityType"`
}

// FetchActivities returns the activity sessions recorded for the given
// calendar day. A day with no activities yields an empty slice.
func (c *Client) FetchActivities(ctx context.Context, date time.Time) ([]domain.RawActivity, error) {
	var result []allDayEvent
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("calendarDate", date.Format(dateLayout)).
		SetResult(&result).
		Get("/wellness-service/wellness/dailyEvents")
	if err != nil {
		return nil, fmt.Errorf("garmin fetch activities: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		return nil, ErrAuth
	}
	if resp.IsError() {
		return nil, fmt.Errorf("garmin fetch activities: unexpected status %d", resp.StatusCode())
	}

	activities := make([]domain.RawActivity, 0, len(result))
	for _, event := range result {
		start, err := time.ParseInLocation(timestampLayout, event.StartTimestampGMT, time.UTC)
		if err != nil {
			c.logger.Warn("skipping malformed all-day event",
				zap.String("start", event.StartTimestampGMT),
				zap.Error(err),
			)
			continue
		}
		activities = append(activities, domain.RawActivity{
			Type:     event.ActivityType,
			Start:    start,
			Duration: time.Duration(event.Duration) * time.Minute,
		})
	}

	c.logger.Info("fetched activities",
		zap.String("date", date.Format(dateLayout)),
		zap.Int("count", len(activities)),
	)
	return activities, nil
}
