package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"prikkr/core/config"
	"prikkr/core/constants"
	"prikkr/core/errors"
	"prikkr/core/logger"
	"prikkr/modules/availability"
	"prikkr/modules/calendar/dto"
)

const googleFreeBusyAPI = "https://www.googleapis.com/calendar/v3/freeBusy"

// GoogleBusyFetcher reads busy blocks through the Calendar freeBusy API.
// Access tokens are minted per call from the participant's refresh token;
// only the refresh token is ever stored.
type GoogleBusyFetcher struct {
	oauth *oauth2.Config
}

// NewGoogleBusyFetcher creates the Google fetcher
func NewGoogleBusyFetcher(cfg config.GoogleConfig) *GoogleBusyFetcher {
	return &GoogleBusyFetcher{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
		},
	}
}

func (f *GoogleBusyFetcher) FetchBusy(ctx context.Context, email, refreshToken string, from, to time.Time) ([]availability.Interval, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ProviderTimeout)
	defer cancel()

	client := f.oauth.Client(ctx, &oauth2.Token{RefreshToken: refreshToken})

	body, err := json.Marshal(&dto.GoogleFreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []dto.GoogleFreeBusyCalItem{{ID: "primary"}},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleFreeBusyAPI, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrProviderAPI, "Google freeBusy request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		logger.Warn("GoogleBusyFetcher:FetchBusy:status", "email", email, "status", resp.StatusCode)
		return nil, errors.NewAppError(errors.ErrProviderAPI,
			fmt.Sprintf("Google freeBusy returned %d", resp.StatusCode),
			fmt.Errorf("%s", raw))
	}

	var parsed dto.GoogleFreeBusyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.NewAppError(errors.ErrProviderAPI, "Failed to decode Google freeBusy response", err)
	}

	var intervals []availability.Interval
	for id, cal := range parsed.Calendars {
		for _, e := range cal.Errors {
			logger.Warn("GoogleBusyFetcher:FetchBusy:calendarError", "email", email, "calendar", id, "reason", e.Reason)
		}
		for _, b := range cal.Busy {
			intervals = append(intervals, availability.Interval{Start: b.Start, End: b.End})
		}
	}
	return availability.MergeIntervals(intervals), nil
}
