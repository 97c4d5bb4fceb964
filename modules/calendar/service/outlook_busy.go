package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"

	"prikkr/core/config"
	"prikkr/core/constants"
	"prikkr/core/errors"
	"prikkr/core/logger"
	"prikkr/modules/availability"
	"prikkr/modules/calendar/dto"
)

const graphCalendarViewAPI = "https://graph.microsoft.com/v1.0/me/calendarView"

// graphTimeLayout is Graph's timestamp with fractional seconds and no
// offset; the Prefer header pins it to UTC.
const graphTimeLayout = "2006-01-02T15:04:05.9999999"

// OutlookBusyFetcher reads events through the Graph calendarView endpoint.
// Graph has no freeBusy equivalent scoped to the signed-in user, so events
// are listed and filtered by their showAs status.
type OutlookBusyFetcher struct {
	oauth *oauth2.Config
}

// NewOutlookBusyFetcher creates the Microsoft fetcher
func NewOutlookBusyFetcher(cfg config.AzureADConfig) *OutlookBusyFetcher {
	return &OutlookBusyFetcher{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     microsoft.AzureADEndpoint(cfg.TenantID),
		},
	}
}

func (f *OutlookBusyFetcher) FetchBusy(ctx context.Context, email, refreshToken string, from, to time.Time) ([]availability.Interval, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ProviderTimeout)
	defer cancel()

	client := f.oauth.Client(ctx, &oauth2.Token{RefreshToken: refreshToken})

	query := url.Values{}
	query.Set("startDateTime", from.UTC().Format(time.RFC3339))
	query.Set("endDateTime", to.UTC().Format(time.RFC3339))
	query.Set("$select", "start,end,showAs")
	query.Set("$top", "100")
	next := graphCalendarViewAPI + "?" + query.Encode()

	var intervals []availability.Interval
	for next != "" {
		page, err := f.fetchPage(ctx, client, email, next)
		if err != nil {
			return nil, err
		}

		for _, ev := range page.Value {
			// Free and tentative events do not block a slot.
			switch strings.ToLower(ev.ShowAs) {
			case "free", "tentative", "workingelsewhere":
				continue
			}

			start, err := parseGraphTime(ev.Start)
			if err != nil {
				logger.Warn("OutlookBusyFetcher:FetchBusy:badStart", "email", email, "value", ev.Start.DateTime)
				continue
			}
			end, err := parseGraphTime(ev.End)
			if err != nil {
				logger.Warn("OutlookBusyFetcher:FetchBusy:badEnd", "email", email, "value", ev.End.DateTime)
				continue
			}
			intervals = append(intervals, availability.Interval{Start: start, End: end})
		}
		next = page.NextLink
	}
	return availability.MergeIntervals(intervals), nil
}

func (f *OutlookBusyFetcher) fetchPage(ctx context.Context, client *http.Client, email, pageURL string) (*dto.GraphCalendarViewResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", `outlook.timezone="UTC"`)

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrProviderAPI, "Graph calendarView request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		logger.Warn("OutlookBusyFetcher:fetchPage:status", "email", email, "status", resp.StatusCode)
		return nil, errors.NewAppError(errors.ErrProviderAPI,
			fmt.Sprintf("Graph calendarView returned %d", resp.StatusCode),
			fmt.Errorf("%s", raw))
	}

	var page dto.GraphCalendarViewResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, errors.NewAppError(errors.ErrProviderAPI, "Failed to decode Graph response", err)
	}
	return &page, nil
}

func parseGraphTime(g dto.GraphDateTime) (time.Time, error) {
	t, err := time.Parse(graphTimeLayout, g.DateTime)
	if err != nil {
		// Some tenants omit the fraction entirely.
		t, err = time.Parse("2006-01-02T15:04:05", g.DateTime)
	}
	return t, err
}
