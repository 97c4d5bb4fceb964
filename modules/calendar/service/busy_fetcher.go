package service

import (
	"context"
	"time"

	"prikkr/modules/availability"
)

// BusyFetcher pulls a participant's busy intervals from their calendar
// provider for a time window. Implementations refresh access tokens from
// the stored refresh token on their own.
type BusyFetcher interface {
	FetchBusy(ctx context.Context, email, refreshToken string, from, to time.Time) ([]availability.Interval, error)
}
