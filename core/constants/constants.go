package constants

import "time"

// Redis key prefixes. The layout mirrors the original KV namespace so an
// existing store can be pointed at this service without migration.
const (
	KeyPrefixMeta         = "meta:"
	KeyPrefixResponses    = "responses:"
	KeyPrefixParticipants = "participants:"
	KeyPrefixLastSync     = "lastsync:"
)

// Slot grid bounds.
const (
	GridStartHour        = 9
	GridEndHourStandard  = 17
	GridEndHourExtended  = 21
	MinutesPerDay        = 1440
	DefaultSlotDuration  = 60
)

// Daily pseudo-slot classification thresholds.
const (
	FreeRatioFullyFree  = 0.999
	FreeRatioMostlyFree = 0.8
)

const (
	SlotLabelAllDay = "All Day"
	// Legacy marker used by older clients for a mostly-free day. Normalized
	// to SlotLabelAllDay on save.
	SlotLabelAllDayPartial = "~All Day"
)

const (
	DefaultTimeout  = 15 * time.Second
	ProviderTimeout = 30 * time.Second
	TouchThrottle   = 20 * time.Second
	EventRetention  = 365 * 24 * time.Hour
	DefaultTimezone = "Europe/Amsterdam"
	DateLayout      = "2006-01-02"
	SlotLabelLayout = "15:04"
)

// Echo context keys.
const (
	ContextSessionClaims = "session_claims"
)

// Asynq task types and queues.
const (
	TaskTypeBusyResync = "calendar:busy_resync"
	TaskTypeSendEmail  = "mailer:send"
	QueueDefault       = "default"
	QueueMail          = "mail"
)
