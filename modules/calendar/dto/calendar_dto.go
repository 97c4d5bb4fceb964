package dto

import "time"

// ===================== Google freeBusy =====================

// GoogleFreeBusyRequest is the POST body for the freeBusy endpoint
type GoogleFreeBusyRequest struct {
	TimeMin string                  `json:"timeMin"`
	TimeMax string                  `json:"timeMax"`
	Items   []GoogleFreeBusyCalItem `json:"items"`
}

type GoogleFreeBusyCalItem struct {
	ID string `json:"id"`
}

// GoogleFreeBusyResponse carries the busy blocks per calendar
type GoogleFreeBusyResponse struct {
	Calendars map[string]GoogleFreeBusyCal `json:"calendars"`
}

type GoogleFreeBusyCal struct {
	Busy   []GoogleBusyPeriod `json:"busy"`
	Errors []GoogleCalError   `json:"errors,omitempty"`
}

type GoogleBusyPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type GoogleCalError struct {
	Domain string `json:"domain"`
	Reason string `json:"reason"`
}

// ===================== Microsoft Graph calendarView =====================

// GraphCalendarViewResponse is one page of the calendarView listing
type GraphCalendarViewResponse struct {
	Value    []GraphEvent `json:"value"`
	NextLink string       `json:"@odata.nextLink"`
}

type GraphEvent struct {
	Start  GraphDateTime `json:"start"`
	End    GraphDateTime `json:"end"`
	ShowAs string        `json:"showAs"`
}

// GraphDateTime is Graph's zone-annotated timestamp. With the UTC Prefer
// header the DateTime field arrives without an offset.
type GraphDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// ===================== Resync =====================

// ResyncResponse reports one resync run over an event
type ResyncResponse struct {
	Queued   bool       `json:"queued,omitempty"`
	Synced   int        `json:"synced"`
	Skipped  int        `json:"skipped"`
	LastSync *time.Time `json:"lastSync,omitempty"`
}
