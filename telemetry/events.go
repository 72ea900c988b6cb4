// Package telemetry provides pet health tracking, bookmarking, and run output.
package telemetry

import "github.com/pthm-cable/nadagotchi/pet"

// EventRecord is one pet event as written to events.csv.
type EventRecord struct {
	Day     int     `csv:"day"`
	Pet     string  `csv:"pet"`
	Kind    string  `csv:"kind"`
	Subject string  `csv:"subject"`
	Value   float64 `csv:"value"`
}

// NewEventRecord flattens a pet event for output.
func NewEventRecord(petID string, e pet.Event) EventRecord {
	return EventRecord{
		Day:     e.Day,
		Pet:     petID,
		Kind:    e.Kind.String(),
		Subject: e.Subject,
		Value:   e.Value,
	}
}
