package models

import "encoding/json"

// Named events pushed on the live stream.
const (
	EventBookingCreated = "booking_created"
	EventPayoutCreated  = "payout_request_created"
	EventPayoutUpdated  = "payout_request_updated"
)

// EventEnvelope wraps every pushed payload; events with a missing or empty
// data field are discarded.
type EventEnvelope struct {
	Data json.RawMessage `json:"data"`
}
