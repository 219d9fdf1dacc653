package models

const (
	PayoutPending  = "pending"
	PayoutApproved = "approved"
	PayoutRejected = "rejected"
)

type Payout struct {
	ID        ID      `json:"id"`
	BookingID ID      `json:"bookingId"`
	HostID    ID      `json:"hostId"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note,omitempty"`
	Status    string  `json:"status"`
}

// Terminal reports whether the payout has been resolved; resolved payouts
// never transition again.
func (p Payout) Terminal() bool {
	return p.Status == PayoutApproved || p.Status == PayoutRejected
}
