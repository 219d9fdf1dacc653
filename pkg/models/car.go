package models

type Car struct {
	ID           ID      `json:"id"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	Type         string  `json:"type"`
	City         string  `json:"city"`
	Seats        int     `json:"seats"`
	Fuel         string  `json:"fuel"`
	Transmission string  `json:"transmission"`
	PricePerDay  float64 `json:"pricePerDay"`
	Rating       float64 `json:"rating"`
	Image        string  `json:"image"`
	HostID       ID      `json:"hostId,omitempty"`
	Available    bool    `json:"available"`

	// AvailableForRange is derived from a date-range availability query and
	// never persisted; nil means unknown for the current range.
	AvailableForRange *bool `json:"availableForRange,omitempty"`

	// Host details are resolved by the admin catalog refresh; absent for
	// cars whose host lookup failed.
	Host         *HostInfo `json:"host,omitempty"`
	HostEmail    string    `json:"hostEmail,omitempty"`
	HostFullName string    `json:"hostFullName,omitempty"`
}

type HostInfo struct {
	ID       ID     `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Mobile   string `json:"mobile"`
}

// CarFilter narrows an in-memory car list. Zero values mean "no constraint"
// except MaxPrice, which is ignored only when zero.
type CarFilter struct {
	City         string
	Search       string
	Type         string
	Transmission string
	Fuel         string
	MinPrice     float64
	MaxPrice     float64
}

const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortNewest    = "newest"
)
