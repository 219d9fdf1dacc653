package models

import (
	"math"
	"time"
)

type Booking struct {
	ID         ID     `json:"id"`
	UserID     ID     `json:"userId,omitempty"`
	CarID      ID     `json:"carId"`
	PickupDate string `json:"pickupDate"`
	ReturnDate string `json:"returnDate"`

	Verification *Verification `json:"verification,omitempty"`
	Payment      *Payment      `json:"payment,omitempty"`

	TotalCost float64 `json:"totalCost"`
	Days      int     `json:"days"`
	Status    string  `json:"status,omitempty"`

	// Admin list view embeds the booking user; the flattened name/email pair
	// is what the back-office tables render.
	User      *UserRef `json:"user,omitempty"`
	UserName  string   `json:"userName,omitempty"`
	UserEmail string   `json:"userEmail,omitempty"`
}

type UserRef struct {
	ID       ID     `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Verification carries the format-checked document fields a renter submits.
// This is format validation only, never an authentication-grade check.
type Verification struct {
	IDType        string `json:"idType"`
	IDNumber      string `json:"idNumber"`
	LicenseNumber string `json:"licenseNumber"`
	LicenseExpiry string `json:"licenseExpiry"`
	IDFront       string `json:"idFront,omitempty"`
	IDBack        string `json:"idBack,omitempty"`
	License       string `json:"license,omitempty"`
}

type Payment struct {
	Method    string `json:"method"`
	PaymentID string `json:"paymentId"`
	UPIID     string `json:"upiId,omitempty"`
	CardLast4 string `json:"cardLast4,omitempty"`
}

// BookingDays counts billable days for a rental range, rounding partial days
// up and never billing less than one day.
func BookingDays(pickup, ret time.Time) int {
	diff := ret.Sub(pickup)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

func TotalCost(days int, pricePerDay float64) float64 {
	return float64(days) * pricePerDay
}
