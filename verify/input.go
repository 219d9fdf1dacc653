package verify

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ContactInput is the contact-form payload checked before submission.
type ContactInput struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Message string `validate:"required"`
}

// PayoutInput is the host payout request checked before submission.
type PayoutInput struct {
	BookingID string  `validate:"required"`
	Amount    float64 `validate:"required,gt=0"`
}

// Struct validates a tagged input struct.
func Struct(v interface{}) error {
	return validate.Struct(v)
}

var (
	errMissingDates    = errors.New("pickup and return dates are required")
	errDateOrder       = errors.New("return date must be after pickup date")
	errUnparsableDates = errors.New("dates must be YYYY-MM-DD")
)

// BookingDates checks that both dates are present, parseable and ordered.
// Cheap pre-network validation; the server stays authoritative.
func BookingDates(pickup, ret string) error {
	if pickup == "" || ret == "" {
		return errMissingDates
	}
	p, err := time.Parse("2006-01-02", pickup)
	if err != nil {
		return errUnparsableDates
	}
	r, err := time.Parse("2006-01-02", ret)
	if err != nil {
		return errUnparsableDates
	}
	if !r.After(p) {
		return errDateOrder
	}
	return nil
}
