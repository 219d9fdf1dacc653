package verify

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

var (
	upiRe        = regexp.MustCompile(`.+@.+`)
	cardExpiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
	cvvRe        = regexp.MustCompile(`^\d{3}$`)
	digitsRe     = regexp.MustCompile(`^\d{16}$`)
)

// ValidUPI checks the user@handle shape of a UPI id.
func ValidUPI(id string) bool {
	return upiRe.MatchString(strings.TrimSpace(id))
}

// ValidCard checks the card fields the mocked payment step collects.
func ValidCard(number, name, expiry, cvv string) bool {
	num := strings.ReplaceAll(number, " ", "")
	return digitsRe.MatchString(num) &&
		len(strings.TrimSpace(name)) >= 2 &&
		cardExpiryRe.MatchString(strings.TrimSpace(expiry)) &&
		cvvRe.MatchString(strings.TrimSpace(cvv))
}

// NewPaymentID mints the mock payment reference used by the payment step.
func NewPaymentID() string {
	return fmt.Sprintf("PAY%d", 100000+rand.Intn(900000))
}
