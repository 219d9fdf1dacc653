// Package verify holds format-only validation helpers for the booking and
// payment flows. These checks mirror what the marketplace UI enforces before
// submission; they are not a security control and must never be treated as
// authentication-grade verification.
package verify

import (
	"regexp"
	"time"

	"gomelclient/pkg/models"
)

const (
	IDTypeAadhaar  = "Aadhaar"
	IDTypePAN      = "PAN"
	IDTypePassport = "Passport"
	IDTypeLicense  = "Driving License"
)

var (
	aadhaarRe  = regexp.MustCompile(`^\d{12}$`)
	panRe      = regexp.MustCompile(`^[A-Z]{5}\d{4}[A-Z]$`)
	passportRe = regexp.MustCompile(`^[A-Z]\d{7}$`)
	dlRe       = regexp.MustCompile(`^[A-Z]{2}\d{2}\d{4}\d{7}$`)
	dlDashRe   = regexp.MustCompile(`^[A-Z]{2}-\d{2}-\d{6,11}$`)
	licenseRe  = regexp.MustCompile(`(?i)[A-Z0-9-]{6,20}`)
)

// ValidGovID checks a government id number against the format for its type.
func ValidGovID(idType, value string) bool {
	switch idType {
	case IDTypeAadhaar:
		return aadhaarRe.MatchString(value)
	case IDTypePAN:
		return panRe.MatchString(value)
	case IDTypePassport:
		return passportRe.MatchString(value)
	case IDTypeLicense:
		return dlRe.MatchString(value) || dlDashRe.MatchString(value)
	default:
		return false
	}
}

// ValidLicense checks a driving license number format and that the expiry
// lies in the future.
func ValidLicense(number string, expiry time.Time) bool {
	if number == "" || expiry.IsZero() {
		return false
	}
	return licenseRe.MatchString(number) && expiry.After(time.Now())
}

// Documents runs the full pre-booking document check and returns the
// human-readable problems, empty when the set passes.
func Documents(v models.Verification) []string {
	var errs []string
	if !ValidGovID(v.IDType, v.IDNumber) {
		errs = append(errs, "Enter a valid "+v.IDType+" number.")
	}
	expiry, err := time.Parse("2006-01-02", v.LicenseExpiry)
	if err != nil || !ValidLicense(v.LicenseNumber, expiry) {
		errs = append(errs, "Enter a valid driving license number and a future expiry date.")
	}
	if v.IDFront == "" || v.License == "" {
		errs = append(errs, "Please upload at least ID front and License image/PDF.")
	}
	return errs
}
