package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
)

// Default region for parsing customer phone numbers.
var CountryCode = defaultCountryCode()

func defaultCountryCode() string {
	if cc := os.Getenv("DEFAULT_REGION"); cc != "" {
		return cc
	}
	return "MM"
}

// BusinessDateLayout is the calendar-day format the boutique uses for event
// and delivery dates. These are local business dates, no timezone arithmetic.
const BusinessDateLayout = "2006-01-02"

// ParseBusinessDate parses a YYYY-MM-DD business date string.
func ParseBusinessDate(s string) (time.Time, error) {
	return time.Parse(BusinessDateLayout, s)
}

func ValidatePhoneNumber(phoneNumber, countryCode string) error {
	p, err := libphonenumber.Parse(phoneNumber, countryCode)
	if err != nil {
		return err // Phone number is invalid
	}

	if !libphonenumber.IsValidNumber(p) {
		return fmt.Errorf("phone number is not valid")
	}

	return nil // Phone number is valid for the specified country code
}

func ProcessValidationErrors(err error) map[string]string {

	validationErrors := err.(validator.ValidationErrors)

	errorResponse := make(map[string]string)

	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}

	return errorResponse
}

func NewTrue() *bool {
	b := true
	return &b
}
