package wizard

import (
	"fmt"
	"strconv"
)

// Field names a draft field. The values match the form field names the
// server expects.
type Field string

const (
	FieldUsername         Field = "username"
	FieldDateOfBirth      Field = "dob"
	FieldCurrentPassword  Field = "currentPassword"
	FieldNewPassword      Field = "newPassword"
	FieldProfession       Field = "profession"
	FieldCompanyName      Field = "companyName"
	FieldAddressLine1     Field = "addressLine1"
	FieldCountry          Field = "country"
	FieldState            Field = "state"
	FieldCity             Field = "city"
	FieldSubscriptionPlan Field = "subscriptionPlan"
	FieldNewsletter       Field = "newsletter"
)

// PhotoRef points at a photo on local disk chosen by the user. It is not
// read or checked until submission.
type PhotoRef struct {
	Path        string
	Filename    string
	ContentType string
	Size        int64
}

// Draft is the profile being collected by the wizard.
type Draft struct {
	Photo            *PhotoRef
	Username         string
	DateOfBirth      string
	CurrentPassword  string
	NewPassword      string
	Profession       string
	CompanyName      string
	AddressLine1     string
	Country          string
	State            string
	City             string
	SubscriptionPlan string
	Newsletter       bool
}

// NewDraft returns an empty draft with the wizard defaults.
func NewDraft() Draft {
	return Draft{SubscriptionPlan: "Basic", Newsletter: true}
}

func (d *Draft) field(f Field) (*string, bool) {
	switch f {
	case FieldUsername:
		return &d.Username, true
	case FieldDateOfBirth:
		return &d.DateOfBirth, true
	case FieldCurrentPassword:
		return &d.CurrentPassword, true
	case FieldNewPassword:
		return &d.NewPassword, true
	case FieldProfession:
		return &d.Profession, true
	case FieldCompanyName:
		return &d.CompanyName, true
	case FieldAddressLine1:
		return &d.AddressLine1, true
	case FieldCountry:
		return &d.Country, true
	case FieldState:
		return &d.State, true
	case FieldCity:
		return &d.City, true
	case FieldSubscriptionPlan:
		return &d.SubscriptionPlan, true
	}
	return nil, false
}

// set stores an already sanitized value.
func (d *Draft) set(f Field, value string) error {
	if f == FieldNewsletter {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &FieldError{Field: f, Reason: "must be true or false"}
		}
		d.Newsletter = b
		return nil
	}
	p, ok := d.field(f)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	*p = value
	return nil
}

// clear empties a text field. Unknown fields are ignored.
func (d *Draft) clear(f Field) {
	if p, ok := d.field(f); ok {
		*p = ""
	}
}
