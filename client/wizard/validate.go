package wizard

import (
	"time"
	"unicode/utf8"

	"profilewizard/models"
)

const dateLayout = "2006-01-02"

// validateStep checks the fields owned by step, in form order.
func validateStep(step int, d *Draft, now time.Time) error {
	switch step {
	case 1:
		return validatePersonal(d, now)
	case 2:
		return validateProfessional(d)
	case 3:
		return validatePreferences(d)
	}
	return nil
}

func validatePersonal(d *Draft, now time.Time) error {
	if n := utf8.RuneCountInString(d.Username); n < 4 || n > 20 {
		return &FieldError{Field: FieldUsername, Reason: "must be between 4 and 20 characters"}
	}
	if d.DateOfBirth == "" {
		return &FieldError{Field: FieldDateOfBirth, Reason: "is required"}
	}
	dob, err := time.Parse(dateLayout, d.DateOfBirth)
	if err != nil {
		return &FieldError{Field: FieldDateOfBirth, Reason: "must be a date in YYYY-MM-DD form"}
	}
	today, _ := time.Parse(dateLayout, now.Format(dateLayout))
	if dob.After(today) {
		return &FieldError{Field: FieldDateOfBirth, Reason: "must not be in the future"}
	}
	if !AcceptPassword(d.NewPassword) {
		return &FieldError{
			Field:  FieldNewPassword,
			Reason: "must be at least 8 characters with a number and one of !@#$%^&*",
		}
	}
	return nil
}

func validateProfessional(d *Draft) error {
	prof := models.Profession(d.Profession)
	if !prof.Valid() {
		return &FieldError{Field: FieldProfession, Reason: "must be Student, Developer or Entrepreneur"}
	}
	if prof == models.ProfessionEntrepreneur && d.CompanyName == "" {
		return &FieldError{Field: FieldCompanyName, Reason: "is required"}
	}
	if d.AddressLine1 == "" {
		return &FieldError{Field: FieldAddressLine1, Reason: "is required"}
	}
	return nil
}

func validatePreferences(d *Draft) error {
	for _, f := range []struct {
		name  Field
		value string
	}{
		{FieldCountry, d.Country},
		{FieldState, d.State},
		{FieldCity, d.City},
	} {
		if f.value == "" {
			return &FieldError{Field: f.name, Reason: "is required"}
		}
	}
	if !models.SubscriptionPlan(d.SubscriptionPlan).Valid() {
		return &FieldError{Field: FieldSubscriptionPlan, Reason: "must be Basic, Pro or Enterprise"}
	}
	return nil
}
