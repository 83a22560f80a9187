package profile

import "profilewizard/models"

// requiredFields lists the fields checked by validate, in report order.
var requiredFields = []struct {
	name  string
	value func(*models.ProfileSubmission) string
}{
	{"username", func(s *models.ProfileSubmission) string { return s.Username }},
	{"newPassword", func(s *models.ProfileSubmission) string { return s.NewPassword }},
	{"profession", func(s *models.ProfileSubmission) string { return s.Profession }},
	{"addressLine1", func(s *models.ProfileSubmission) string { return s.AddressLine1 }},
	{"country", func(s *models.ProfileSubmission) string { return s.Country }},
	{"state", func(s *models.ProfileSubmission) string { return s.State }},
	{"city", func(s *models.ProfileSubmission) string { return s.City }},
	{"subscriptionPlan", func(s *models.ProfileSubmission) string { return s.SubscriptionPlan }},
}

// validate returns a *ValidationError for the first empty required field.
func validate(sub *models.ProfileSubmission) error {
	for _, f := range requiredFields {
		if f.value(sub) == "" {
			return &ValidationError{Field: f.name}
		}
	}
	return nil
}

// companyNameFor keeps the company name only for entrepreneurs.
func companyNameFor(profession, companyName string) string {
	if models.Profession(profession) != models.ProfessionEntrepreneur {
		return ""
	}
	return companyName
}

// parseNewsletter accepts a native true or the literal text "true"; anything
// else is false.
func parseNewsletter(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	default:
		return false
	}
}
