package models

// NewsletterPayload is the task payload for enrolling a new profile in the newsletter.
type NewsletterPayload struct {
	ProfileID string `json:"profileId"`
	Username  string `json:"username"`
	Plan      string `json:"plan"`
}
