// models/user.go
package models

import (
	"io"
	"time"
)

// Profession is the professional category chosen in step 2 of the wizard.
type Profession string

const (
	ProfessionStudent      Profession = "Student"
	ProfessionDeveloper    Profession = "Developer"
	ProfessionEntrepreneur Profession = "Entrepreneur"
)

// Valid reports whether p is one of the known professions.
func (p Profession) Valid() bool {
	switch p {
	case ProfessionStudent, ProfessionDeveloper, ProfessionEntrepreneur:
		return true
	}
	return false
}

// SubscriptionPlan is the plan picked in step 3 of the wizard.
type SubscriptionPlan string

const (
	PlanBasic      SubscriptionPlan = "Basic"
	PlanPro        SubscriptionPlan = "Pro"
	PlanEnterprise SubscriptionPlan = "Enterprise"
)

func (p SubscriptionPlan) Valid() bool {
	switch p {
	case PlanBasic, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

// Profile is a persisted user profile. It is written once and never updated.
type Profile struct {
	ID               string           `bson:"id" json:"id"`
	ProfilePhoto     string           `bson:"profilePhoto" json:"profilePhoto"`
	Username         string           `bson:"username" json:"username"`
	DateOfBirth      string           `bson:"dob,omitempty" json:"dob,omitempty"`
	PasswordHash     string           `bson:"passwordHash" json:"-"`
	Profession       Profession       `bson:"profession" json:"profession"`
	CompanyName      string           `bson:"companyName" json:"companyName"`
	AddressLine1     string           `bson:"addressLine1" json:"addressLine1"`
	Country          string           `bson:"country" json:"country"`
	State            string           `bson:"state" json:"state"`
	City             string           `bson:"city" json:"city"`
	SubscriptionPlan SubscriptionPlan `bson:"subscriptionPlan" json:"subscriptionPlan"`
	Newsletter       bool             `bson:"newsletter" json:"newsletter"`
	CreatedAt        time.Time        `bson:"createdAt" json:"createdAt"`
}

// ProfileSubmission is the raw field set received by the server. Newsletter is
// left untyped because form posts carry the text "true" while JSON bodies carry
// a native boolean.
type ProfileSubmission struct {
	Username         string `json:"username" form:"username"`
	DateOfBirth      string `json:"dob" form:"dob"`
	CurrentPassword  string `json:"currentPassword" form:"currentPassword"`
	NewPassword      string `json:"newPassword" form:"newPassword"`
	Profession       string `json:"profession" form:"profession"`
	CompanyName      string `json:"companyName" form:"companyName"`
	AddressLine1     string `json:"addressLine1" form:"addressLine1"`
	Country          string `json:"country" form:"country"`
	State            string `json:"state" form:"state"`
	City             string `json:"city" form:"city"`
	SubscriptionPlan string `json:"subscriptionPlan" form:"subscriptionPlan"`
	Newsletter       any    `json:"newsletter" form:"-"`

	Photo *PhotoBlob `json:"-" form:"-"`
}

// PhotoBlob is an uploaded photo as declared by the client. Size is the
// declared size; the acceptance policy also measures the bytes actually read.
type PhotoBlob struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ProfileCreatedResponse is the body of a successful POST /api/user.
type ProfileCreatedResponse struct {
	Message string  `json:"message"`
	User    Profile `json:"user"`
}
