package models

import "time"

// UserProfile is the registration record kept for every contact, mirroring
// the intake form fields collected during onboarding.
type UserProfile struct {
	ID              string    `bson:"id" json:"id"`
	FullName        string    `bson:"fullName" json:"fullName"`
	Email           string    `bson:"email" json:"email"`
	Phone           string    `bson:"phone" json:"phone"`
	ServiceInterest string    `bson:"serviceInterest" json:"serviceInterest"`
	Comment         string    `bson:"comment" json:"comment"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}
