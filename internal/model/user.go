package model

import "time"

// User is a person known to the calendar, keyed by email
type User struct {
	Email     string    `json:"email"`
	Name      string    `json:"nombre"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// UserRequest is the body of user registry create and update requests
type UserRequest struct {
	Email string `json:"email"`
	Name  string `json:"nombre"`
}
