package user

import "time"

// User is an identity record. Name is optional; Email is unique across the
// store. PasswordHash holds a bcrypt digest and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
