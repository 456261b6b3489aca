package models

import "time"

// ContactMessage is a message submitted through the contact form. Phone is
// optional; when present it must carry at least ten digits.
type ContactMessage struct {
	Name      string    `json:"name" validate:"required,min=2,max=100"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject" validate:"required,max=200"`
	Message   string    `json:"message" validate:"required,max=5000"`
	CreatedAt time.Time `json:"created_at"`
}
