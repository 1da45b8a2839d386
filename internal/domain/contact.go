package domain

import "time"

// ContactMessage is a booking enquiry sent from the landing page.
// Either Email or Phone must be present.
type ContactMessage struct {
	Name       string    `json:"name" validate:"required,max=120"`
	Email      string    `json:"email" validate:"required_without=Phone,omitempty,email,max=254"`
	Phone      string    `json:"phone" validate:"required_without=Email,omitempty,min=6,max=32"`
	Category   string    `json:"category" validate:"omitempty,max=64"`
	Message    string    `json:"message" validate:"required,max=4000"`
	ReceivedAt time.Time `json:"received_at"`
}
