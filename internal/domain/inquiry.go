package domain

import "time"

// Inquiry is a collaboration request sent through the contact form.
type Inquiry struct {
	ID            string
	Name          string
	Email         string
	Phone         string // optional
	Establishment string
	Message       string
	CreatedAt     time.Time
}
