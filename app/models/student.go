package models

import "time"

// Student is a pupil enrolled at the school.
type Student struct {
	ID              string     `json:"id" validate:"required,uuid"`
	AdmissionNumber string     `json:"admissionNumber" validate:"required"`
	FirstName       string     `json:"firstName" validate:"required"`
	LastName        string     `json:"lastName"`
	IsActive        bool       `json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	DeletedAt       *time.Time `json:"deletedAt,omitempty"`
}

// StudentRef is the read-only copy of student identity carried on a fee
// record for display. The student itself is owned by the students table.
type StudentRef struct {
	ID              string `json:"id"`
	AdmissionNumber string `json:"admissionNumber"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
}

// FullName joins first and last name with a single space.
func (s StudentRef) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
