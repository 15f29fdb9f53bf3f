package models

import "time"

// Series represents a grade level (e.g. "6º Ano") that classes belong to.
type Series struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Level         int       `json:"level"`
	Shift         string    `json:"shift"`
	Year          int       `json:"year"`
	StudentsCount int       `json:"students_count"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
