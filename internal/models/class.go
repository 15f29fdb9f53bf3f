package models

import "time"

// Class represents a group of students inside a series.
type Class struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	SeriesID      string    `json:"series_id"`
	Subject       string    `json:"subject"`
	TeacherName   string    `json:"teacher_name"`
	StudentsCount int       `json:"students_count"`
	Year          int       `json:"year"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
