package note

import "time"

const DefaultCategory = "general"

// Note is a free-text annotation on an employee. Notes are never edited.
type Note struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Content    string    `json:"content"`
	Date       time.Time `json:"date"`
	Category   string    `json:"category"`
}
