package handler

import (
	"encoding/json"
	"fmt"
	"time"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// employeeRequest is the body of POST /employees and PUT /employees/:id.
// Pointers distinguish a missing field from its zero value.
type employeeRequest struct {
	Name          string   `json:"name"          validate:"required,min=2,max=100"`
	Department    string   `json:"department"    validate:"required,max=50"`
	Email         string   `json:"email"         validate:"required,email"`
	DateOfJoining *date    `json:"dateOfJoining" validate:"required" swaggertype:"string" format:"date" example:"2020-01-15"`
	JobTitle      string   `json:"jobTitle"      validate:"required,max=100"`
	Salary        *float64 `json:"salary"        validate:"required,gte=0"`
	IsActive      bool     `json:"isActive"`
}

// date accepts a calendar date ("2020-01-15") or an RFC 3339 timestamp.
type date struct {
	time.Time
}

var dateLayouts = []string{time.DateOnly, time.RFC3339Nano}

func (d *date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("date %q is neither YYYY-MM-DD nor RFC 3339", s)
}

type employeeResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Department    string    `json:"department"`
	Email         string    `json:"email"`
	DateOfJoining time.Time `json:"dateOfJoining"`
	JobTitle      string    `json:"jobTitle"`
	Salary        float64   `json:"salary"`
	IsActive      bool      `json:"isActive"`
}
