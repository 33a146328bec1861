package domain

import "time"

// Employee is the core aggregate managed by the API.
// ID is assigned by the store on create and never taken from client input.
type Employee struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Department    string    `json:"department"`
	Email         string    `json:"email"`
	DateOfJoining time.Time `json:"dateOfJoining"`
	JobTitle      string    `json:"jobTitle"`
	Salary        float64   `json:"salary"`
	IsActive      bool      `json:"isActive"`
}
