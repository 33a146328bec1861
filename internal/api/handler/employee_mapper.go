package handler

import "github.com/empmanagement/employee-api/internal/core/domain"

// --- Request → domain ---

func toEmployee(id string, req employeeRequest) *domain.Employee {
	e := &domain.Employee{
		ID:         id,
		Name:       req.Name,
		Department: req.Department,
		Email:      req.Email,
		JobTitle:   req.JobTitle,
		IsActive:   req.IsActive,
	}
	if req.DateOfJoining != nil {
		e.DateOfJoining = req.DateOfJoining.Time
	}
	if req.Salary != nil {
		e.Salary = *req.Salary
	}
	return e
}

// --- domain → HTTP response ---

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	return employeeResponse{
		ID:            e.ID,
		Name:          e.Name,
		Department:    e.Department,
		Email:         e.Email,
		DateOfJoining: e.DateOfJoining.UTC(),
		JobTitle:      e.JobTitle,
		Salary:        e.Salary,
		IsActive:      e.IsActive,
	}
}

func toEmployeeList(items []domain.Employee) []employeeResponse {
	out := make([]employeeResponse, len(items))
	for i := range items {
		out[i] = toEmployeeResponse(&items[i])
	}
	return out
}
