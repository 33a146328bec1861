package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/empmanagement/employee-api/internal/api/metrics"
	"github.com/empmanagement/employee-api/internal/core/domain"
	"github.com/empmanagement/employee-api/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for employee records.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// List handles GET /employees.
//
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   employeeResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	items, err := h.service.GetAll(c.Request().Context())
	return h.respondList(c, "list", items, err)
}

// Get handles GET /employees/:id.
//
// @Summary      Get an employee by id
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  employeeResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	e, found, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		observe("get", err)
		return err
	}
	if !found {
		metrics.EmployeeOperationsTotal.WithLabelValues("get", "not_found").Inc()
		return domain.ErrEmployeeNotFound
	}

	observe("get", nil)
	return c.JSON(http.StatusOK, toEmployeeResponse(e))
}

// Create handles POST /employees.
//
// @Summary      Create an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      employeeRequest  true  "Employee details"
// @Success      201   {object}  employeeResponse
// @Header       201   {string}  Location  "/employees/{id}"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	req, err := bindEmployee(c)
	if err != nil {
		observe("create", err)
		return err
	}

	created, err := h.service.Add(c.Request().Context(), toEmployee("", req))
	if err != nil {
		observe("create", err)
		return err
	}

	observe("create", nil)
	c.Response().Header().Set(echo.HeaderLocation, "/employees/"+created.ID)
	return c.JSON(http.StatusCreated, toEmployeeResponse(created))
}

// Update handles PUT /employees/:id.
//
// @Summary      Replace an employee
// @Tags         employees
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string           true  "Employee id"
// @Param        body  body  employeeRequest  true  "Employee details"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	req, err := bindEmployee(c)
	if err != nil {
		observe("update", err)
		return err
	}

	matched, err := h.service.Update(c.Request().Context(), toEmployee(c.Param("id"), req))
	if err != nil {
		observe("update", err)
		return err
	}
	if !matched {
		metrics.EmployeeOperationsTotal.WithLabelValues("update", "not_found").Inc()
		return domain.ErrEmployeeNotFound
	}

	observe("update", nil)
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /employees/:id.
//
// @Summary      Delete an employee
// @Tags         employees
// @Security     BearerAuth
// @Param        id   path  string  true  "Employee id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	deleted, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		observe("delete", err)
		return err
	}
	if !deleted {
		metrics.EmployeeOperationsTotal.WithLabelValues("delete", "not_found").Inc()
		return domain.ErrEmployeeNotFound
	}

	observe("delete", nil)
	return c.NoContent(http.StatusNoContent)
}

// Inactive handles GET /employees/inactive.
//
// @Summary      List inactive employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   employeeResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /employees/inactive [get]
func (h *EmployeeHandler) Inactive(c echo.Context) error {
	items, err := h.service.GetInactive(c.Request().Context())
	return h.respondList(c, "inactive", items, err)
}

// ByDepartment handles GET /employees/department/:department.
//
// @Summary      List employees of a department
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        department  path      string  true  "Department name (exact match)"
// @Success      200         {array}   employeeResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Failure      500         {object}  errorResponse
// @Router       /employees/department/{department} [get]
func (h *EmployeeHandler) ByDepartment(c echo.Context) error {
	items, err := h.service.GetByDepartment(c.Request().Context(), c.Param("department"))
	return h.respondList(c, "by_department", items, err)
}

// BySalary handles GET /employees/salary.
//
// includeEqual=true selects salaries strictly above the threshold;
// includeEqual=false (the default) selects salaries at or below it.
//
// @Summary      List employees by salary threshold
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        threshold     query     number   true   "Salary threshold"
// @Param        includeEqual  query     boolean  false  "true: salary > threshold, false: salary <= threshold"
// @Success      200           {array}   employeeResponse
// @Failure      400           {object}  errorResponse
// @Failure      401           {object}  errorResponse
// @Failure      500           {object}  errorResponse
// @Router       /employees/salary [get]
func (h *EmployeeHandler) BySalary(c echo.Context) error {
	threshold, err := strconv.ParseFloat(c.QueryParam("threshold"), 64)
	if err != nil {
		err = fmt.Errorf("%w: threshold must be a number", domain.ErrInvalidArgument)
		observe("by_salary", err)
		return err
	}

	includeEqual := false
	if raw := c.QueryParam("includeEqual"); raw != "" {
		if includeEqual, err = strconv.ParseBool(raw); err != nil {
			err = fmt.Errorf("%w: includeEqual must be a boolean", domain.ErrInvalidArgument)
			observe("by_salary", err)
			return err
		}
	}

	items, err := h.service.GetBySalary(c.Request().Context(), threshold, includeEqual)
	return h.respondList(c, "by_salary", items, err)
}

// ByName handles GET /employees/search.
//
// @Summary      Search employees by name
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        name  query     string  true  "Case-insensitive substring of the name"
// @Success      200   {array}   employeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /employees/search [get]
func (h *EmployeeHandler) ByName(c echo.Context) error {
	items, err := h.service.GetByName(c.Request().Context(), c.QueryParam("name"))
	return h.respondList(c, "by_name", items, err)
}

func (h *EmployeeHandler) respondList(c echo.Context, op string, items []domain.Employee, err error) error {
	observe(op, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeList(items))
}

// bindEmployee decodes and validates the request body. A missing or null
// body fails validation.
func bindEmployee(c echo.Context) (employeeRequest, error) {
	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return req, fmt.Errorf("%w: invalid payload", domain.ErrInvalidArgument)
	}
	if err := c.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}

// observe counts an employee operation by its outcome.
func observe(op string, err error) {
	metrics.EmployeeOperationsTotal.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidArgument):
		return "invalid"
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return "not_found"
	default:
		return "error"
	}
}
