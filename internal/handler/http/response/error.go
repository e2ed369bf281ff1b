package response

import (
	"errors"
	"net/http"

	"github.com/corehr/corehr-backend-go/internal/domain/employee"
	"github.com/corehr/corehr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrInvalidEmail):
		BadRequest(w, "Email is not a valid address", nil)
	case errors.Is(err, employee.ErrEmptyName):
		BadRequest(w, "First and last name must not be empty", nil)
	case errors.Is(err, employee.ErrInvalidJobID):
		BadRequest(w, "Job id is not a known job code", nil)
	case errors.Is(err, employee.ErrSalaryOutOfRange):
		BadRequest(w, "Salary must be between 0 and 1000000", nil)
	case errors.Is(err, employee.ErrPercentageRequired):
		BadRequest(w, "Percentage is required", nil)
	case errors.Is(err, employee.ErrPercentageOutOfRange):
		BadRequest(w, "Percentage must be between -100 and 100", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
