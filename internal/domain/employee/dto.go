package employee

import (
	"time"

	"github.com/corehr/corehr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	PhoneNumber *string         `json:"phone_number,omitempty"`
	JobID       string          `json:"job_id"`
	Salary      decimal.Decimal `json:"salary"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "must not be empty"})
	} else if len(r.FirstName) > 50 {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "must be at most 50 characters"})
	}

	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "must not be empty"})
	} else if len(r.LastName) > 50 {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "must be at most 50 characters"})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	} else if len(r.Email) > 100 {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be at most 100 characters"})
	}

	if r.PhoneNumber != nil {
		if len(*r.PhoneNumber) > 20 {
			errs = append(errs, validator.ValidationError{Field: "phone_number", Message: "must be at most 20 characters"})
		} else if !validator.IsValidPhoneNumber(*r.PhoneNumber) {
			errs = append(errs, validator.ValidationError{Field: "phone_number", Message: "must be a valid phone number"})
		}
	}

	if !IsValidJobID(JobID(r.JobID)) {
		errs = append(errs, validator.ValidationError{Field: "job_id", Message: "must be a known job code"})
	}

	if r.Salary.IsNegative() || r.Salary.GreaterThan(decimal.NewFromInt(1_000_000)) {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "must be between 0 and 1000000"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r CreateEmployeeRequest) ToEntity() Employee {
	return Employee{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		JobID:       JobID(r.JobID),
		Salary:      r.Salary.Round(2),
	}
}

// UpdateEmployeeRequest replaces every mutable column of an employee.
type UpdateEmployeeRequest struct {
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	PhoneNumber *string         `json:"phone_number,omitempty"`
	JobID       string          `json:"job_id"`
	Salary      decimal.Decimal `json:"salary"`
}

func (r UpdateEmployeeRequest) Validate() error {
	return CreateEmployeeRequest(r).Validate()
}

func (r UpdateEmployeeRequest) ToEntity() Employee {
	return CreateEmployeeRequest(r).ToEntity()
}

// AdjustSalariesRequest carries the percentage for both bulk adjustment
// variants. The pointer distinguishes a missing value from an explicit zero.
type AdjustSalariesRequest struct {
	Percentage *decimal.Decimal `json:"percentage"`
}

func (r AdjustSalariesRequest) Validate() error {
	if r.Percentage == nil {
		return ErrPercentageRequired
	}
	return nil
}

type EmployeeResponse struct {
	ID          int64           `json:"employee_id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	PhoneNumber *string         `json:"phone_number,omitempty"`
	JobID       string          `json:"job_id"`
	Salary      decimal.Decimal `json:"salary"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func NewEmployeeResponse(emp Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:          emp.ID,
		FirstName:   emp.FirstName,
		LastName:    emp.LastName,
		Email:       emp.Email,
		PhoneNumber: emp.PhoneNumber,
		JobID:       string(emp.JobID),
		Salary:      emp.Salary,
	}
	if !emp.CreatedAt.IsZero() {
		createdAt := emp.CreatedAt
		resp.CreatedAt = &createdAt
	}
	if !emp.UpdatedAt.IsZero() {
		updatedAt := emp.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

type SalaryAdjustmentResponse struct {
	EmployeeID  int64           `json:"employee_id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	PhoneNumber *string         `json:"phone_number,omitempty"`
	JobID       string          `json:"job_id"`
	OldSalary   decimal.Decimal `json:"old_salary"`
	NewSalary   decimal.Decimal `json:"new_salary"`
}

func NewSalaryAdjustmentResponse(adj SalaryAdjustment) SalaryAdjustmentResponse {
	return SalaryAdjustmentResponse{
		EmployeeID:  adj.EmployeeID,
		FirstName:   adj.FirstName,
		LastName:    adj.LastName,
		Email:       adj.Email,
		PhoneNumber: adj.PhoneNumber,
		JobID:       string(adj.JobID),
		OldSalary:   adj.OldSalary,
		NewSalary:   adj.NewSalary,
	}
}

type BulkSalaryUpdateResponse struct {
	AffectedRows int64 `json:"affected_rows"`
}
