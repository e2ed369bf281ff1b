package employee

import "context"

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// ListEmployees returns every employee ordered by id ascending
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id int64) (EmployeeResponse, error)

	// CreateEmployee creates a new employee record
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee replaces an existing employee record
	UpdateEmployee(ctx context.Context, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee record permanently
	DeleteEmployee(ctx context.Context, id int64) error

	// IncrementSalaries applies a relative percentage to all positive
	// salaries and returns each affected row with old and new values
	IncrementSalaries(ctx context.Context, req AdjustSalariesRequest) ([]SalaryAdjustmentResponse, error)

	// UpdateAllSalaries applies a percentage bounded to ±100 and returns
	// the affected row count
	UpdateAllSalaries(ctx context.Context, req AdjustSalariesRequest) (BulkSalaryUpdateResponse, error)
}
