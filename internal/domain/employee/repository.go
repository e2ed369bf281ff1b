package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

type EmployeeRepository interface {
	// GetAll returns every employee ordered by id ascending, via the
	// get_all_employees database function.
	GetAll(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, id int64, emp Employee) (Employee, error)
	Delete(ctx context.Context, id int64) error

	// IncrementSalaries applies a relative percentage to every employee with
	// a positive salary and returns the affected rows with old and new values.
	IncrementSalaries(ctx context.Context, percentage decimal.Decimal) ([]SalaryAdjustment, error)

	// UpdateAllSalaries is the bounded variant: the database function rejects
	// percentages whose absolute value exceeds 100 and reports only the
	// affected row count.
	UpdateAllSalaries(ctx context.Context, percentage decimal.Decimal) (int64, error)
}
