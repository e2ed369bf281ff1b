package fixtures

import (
	"context"
	"fmt"

	"github.com/corehr/corehr-backend-go/internal/domain/employee"
	"github.com/corehr/corehr-backend-go/internal/pkg/database"
	"github.com/corehr/corehr-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

// DefaultEmployees returns the canonical seed roster used for development
// databases and integration tests.
func DefaultEmployees() []employee.Employee {
	return []employee.Employee{
		{
			FirstName:   "Steven",
			LastName:    "King",
			Email:       "steven.king@corehr.example",
			PhoneNumber: strPtr("515-123-4567"),
			JobID:       employee.JobProgrammer,
			Salary:      decimal.NewFromInt(75000),
		},
		{
			FirstName:   "Neena",
			LastName:    "Kochhar",
			Email:       "neena.kochhar@corehr.example",
			PhoneNumber: strPtr("515-123-4568"),
			JobID:       employee.JobAccountant,
			Salary:      decimal.NewFromInt(65000),
		},
		{
			FirstName:   "Lex",
			LastName:    "De Haan",
			Email:       "lex.dehaan@corehr.example",
			PhoneNumber: strPtr("515-123-4569"),
			JobID:       employee.JobVicePresident,
			Salary:      decimal.NewFromInt(85000),
		},
		{
			FirstName:   "Alexander",
			LastName:    "Hunold",
			Email:       "alexander.hunold@corehr.example",
			PhoneNumber: nil,
			JobID:       employee.JobProgrammer,
			Salary:      decimal.NewFromInt(70000),
		},
		{
			FirstName:   "Bruce",
			LastName:    "Ernst",
			Email:       "bruce.ernst@corehr.example",
			PhoneNumber: strPtr("590-423-4568"),
			JobID:       employee.JobSalesRep,
			Salary:      decimal.NewFromInt(60000),
		},
	}
}

// SeedEmployees inserts the default roster in a single transaction. Rows are
// only created when the table is empty, so re-running is harmless.
func SeedEmployees(ctx context.Context, db *database.DB, repo employee.EmployeeRepository) error {
	return postgresql.WithTransaction(ctx, db, func(txCtx context.Context) error {
		existing, err := repo.GetAll(txCtx)
		if err != nil {
			return fmt.Errorf("checking existing employees: %w", err)
		}
		if len(existing) > 0 {
			return nil
		}

		for _, emp := range DefaultEmployees() {
			if _, err := repo.Create(txCtx, emp); err != nil {
				return fmt.Errorf("seeding employee %s: %w", emp.Email, err)
			}
		}
		return nil
	})
}
