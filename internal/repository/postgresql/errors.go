package postgresql

import (
	"errors"

	"github.com/corehr/corehr-backend-go/internal/domain/employee"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes surfaced by the schema constraints and the salary functions.
const (
	codeNumericOutOfRange   = "22003"
	codeNullValueNotAllowed = "22004"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// mapEmployeeError translates constraint violations and RAISEd exceptions
// into domain errors. Anything unrecognized is returned unchanged.
func mapEmployeeError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		if pgErr.ConstraintName == "employees_email_key" {
			return employee.ErrEmailExists
		}
	case codeCheckViolation:
		switch pgErr.ConstraintName {
		case "employees_email_check":
			return employee.ErrInvalidEmail
		case "employees_first_name_check", "employees_last_name_check":
			return employee.ErrEmptyName
		case "employees_job_id_check":
			return employee.ErrInvalidJobID
		case "employees_salary_check":
			return employee.ErrSalaryOutOfRange
		}
	case codeNullValueNotAllowed:
		return employee.ErrPercentageRequired
	case codeNumericOutOfRange:
		// 22003 is also PostgreSQL's generic numeric field overflow, raised
		// when a salary no longer fits NUMERIC(8,2). Only the percentage
		// guard in update_all_salaries_by_percentage tags its raise with a
		// constraint name.
		if pgErr.ConstraintName == "percentage_out_of_range" {
			return employee.ErrPercentageOutOfRange
		}
		return employee.ErrSalaryOutOfRange
	}

	return err
}
