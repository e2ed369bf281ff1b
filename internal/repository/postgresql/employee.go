package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/corehr/corehr-backend-go/internal/domain/employee"
	"github.com/corehr/corehr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetAll implements employee.EmployeeRepository. It goes through the
// get_all_employees function so the ordering contract lives in one place.
func (e *employeeRepositoryImpl) GetAll(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT employee_id, first_name, last_name, email, phone_number, job_id, salary
		FROM get_all_employees()
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email,
			&emp.PhoneNumber, &emp.JobID, &emp.Salary,
		)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT employee_id, first_name, last_name, email, phone_number, job_id, salary, created_at, updated_at
		FROM employees
		WHERE employee_id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.PhoneNumber, &emp.JobID, &emp.Salary, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %d: %w", id, err)
	}

	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (first_name, last_name, email, phone_number, job_id, salary)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING employee_id, first_name, last_name, email, phone_number, job_id, salary, created_at, updated_at
	`

	var created employee.Employee
	err := q.QueryRow(ctx, query,
		newEmployee.FirstName, newEmployee.LastName, newEmployee.Email,
		newEmployee.PhoneNumber, newEmployee.JobID, newEmployee.Salary,
	).Scan(
		&created.ID, &created.FirstName, &created.LastName, &created.Email,
		&created.PhoneNumber, &created.JobID, &created.Salary, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, mapEmployeeError(err)
	}

	return created, nil
}

// Update implements employee.EmployeeRepository. updated_at is refreshed by
// the employees_set_updated_at trigger, never set here.
func (e *employeeRepositoryImpl) Update(ctx context.Context, id int64, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET first_name = $1, last_name = $2, email = $3, phone_number = $4, job_id = $5, salary = $6
		WHERE employee_id = $7
		RETURNING employee_id, first_name, last_name, email, phone_number, job_id, salary, created_at, updated_at
	`

	var updated employee.Employee
	err := q.QueryRow(ctx, query,
		emp.FirstName, emp.LastName, emp.Email, emp.PhoneNumber, emp.JobID, emp.Salary, id,
	).Scan(
		&updated.ID, &updated.FirstName, &updated.LastName, &updated.Email,
		&updated.PhoneNumber, &updated.JobID, &updated.Salary, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, mapEmployeeError(err)
	}

	return updated, nil
}

// Delete implements employee.EmployeeRepository. Rows are hard deleted.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE employee_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// IncrementSalaries implements employee.EmployeeRepository. The whole
// adjustment is a single statement inside the database function, so a
// failure leaves every salary untouched.
func (e *employeeRepositoryImpl) IncrementSalaries(ctx context.Context, percentage decimal.Decimal) ([]employee.SalaryAdjustment, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT employee_id, first_name, last_name, email, phone_number, job_id, old_salary, new_salary
		FROM increment_salary_by_percentage($1)
	`

	rows, err := q.Query(ctx, query, percentage)
	if err != nil {
		return nil, mapEmployeeError(err)
	}
	defer rows.Close()

	var adjustments []employee.SalaryAdjustment
	for rows.Next() {
		var adj employee.SalaryAdjustment
		err := rows.Scan(
			&adj.EmployeeID, &adj.FirstName, &adj.LastName, &adj.Email,
			&adj.PhoneNumber, &adj.JobID, &adj.OldSalary, &adj.NewSalary,
		)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, adj)
	}

	if err = rows.Err(); err != nil {
		return nil, mapEmployeeError(err)
	}

	return adjustments, nil
}

// UpdateAllSalaries implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateAllSalaries(ctx context.Context, percentage decimal.Decimal) (int64, error) {
	q := GetQuerier(ctx, e.db)

	var affected int64
	err := q.QueryRow(ctx, `SELECT update_all_salaries_by_percentage($1)`, percentage).Scan(&affected)
	if err != nil {
		return 0, mapEmployeeError(err)
	}

	return affected, nil
}
