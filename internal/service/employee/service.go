package employee

import (
	"context"
	"log/slog"

	"github.com/corehr/corehr-backend-go/internal/domain/employee"
	"github.com/corehr/corehr-backend-go/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(db *database.DB, employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp))
	}

	return responses, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, req.ToEntity())
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.Update(ctx, id, req.ToEntity())
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id int64) error {
	return s.employeeRepo.Delete(ctx, id)
}

// IncrementSalaries implements employee.EmployeeService. Range checking is
// left to the database function; only presence is validated here.
func (s *EmployeeServiceImpl) IncrementSalaries(ctx context.Context, req employee.AdjustSalariesRequest) ([]employee.SalaryAdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	adjustments, err := s.employeeRepo.IncrementSalaries(ctx, *req.Percentage)
	if err != nil {
		return nil, err
	}

	slog.Info("applied salary increment", "percentage", req.Percentage.String(), "affected_rows", len(adjustments))

	responses := make([]employee.SalaryAdjustmentResponse, 0, len(adjustments))
	for _, adj := range adjustments {
		responses = append(responses, employee.NewSalaryAdjustmentResponse(adj))
	}

	return responses, nil
}

// UpdateAllSalaries implements employee.EmployeeService. The ±100 bound is
// enforced by the database function and surfaces as ErrPercentageOutOfRange.
func (s *EmployeeServiceImpl) UpdateAllSalaries(ctx context.Context, req employee.AdjustSalariesRequest) (employee.BulkSalaryUpdateResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.BulkSalaryUpdateResponse{}, err
	}

	affected, err := s.employeeRepo.UpdateAllSalaries(ctx, *req.Percentage)
	if err != nil {
		return employee.BulkSalaryUpdateResponse{}, err
	}

	slog.Info("applied bulk salary update", "percentage", req.Percentage.String(), "affected_rows", affected)

	return employee.BulkSalaryUpdateResponse{AffectedRows: affected}, nil
}
