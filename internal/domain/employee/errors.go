package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmailExists          = errors.New("email already registered")
	ErrInvalidEmail         = errors.New("email is not a valid address")
	ErrEmptyName            = errors.New("first and last name must not be empty")
	ErrInvalidJobID         = errors.New("job id is not a known job code")
	ErrSalaryOutOfRange     = errors.New("salary must be between 0 and 1000000")
	ErrPercentageRequired   = errors.New("percentage is required")
	ErrPercentageOutOfRange = errors.New("percentage must be between -100 and 100")
)
