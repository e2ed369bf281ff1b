package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID          int64
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber *string
	JobID       JobID
	Salary      decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JobID categorizes an employee's role. The set is fixed by a schema
// check constraint; the same list is validated here before hitting storage.
type JobID string

const (
	JobPresident     JobID = "AD_PRES"
	JobVicePresident JobID = "AD_VP"
	JobProgrammer    JobID = "IT_PROG"
	JobAccountant    JobID = "FI_ACCOUNT"
	JobSalesRep      JobID = "SA_REP"
	JobStockClerk    JobID = "ST_CLERK"
	JobMarketingRep  JobID = "MK_REP"
	JobHRRep         JobID = "HR_REP"
)

func JobIDs() []JobID {
	return []JobID{
		JobPresident,
		JobVicePresident,
		JobProgrammer,
		JobAccountant,
		JobSalesRep,
		JobStockClerk,
		JobMarketingRep,
		JobHRRep,
	}
}

func IsValidJobID(id JobID) bool {
	for _, known := range JobIDs() {
		if id == known {
			return true
		}
	}
	return false
}

// SalaryAdjustment is one row returned by the bulk percentage adjustment:
// the employee plus their salary before and after the update.
type SalaryAdjustment struct {
	EmployeeID  int64
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber *string
	JobID       JobID
	OldSalary   decimal.Decimal
	NewSalary   decimal.Decimal
}
