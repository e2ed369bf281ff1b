package postgresql_test

import (
	"context"
	"testing"

	"github.com/corehr/corehr-backend-go/internal/domain/employee"
	"github.com/corehr/corehr-backend-go/internal/fixtures"
	"github.com/corehr/corehr-backend-go/internal/pkg/database"
	"github.com/corehr/corehr-backend-go/internal/pkg/migrate"
	"github.com/corehr/corehr-backend-go/internal/repository/postgresql"
	"github.com/corehr/corehr-backend-go/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

func init() {
	var err error
	testDB, err = NewTestDatabase(context.Background())
	if err != nil {
		panic("failed to set up test database: " + err.Error())
	}
}

func setupEmployees(t *testing.T, ctx context.Context) employee.EmployeeRepository {
	t.Helper()
	require.NoError(t, TruncateEmployees(ctx, testDB))
	repo := postgresql.NewEmployeeRepository(testDB)
	require.NoError(t, fixtures.SeedEmployees(ctx, testDB, repo))
	return repo
}

func salariesByEmail(t *testing.T, ctx context.Context, repo employee.EmployeeRepository) map[string]decimal.Decimal {
	t.Helper()
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	result := make(map[string]decimal.Decimal, len(all))
	for _, emp := range all {
		result[emp.Email] = emp.Salary
	}
	return result
}

// ===== READ PATH =====

func TestEmployeeRepository_GetAll_OrderedAndStable(t *testing.T) {
	ctx := context.Background()
	repo := setupEmployees(t, ctx)

	first, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, first, 5)

	for i := 1; i < len(first); i++ {
		assert.Greater(t, first[i].ID, first[i-1].ID, "ids must ascend")
	}

	// Read-only: a second call returns identical results
	second, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Email, second[i].Email)
		assert.True(t, first[i].Salary.Equal(second[i].Salary))
	}
}

func TestEmployeeRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := setupEmployees(t, ctx)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0].Email, got.Email)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())

	_, err = repo.GetByID(ctx, 999999)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

// ===== WRITE PATH =====

func TestEmployeeRepository_Create_Success(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, TruncateEmployees(ctx, testDB))
	repo := postgresql.NewEmployeeRepository(testDB)

	created, err := repo.Create(ctx, employee.Employee{
		FirstName: "Diana",
		LastName:  "Lorentz",
		Email:     "diana.lorentz@corehr.example",
		JobID:     employee.JobProgrammer,
		Salary:    decimal.RequireFromString("4200.50"),
	})
	require.NoError(t, err)

	assert.Positive(t, created.ID)
	assert.True(t, created.Salary.Equal(decimal.RequireFromString("4200.50")))
	assert.Nil(t, created.PhoneNumber)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestEmployeeRepository_Create_MalformedEmailRejected(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, TruncateEmployees(ctx, testDB))
	repo := postgresql.NewEmployeeRepository(testDB)

	_, err := repo.Create(ctx, employee.Employee{
		FirstName: "No",
		LastName:  "AtSign",
		Email:     "not-an-email",
		JobID:     employee.JobStockClerk,
		Salary:    decimal.NewFromInt(1000),
	})
	assert.ErrorIs(t, err, employee.ErrInvalidEmail)
}

func TestEmployeeRepository_Create_DuplicateEmailRejected(t *testing.T) {
	ctx := context.Background()
	repo := setupEmployees(t, ctx)

	_, err := repo.Create(ctx, employee.Employee{
		FirstName: "Other",
		LastName:  "King",
		Email:     "steven.king@corehr.example",
		JobID:     employee.JobSalesRep,
		Salary:    decimal.NewFromInt(1000),
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestEmployeeRepository_Create_ConstraintViolations(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, TruncateEmployees(ctx, testDB))
	repo := postgresql.NewEmployeeRepository(testDB)

	base := employee.Employee{
		FirstName: "Valid",
		LastName:  "Person",
		Email:     "valid.person@corehr.example",
		JobID:     employee.JobHRRep,
		Salary:    decimal.NewFromInt(1000),
	}

	blankName := base
	blankName.FirstName = "   "
	blankName.Email = "blank.name@corehr.example"
	_, err := repo.Create(ctx, blankName)
	assert.ErrorIs(t, err, employee.ErrEmptyName)

	badJob := base
	badJob.JobID = "XX_NOPE"
	badJob.Email = "bad.job@corehr.example"
	_, err = repo.Create(ctx, badJob)
	assert.ErrorIs(t, err, employee.ErrInvalidJobID)

	negativeSalary := base
	negativeSalary.Salary = decimal.NewFromInt(-5)
	negativeSalary.Email = "negative.salary@corehr.example"
	_, err = repo.Create(ctx, negativeSalary)
	assert.ErrorIs(t, err, employee.ErrSalaryOutOfRange)

	// 1000000.00 needs 9 digits of precision and overflows NUMERIC(8,2)
	// before the check constraint runs; still a salary error, never a
	// percentage one.
	overflowSalary := base
	overflowSalary.Salary = decimal.NewFromInt(1_000_000)
	overflowSalary.Email = "overflow.salary@corehr.example"
	_, err = repo.Create(ctx, overflowSalary)
	assert.ErrorIs(t, err, employee.ErrSalaryOutOfRange)
	assert.NotErrorIs(t, err, employee.ErrPercentageOutOfRange)
}

func TestEmployeeRepository_Update_RefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	repo := setupEmployees(t, ctx)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)

	before, err := repo.GetByID(ctx, all[0].ID)
	require.NoError(t, err)

	changed := before
	changed.FirstName = "Renamed"
	updated, err := repo.Update(ctx, before.ID, changed)
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.FirstName)
	assert.Equal(t, before.CreatedAt, updated.CreatedAt)
	// updated_at is maintained by the trigger, not by the statement. The
	// update runs in its own transaction, so now() has moved on since the
	// insert and the timestamp must strictly advance.
	assert.True(t, updated.UpdatedAt.After(before.UpdatedAt),
		"updated_at %s did not advance past %s", updated.UpdatedAt, before.UpdatedAt)
}

func TestEmployeeRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := setupEmployees(t, ctx)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, all[0].ID))

	_, err = repo.GetByID(ctx, all[0].ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, all[0].ID), employee.ErrEmployeeNotFound)
}

// ===== BULK SALARY ADJUSTMENT =====

func TestEmployeeRepository_IncrementSalaries_EndToEnd(t *testing.T) {
	ctx := context.Background()
	repo := setupEmployees(t, ctx)

	adjustments, err := repo.IncrementSalaries(ctx, decimal.NewFromInt(10))
	require.NoError(t, err)
	require.Len(t, adjustments, 5)

	expected := map[string]string{
		"steven.king@corehr.example":      "82500.00",
		"neena.kochhar@corehr.example":    "71500.00",
		"lex.dehaan@corehr.example":       "93500.00",
		"alexander.hunold@corehr.example": "77000.00",
		"bruce.ernst@corehr.example":      "66000.00",
	}

	factor := decimal.RequireFromString("1.1")
	for _, adj := range adjustments {
		want, ok := expected[adj.Email]
		require.True(t, ok, "unexpected email %s", adj.Email)
		assert.True(t, adj.NewSalary.Equal(decimal.RequireFromString(want)),
			"%s: new salary %s, want %s", adj.Email, adj.NewSalary, want)
		assert.True(t, adj.NewSalary.Equal(adj.OldSalary.Mul(factor).Round(2)),
			"%s: new salary %s does not match old %s scaled", adj.Email, adj.NewSalary, adj.OldSalary)
	}

	// Table state matches the returned rows
	for email, salary := range salariesByEmail(t, ctx, repo) {
		assert.True(t, salary.Equal(decimal.RequireFromString(expected[email])),
			"%s: stored salary %s, want %s", email, salary, expected[email])
	}
}

func TestEmployeeRepository_IncrementSalaries_NegativePercentage(t *testing.T) {
	ctx := context.Background()
	repo := setupEmployees(t, ctx)

	adjustments, err := repo.IncrementSalaries(ctx, decimal.NewFromInt(-50))
	require.NoError(t, err)
	require.Len(t, adjustments, 5)

	for _, adj := range adjustments {
		assert.True(t, adj.NewSalary.Equal(adj.OldSalary.Div(decimal.NewFromInt(2)).Round(2)),
			"%s: new salary %s, old %s", adj.Email, adj.NewSalary, adj.OldSalary)
	}
}

func TestEmployeeRepository_IncrementSalaries_Compounds(t *testing.T) {
	ctx := context.Background()
	repo := setupEmployees(t, ctx)

	_, err := repo.IncrementSalaries(ctx, decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = repo.IncrementSalaries(ctx, decimal.NewFromInt(10))
	require.NoError(t, err)

	// 75000 * 1.1 * 1.1 = 90750, not 82500
	salaries := salariesByEmail(t, ctx, repo)
	assert.True(t, salaries["steven.king@corehr.example"].Equal(decimal.RequireFromString("90750.00")),
		"got %s", salaries["steven.king@corehr.example"])
}

func TestEmployeeRepository_IncrementSalaries_SkipsZeroSalaries(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, TruncateEmployees(ctx, testDB))
	repo := postgresql.NewEmployeeRepository(testDB)

	_, err := repo.Create(ctx, employee.Employee{
		FirstName: "Unpaid",
		LastName:  "Intern",
		Email:     "unpaid.intern@corehr.example",
		JobID:     employee.JobStockClerk,
		Salary:    decimal.Zero,
	})
	require.NoError(t, err)

	adjustments, err := repo.IncrementSalaries(ctx, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Empty(t, adjustments)
}

func TestEmployeeRepository_IncrementSalaries_OverflowIsSalaryError(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, TruncateEmployees(ctx, testDB))
	repo := postgresql.NewEmployeeRepository(testDB)

	created, err := repo.Create(ctx, employee.Employee{
		FirstName: "Top",
		LastName:  "Earner",
		Email:     "top.earner@corehr.example",
		JobID:     employee.JobPresident,
		Salary:    decimal.RequireFromString("950000.00"),
	})
	require.NoError(t, err)

	// 950000 * 1.1 does not fit NUMERIC(8,2). The percentage is fine; the
	// overflow must read as a salary problem and roll the statement back.
	_, err = repo.IncrementSalaries(ctx, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, employee.ErrSalaryOutOfRange)
	assert.NotErrorIs(t, err, employee.ErrPercentageOutOfRange)

	after, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, after.Salary.Equal(created.Salary), "salary changed to %s", after.Salary)
}

func TestIncrementSalaryByPercentage_NullPercentageAborts(t *testing.T) {
	ctx := context.Background()
	repo := setupEmployees(t, ctx)

	before := salariesByEmail(t, ctx, repo)

	// The repository API cannot express a NULL percentage; exercise the
	// function guard directly.
	rows, err := testDB.Query(ctx, "SELECT * FROM increment_salary_by_percentage(NULL::numeric)")
	if err == nil {
		rows.Next()
		err = rows.Err()
		rows.Close()
	}
	require.Error(t, err)

	after := salariesByEmail(t, ctx, repo)
	for email, salary := range before {
		assert.True(t, salary.Equal(after[email]), "%s changed from %s to %s", email, salary, after[email])
	}
}

func TestEmployeeRepository_UpdateAllSalaries_ReturnsCount(t *testing.T) {
	ctx := context.Background()
	repo := setupEmployees(t, ctx)

	affected, err := repo.UpdateAllSalaries(ctx, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Equal(t, int64(5), affected)

	salaries := salariesByEmail(t, ctx, repo)
	assert.True(t, salaries["steven.king@corehr.example"].Equal(decimal.RequireFromString("82500.00")))
}

func TestEmployeeRepository_UpdateAllSalaries_RejectsOutOfRange(t *testing.T) {
	ctx := context.Background()
	repo := setupEmployees(t, ctx)

	before := salariesByEmail(t, ctx, repo)

	_, err := repo.UpdateAllSalaries(ctx, decimal.NewFromInt(150))
	assert.ErrorIs(t, err, employee.ErrPercentageOutOfRange)

	_, err = repo.UpdateAllSalaries(ctx, decimal.NewFromInt(-150))
	assert.ErrorIs(t, err, employee.ErrPercentageOutOfRange)

	after := salariesByEmail(t, ctx, repo)
	for email, salary := range before {
		assert.True(t, salary.Equal(after[email]), "%s changed from %s to %s", email, salary, after[email])
	}
}

func TestEmployeeRepository_UpdateAllSalaries_BoundaryAccepted(t *testing.T) {
	ctx := context.Background()
	repo := setupEmployees(t, ctx)

	affected, err := repo.UpdateAllSalaries(ctx, decimal.NewFromInt(-100))
	require.NoError(t, err)
	assert.Equal(t, int64(5), affected)

	for _, salary := range salariesByEmail(t, ctx, repo) {
		assert.True(t, salary.IsZero(), "expected zeroed salary, got %s", salary)
	}
}

// ===== MIGRATIONS =====

func TestMigrations_UpIsIdempotent(t *testing.T) {
	ctx := context.Background()

	migrator, err := migrate.NewFSMigrator(testDB, migrations.FS)
	require.NoError(t, err)

	// The schema is already at the latest version from init; re-running
	// must not error or reapply anything.
	require.NoError(t, migrator.MigrateUp(ctx))

	status, err := migrator.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, status.CurrentVersion)
	assert.Equal(t, 4, status.TotalMigrations)
	assert.False(t, status.HasPendingChanges)
	assert.Empty(t, status.PendingMigrations)

	applied, err := migrator.AppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, applied)
}
