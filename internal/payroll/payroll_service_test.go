package payroll_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hrms/internal/company"
	"go-hrms/internal/employee"
	"go-hrms/internal/payroll"
	payrollerrors "go-hrms/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakePayrollRepository struct {
	upsertGrossFn           func(ctx context.Context, row *payroll.GrossPayroll) error
	grossRowsForPeriodFn    func(ctx context.Context, companyID uuid.UUID, month, year int) ([]payroll.GrossPayroll, error)
	upsertComponentAmountFn func(ctx context.Context, row *payroll.EmployeeComponentAmount) error
	listComponentAmountsFn  func(ctx context.Context, companyID, employeeID uuid.UUID) ([]payroll.EmployeeComponentAmount, error)
	getMonthlyFn            func(ctx context.Context, companyID, employeeID uuid.UUID, month, year int) (*payroll.MonthlyPayroll, error)
	createMonthlyFn         func(ctx context.Context, row *payroll.MonthlyPayroll) error
	updateMonthlyFn         func(ctx context.Context, row *payroll.MonthlyPayroll) error
	listMonthlyFn           func(ctx context.Context, companyID uuid.UUID, month, year int) ([]payroll.MonthlyPayroll, error)
}

func (f *fakePayrollRepository) UpsertGross(ctx context.Context, row *payroll.GrossPayroll) error {
	if f.upsertGrossFn != nil {
		return f.upsertGrossFn(ctx, row)
	}
	return nil
}

func (f *fakePayrollRepository) GrossRowsForPeriod(ctx context.Context, companyID uuid.UUID, month, year int) ([]payroll.GrossPayroll, error) {
	if f.grossRowsForPeriodFn != nil {
		return f.grossRowsForPeriodFn(ctx, companyID, month, year)
	}
	return nil, nil
}

func (f *fakePayrollRepository) UpsertComponentAmount(ctx context.Context, row *payroll.EmployeeComponentAmount) error {
	if f.upsertComponentAmountFn != nil {
		return f.upsertComponentAmountFn(ctx, row)
	}
	return nil
}

func (f *fakePayrollRepository) ListComponentAmounts(ctx context.Context, companyID, employeeID uuid.UUID) ([]payroll.EmployeeComponentAmount, error) {
	if f.listComponentAmountsFn != nil {
		return f.listComponentAmountsFn(ctx, companyID, employeeID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) GetMonthly(ctx context.Context, companyID, employeeID uuid.UUID, month, year int) (*payroll.MonthlyPayroll, error) {
	if f.getMonthlyFn != nil {
		return f.getMonthlyFn(ctx, companyID, employeeID, month, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) CreateMonthly(ctx context.Context, row *payroll.MonthlyPayroll) error {
	if f.createMonthlyFn != nil {
		return f.createMonthlyFn(ctx, row)
	}
	return nil
}

func (f *fakePayrollRepository) UpdateMonthly(ctx context.Context, row *payroll.MonthlyPayroll) error {
	if f.updateMonthlyFn != nil {
		return f.updateMonthlyFn(ctx, row)
	}
	return nil
}

func (f *fakePayrollRepository) ListMonthly(ctx context.Context, companyID uuid.UUID, month, year int) ([]payroll.MonthlyPayroll, error) {
	if f.listMonthlyFn != nil {
		return f.listMonthlyFn(ctx, companyID, month, year)
	}
	return nil, nil
}

func (f *fakePayrollRepository) WithTx(tx *gorm.DB) payroll.Repository { return f }

type fakeCompanyRepository struct {
	getByIDFn              func(ctx context.Context, id uuid.UUID) (*company.Company, error)
	listSalaryComponentsFn func(ctx context.Context, companyID uuid.UUID) ([]company.SalaryComponent, error)
	getEffectiveDaysFn     func(ctx context.Context, companyID uuid.UUID, year, month int) (*company.MonthlyEffectiveDays, error)
}

func (f *fakeCompanyRepository) Create(ctx context.Context, c *company.Company) error { return nil }

func (f *fakeCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return &company.Company{ID: id, Name: "Acme Corp", Email: "hr@acme.test", IsActive: true}, nil
}

func (f *fakeCompanyRepository) GetByName(ctx context.Context, name string) (*company.Company, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) GetAll(ctx context.Context) ([]company.Company, error) {
	return nil, nil
}

func (f *fakeCompanyRepository) Update(ctx context.Context, c *company.Company) error { return nil }

func (f *fakeCompanyRepository) CreateLeaveType(ctx context.Context, lt *company.LeaveType) error {
	return nil
}

func (f *fakeCompanyRepository) ListLeaveTypes(ctx context.Context, companyID uuid.UUID) ([]company.LeaveType, error) {
	return nil, nil
}

func (f *fakeCompanyRepository) GetLeaveType(ctx context.Context, companyID, leaveTypeID uuid.UUID) (*company.LeaveType, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) GetLeaveTypeByPolicy(ctx context.Context, companyID uuid.UUID, policy string) (*company.LeaveType, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) CreateHoliday(ctx context.Context, h *company.Holiday) error {
	return nil
}

func (f *fakeCompanyRepository) ListHolidays(ctx context.Context, companyID uuid.UUID) ([]company.Holiday, error) {
	return nil, nil
}

func (f *fakeCompanyRepository) HolidayDates(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	return nil, nil
}

func (f *fakeCompanyRepository) CreateSalaryComponent(ctx context.Context, sc *company.SalaryComponent) error {
	return nil
}

func (f *fakeCompanyRepository) ListSalaryComponents(ctx context.Context, companyID uuid.UUID) ([]company.SalaryComponent, error) {
	if f.listSalaryComponentsFn != nil {
		return f.listSalaryComponentsFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeCompanyRepository) UpsertEffectiveDays(ctx context.Context, row *company.MonthlyEffectiveDays) error {
	return nil
}

func (f *fakeCompanyRepository) GetEffectiveDays(ctx context.Context, companyID uuid.UUID, year, month int) (*company.MonthlyEffectiveDays, error) {
	if f.getEffectiveDaysFn != nil {
		return f.getEffectiveDaysFn(ctx, companyID, year, month)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) WithTx(tx *gorm.DB) company.Repository { return f }

type fakeEmployeeRepository struct {
	getByIDFn         func(ctx context.Context, companyID, id uuid.UUID) (*employee.Employee, error)
	getAllFn          func(ctx context.Context, companyID uuid.UUID) ([]employee.Employee, error)
	existsInCompanyFn func(ctx context.Context, companyID, employeeID uuid.UUID) (bool, error)
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*employee.Employee, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) GetAll(ctx context.Context, companyID uuid.UUID) ([]employee.Employee, error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) ExistsInCompany(ctx context.Context, companyID, employeeID uuid.UUID) (bool, error) {
	if f.existsInCompanyFn != nil {
		return f.existsInCompanyFn(ctx, companyID, employeeID)
	}
	return true, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return nil
}

func (f *fakeEmployeeRepository) WithTx(tx *gorm.DB) employee.Repository { return f }

type fakeLOPDaysSource struct {
	sumLOPDaysFn func(ctx context.Context, companyID, employeeID uuid.UUID, month, year int) (decimal.Decimal, error)
}

func (f *fakeLOPDaysSource) SumLOPDays(ctx context.Context, companyID, employeeID uuid.UUID, month, year int) (decimal.Decimal, error) {
	if f.sumLOPDaysFn != nil {
		return f.sumLOPDaysFn(ctx, companyID, employeeID, month, year)
	}
	return decimal.Zero, nil
}

type payrollServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   payroll.Service
	repo      *fakePayrollRepository
	companies *fakeCompanyRepository
	employees *fakeEmployeeRepository
	lop       *fakeLOPDaysSource
}

func setupPayrollServiceTest(t *testing.T) *payrollServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)

	deps := &payrollServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      &fakePayrollRepository{},
		companies: &fakeCompanyRepository{},
		employees: &fakeEmployeeRepository{},
		lop:       &fakeLOPDaysSource{},
	}
	deps.service = payroll.NewService(gdb, deps.repo, deps.companies, deps.employees, deps.lop, nil, zap.NewNop())
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func salaryComponents(companyID uuid.UUID, names ...string) []company.SalaryComponent {
	components := make([]company.SalaryComponent, 0, len(names))
	for _, name := range names {
		kind := company.ComponentKindEarning
		if name == "Provident Fund" || name == "ESI" {
			kind = company.ComponentKindDeduction
		}
		components = append(components, company.SalaryComponent{
			ID: uuid.New(), CompanyID: companyID, Name: name, Kind: kind,
		})
	}
	return components
}

func TestPayrollService_Generate(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	emp1 := uuid.New()
	emp2 := uuid.New()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	deps.companies.listSalaryComponentsFn = func(ctx context.Context, cid uuid.UUID) ([]company.SalaryComponent, error) {
		return salaryComponents(companyID, "Basic Pay"), nil
	}
	deps.companies.getEffectiveDaysFn = func(ctx context.Context, cid uuid.UUID, year, month int) (*company.MonthlyEffectiveDays, error) {
		assert.Equal(t, 2026, year)
		assert.Equal(t, 2, month)
		return &company.MonthlyEffectiveDays{CompanyID: cid, Year: year, Month: month, EffectiveDays: 30}, nil
	}
	deps.repo.grossRowsForPeriodFn = func(ctx context.Context, cid uuid.UUID, month, year int) ([]payroll.GrossPayroll, error) {
		return []payroll.GrossPayroll{
			{CompanyID: cid, EmployeeID: emp1, Month: month, Year: year, GrossSalary: decimal.NewFromInt(30000)},
			{CompanyID: cid, EmployeeID: emp2, Month: month, Year: year, GrossSalary: decimal.NewFromInt(60000)},
		}, nil
	}
	deps.lop.sumLOPDaysFn = func(ctx context.Context, cid, eid uuid.UUID, month, year int) (decimal.Decimal, error) {
		if eid == emp1 {
			return decimal.NewFromInt(2), nil
		}
		return decimal.Zero, nil
	}
	deps.repo.getMonthlyFn = func(ctx context.Context, cid, eid uuid.UUID, month, year int) (*payroll.MonthlyPayroll, error) {
		if eid == emp1 {
			return &payroll.MonthlyPayroll{ID: uuid.New(), CompanyID: cid, EmployeeID: eid, Month: month, Year: year}, nil
		}
		return nil, gorm.ErrRecordNotFound
	}

	var updatedRow, createdRow *payroll.MonthlyPayroll
	deps.repo.updateMonthlyFn = func(ctx context.Context, row *payroll.MonthlyPayroll) error {
		updatedRow = row
		return nil
	}
	deps.repo.createMonthlyFn = func(ctx context.Context, row *payroll.MonthlyPayroll) error {
		createdRow = row
		return nil
	}

	expectTx(t, deps.sqlMock, true)

	resp, err := deps.service.Generate(ctx, companyID.String(), payroll.GeneratePayrollRequest{Month: 2, Year: 2026})

	assert.NoError(t, err)
	assert.Equal(t, "Payroll generated for current month", resp.Message)
	assert.Equal(t, 1, resp.Created)
	assert.Equal(t, 1, resp.Updated)

	assert.NotNil(t, updatedRow)
	assertDecimalEqual(t, "2", updatedRow.LOPDays)
	assertDecimalEqual(t, "28", updatedRow.PaidDays)
	assertDecimalEqual(t, "30000", updatedRow.GrossSalary)
	// adjusted gross 28000 after two unpaid days at 1000/day
	assertDecimalEqual(t, "11200", updatedRow.Basic)
	assertDecimalEqual(t, "28000", updatedRow.TotalEarnings)

	assert.NotNil(t, createdRow)
	assert.Equal(t, emp2, createdRow.EmployeeID)
	assert.Equal(t, 2, createdRow.Month)
	assert.Equal(t, 2026, createdRow.Year)
	assertDecimalEqual(t, "24000", createdRow.Basic)
	assertDecimalEqual(t, "6000", createdRow.DA)
	assertDecimalEqual(t, "12000", createdRow.HRA)
	assertDecimalEqual(t, "3600", createdRow.PF)
	assertDecimalEqual(t, "225", createdRow.ESI)
	assertDecimalEqual(t, "56175", createdRow.NetPay)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Generate_Preconditions(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	req := payroll.GeneratePayrollRequest{Month: 2, Year: 2026}

	t.Run("components not configured", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Generate(ctx, companyID.String(), req)

		assert.ErrorIs(t, err, payrollerrors.ErrComponentsNotConfigured)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("no gross salary rows", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		deps.companies.listSalaryComponentsFn = func(ctx context.Context, cid uuid.UUID) ([]company.SalaryComponent, error) {
			return salaryComponents(companyID, "Basic Pay"), nil
		}

		_, err := deps.service.Generate(ctx, companyID.String(), req)

		assert.ErrorIs(t, err, payrollerrors.ErrNoGrossSalary)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("effective days missing aborts before any write", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		deps.companies.listSalaryComponentsFn = func(ctx context.Context, cid uuid.UUID) ([]company.SalaryComponent, error) {
			return salaryComponents(companyID, "Basic Pay"), nil
		}
		deps.repo.grossRowsForPeriodFn = func(ctx context.Context, cid uuid.UUID, month, year int) ([]payroll.GrossPayroll, error) {
			return []payroll.GrossPayroll{{CompanyID: cid, EmployeeID: uuid.New(), GrossSalary: decimal.NewFromInt(30000)}}, nil
		}
		deps.repo.createMonthlyFn = func(ctx context.Context, row *payroll.MonthlyPayroll) error {
			t.Fatal("no payroll row may be written")
			return nil
		}

		_, err := deps.service.Generate(ctx, companyID.String(), req)

		assert.ErrorIs(t, err, payrollerrors.ErrEffectiveDaysNotConfigured)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPayrollService_AssignComponents(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()

	t.Run("success maps component names onto the breakdown", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		deps.companies.listSalaryComponentsFn = func(ctx context.Context, cid uuid.UUID) ([]company.SalaryComponent, error) {
			return salaryComponents(companyID,
				"Basic Pay", "DA", "House Rent Allowance", "Conveyance",
				"Medical Allowance", "Special Allowance", "Provident Fund", "ESI",
			), nil
		}

		var amounts []*payroll.EmployeeComponentAmount
		deps.repo.upsertComponentAmountFn = func(ctx context.Context, row *payroll.EmployeeComponentAmount) error {
			amounts = append(amounts, row)
			return nil
		}
		var grossRow *payroll.GrossPayroll
		deps.repo.upsertGrossFn = func(ctx context.Context, row *payroll.GrossPayroll) error {
			grossRow = row
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.AssignComponents(ctx, companyID.String(), employeeID.String(), payroll.AssignComponentsRequest{
			GrossSalary: "30000",
		})

		assert.NoError(t, err)
		assert.Len(t, amounts, 8)
		assert.Equal(t, "12000", resp.Components["Basic Pay"])
		assert.Equal(t, "3000", resp.Components["DA"])
		assert.Equal(t, "6000", resp.Components["House Rent Allowance"])
		assert.Equal(t, "1600", resp.Components["Conveyance"])
		assert.Equal(t, "1250", resp.Components["Medical Allowance"])
		assert.Equal(t, "6150", resp.Components["Special Allowance"])
		assert.Equal(t, "1800", resp.Components["Provident Fund"])
		assert.Equal(t, "112.5", resp.Components["ESI"])
		assert.Equal(t, "28087.5", resp.NetPay)

		now := time.Now()
		assert.NotNil(t, grossRow)
		assert.Equal(t, employeeID, grossRow.EmployeeID)
		assert.Equal(t, int(now.Month()), grossRow.Month)
		assert.Equal(t, now.Year(), grossRow.Year)
		assertDecimalEqual(t, "30000", grossRow.GrossSalary)
		assertDecimalEqual(t, "28087.5", grossRow.NetPay)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid gross", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		deps.companies.listSalaryComponentsFn = func(ctx context.Context, cid uuid.UUID) ([]company.SalaryComponent, error) {
			return salaryComponents(companyID, "Basic Pay"), nil
		}

		for _, gross := range []string{"abc", "-5", "0"} {
			_, err := deps.service.AssignComponents(ctx, companyID.String(), employeeID.String(), payroll.AssignComponentsRequest{
				GrossSalary: gross,
			})
			assert.ErrorIs(t, err, payrollerrors.ErrInvalidGrossSalary)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPayrollService_List(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	emp1 := uuid.New()
	emp2 := uuid.New()

	t.Run("joins employee names", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		deps.repo.listMonthlyFn = func(ctx context.Context, cid uuid.UUID, month, year int) ([]payroll.MonthlyPayroll, error) {
			return []payroll.MonthlyPayroll{
				{ID: uuid.New(), CompanyID: cid, EmployeeID: emp1, Month: month, Year: year, NetPay: decimal.NewFromInt(28000)},
				{ID: uuid.New(), CompanyID: cid, EmployeeID: emp2, Month: month, Year: year, NetPay: decimal.NewFromInt(56000)},
			}, nil
		}
		deps.employees.getAllFn = func(ctx context.Context, cid uuid.UUID) ([]employee.Employee, error) {
			return []employee.Employee{
				{ID: emp1, FullName: "Jane Roe"},
				{ID: emp2, FullName: "John Doe"},
			}, nil
		}

		rows, err := deps.service.List(ctx, companyID.String(), 2, 2026)

		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, "Jane Roe", rows[0].EmployeeName)
		assert.Equal(t, "John Doe", rows[1].EmployeeName)
	})

	t.Run("negative invalid month", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.List(ctx, companyID.String(), 13, 2026)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
	})
}
