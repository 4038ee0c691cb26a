package leavebank_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hrms/internal/company"
	companyerrors "go-hrms/internal/company/errors"
	"go-hrms/internal/leavebank"
	leavebankerrors "go-hrms/internal/leavebank/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeLeaveBankRepository struct {
	createFn       func(ctx context.Context, bank *leavebank.LeaveBank) error
	getForUpdateFn func(ctx context.Context, companyID, employeeID, leaveTypeID uuid.UUID) (*leavebank.LeaveBank, error)
	listFn         func(ctx context.Context, companyID, employeeID uuid.UUID) ([]leavebank.LeaveBank, error)
	saveFn         func(ctx context.Context, bank *leavebank.LeaveBank) error
}

func (f *fakeLeaveBankRepository) Create(ctx context.Context, bank *leavebank.LeaveBank) error {
	if f.createFn != nil {
		return f.createFn(ctx, bank)
	}
	return nil
}

func (f *fakeLeaveBankRepository) CreateBatch(ctx context.Context, banks []leavebank.LeaveBank) error {
	return nil
}

func (f *fakeLeaveBankRepository) Get(ctx context.Context, companyID, employeeID, leaveTypeID uuid.UUID) (*leavebank.LeaveBank, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveBankRepository) GetForUpdate(ctx context.Context, companyID, employeeID, leaveTypeID uuid.UUID) (*leavebank.LeaveBank, error) {
	if f.getForUpdateFn != nil {
		return f.getForUpdateFn(ctx, companyID, employeeID, leaveTypeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveBankRepository) ListByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]leavebank.LeaveBank, error) {
	if f.listFn != nil {
		return f.listFn(ctx, companyID, employeeID)
	}
	return nil, nil
}

func (f *fakeLeaveBankRepository) Save(ctx context.Context, bank *leavebank.LeaveBank) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, bank)
	}
	return nil
}

func (f *fakeLeaveBankRepository) WithTx(tx *gorm.DB) leavebank.Repository { return f }

type fakeCompanyRepository struct {
	getLeaveTypeFn   func(ctx context.Context, companyID, leaveTypeID uuid.UUID) (*company.LeaveType, error)
	listLeaveTypesFn func(ctx context.Context, companyID uuid.UUID) ([]company.LeaveType, error)
}

func (f *fakeCompanyRepository) Create(ctx context.Context, c *company.Company) error { return nil }

func (f *fakeCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	return &company.Company{ID: id, Name: "Acme Corp", IsActive: true}, nil
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
	if f.listLeaveTypesFn != nil {
		return f.listLeaveTypesFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeCompanyRepository) GetLeaveType(ctx context.Context, companyID, leaveTypeID uuid.UUID) (*company.LeaveType, error) {
	if f.getLeaveTypeFn != nil {
		return f.getLeaveTypeFn(ctx, companyID, leaveTypeID)
	}
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
	return nil, nil
}

func (f *fakeCompanyRepository) UpsertEffectiveDays(ctx context.Context, row *company.MonthlyEffectiveDays) error {
	return nil
}

func (f *fakeCompanyRepository) GetEffectiveDays(ctx context.Context, companyID uuid.UUID, year, month int) (*company.MonthlyEffectiveDays, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) WithTx(tx *gorm.DB) company.Repository { return f }

type fakeEmployeeVerifier struct {
	existsFn func(ctx context.Context, companyID, employeeID uuid.UUID) (bool, error)
}

func (f *fakeEmployeeVerifier) ExistsInCompany(ctx context.Context, companyID, employeeID uuid.UUID) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, companyID, employeeID)
	}
	return true, nil
}

type leaveBankServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   leavebank.Service
	repo      *fakeLeaveBankRepository
	companies *fakeCompanyRepository
	verifier  *fakeEmployeeVerifier
}

func setupLeaveBankServiceTest(t *testing.T) *leaveBankServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)

	deps := &leaveBankServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      &fakeLeaveBankRepository{},
		companies: &fakeCompanyRepository{},
		verifier:  &fakeEmployeeVerifier{},
	}
	deps.service = leavebank.NewService(gdb, deps.repo, deps.companies, deps.verifier, zap.NewNop())
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

func TestLeaveBankService_Upsert(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()
	leaveTypeID := uuid.New()

	withLeaveType := func(deps *leaveBankServiceDeps) {
		deps.companies.getLeaveTypeFn = func(ctx context.Context, cid, ltid uuid.UUID) (*company.LeaveType, error) {
			return &company.LeaveType{ID: ltid, CompanyID: cid, Name: "Casual Leave", Policy: company.PolicyMonthlyCapped}, nil
		}
	}

	t.Run("creates a fresh bank with full balance", func(t *testing.T) {
		deps := setupLeaveBankServiceTest(t)
		defer deps.db.Close()
		withLeaveType(deps)

		var created *leavebank.LeaveBank
		deps.repo.createFn = func(ctx context.Context, bank *leavebank.LeaveBank) error {
			created = bank
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Upsert(ctx, companyID.String(), leavebank.UpsertLeaveBankRequest{
			EmployeeID:   employeeID.String(),
			LeaveTypeID:  leaveTypeID.String(),
			TotalAllowed: "12",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.True(t, created.TotalAllowed.Equal(decimal.NewFromInt(12)))
		assert.True(t, created.Remaining.Equal(decimal.NewFromInt(12)))
		assert.Equal(t, "Casual Leave", resp.LeaveType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("update shifts remaining by the delta", func(t *testing.T) {
		deps := setupLeaveBankServiceTest(t)
		defer deps.db.Close()
		withLeaveType(deps)

		deps.repo.getForUpdateFn = func(ctx context.Context, cid, eid, ltid uuid.UUID) (*leavebank.LeaveBank, error) {
			return &leavebank.LeaveBank{
				CompanyID: cid, EmployeeID: eid, LeaveTypeID: ltid,
				TotalAllowed: decimal.NewFromInt(10), Remaining: decimal.NewFromInt(4),
			}, nil
		}
		var saved *leavebank.LeaveBank
		deps.repo.saveFn = func(ctx context.Context, bank *leavebank.LeaveBank) error {
			saved = bank
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		_, err := deps.service.Upsert(ctx, companyID.String(), leavebank.UpsertLeaveBankRequest{
			EmployeeID:   employeeID.String(),
			LeaveTypeID:  leaveTypeID.String(),
			TotalAllowed: "12",
		})

		assert.NoError(t, err)
		assert.True(t, saved.TotalAllowed.Equal(decimal.NewFromInt(12)))
		assert.True(t, saved.Remaining.Equal(decimal.NewFromInt(6)))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("shrinking below consumption clamps remaining at zero", func(t *testing.T) {
		deps := setupLeaveBankServiceTest(t)
		defer deps.db.Close()
		withLeaveType(deps)

		deps.repo.getForUpdateFn = func(ctx context.Context, cid, eid, ltid uuid.UUID) (*leavebank.LeaveBank, error) {
			return &leavebank.LeaveBank{
				TotalAllowed: decimal.NewFromInt(10), Remaining: decimal.NewFromInt(4),
			}, nil
		}
		var saved *leavebank.LeaveBank
		deps.repo.saveFn = func(ctx context.Context, bank *leavebank.LeaveBank) error {
			saved = bank
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		_, err := deps.service.Upsert(ctx, companyID.String(), leavebank.UpsertLeaveBankRequest{
			EmployeeID:   employeeID.String(),
			LeaveTypeID:  leaveTypeID.String(),
			TotalAllowed: "2",
		})

		assert.NoError(t, err)
		assert.True(t, saved.Remaining.IsZero())
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative total allowed", func(t *testing.T) {
		deps := setupLeaveBankServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Upsert(ctx, companyID.String(), leavebank.UpsertLeaveBankRequest{
			EmployeeID:   employeeID.String(),
			LeaveTypeID:  leaveTypeID.String(),
			TotalAllowed: "-1",
		})
		assert.ErrorIs(t, err, leavebankerrors.ErrInvalidTotalAllowed)
	})

	t.Run("negative employee outside company", func(t *testing.T) {
		deps := setupLeaveBankServiceTest(t)
		defer deps.db.Close()

		deps.verifier.existsFn = func(ctx context.Context, cid, eid uuid.UUID) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Upsert(ctx, companyID.String(), leavebank.UpsertLeaveBankRequest{
			EmployeeID:   employeeID.String(),
			LeaveTypeID:  leaveTypeID.String(),
			TotalAllowed: "5",
		})
		assert.ErrorIs(t, err, leavebankerrors.ErrInvalidEmployeeID)
	})
}

func TestLeaveBankService_BulkUpsert(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()
	sickID := uuid.New()
	casualID := uuid.New()

	typeNames := map[uuid.UUID]string{sickID: "Sick Leave", casualID: "Casual Leave"}

	t.Run("mixes creates and updates in one transaction", func(t *testing.T) {
		deps := setupLeaveBankServiceTest(t)
		defer deps.db.Close()

		deps.companies.getLeaveTypeFn = func(ctx context.Context, cid, ltid uuid.UUID) (*company.LeaveType, error) {
			name, ok := typeNames[ltid]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return &company.LeaveType{ID: ltid, CompanyID: cid, Name: name}, nil
		}
		deps.repo.getForUpdateFn = func(ctx context.Context, cid, eid, ltid uuid.UUID) (*leavebank.LeaveBank, error) {
			if ltid == casualID {
				return &leavebank.LeaveBank{
					CompanyID: cid, EmployeeID: eid, LeaveTypeID: ltid,
					TotalAllowed: decimal.NewFromInt(10), Remaining: decimal.NewFromInt(4),
				}, nil
			}
			return nil, gorm.ErrRecordNotFound
		}
		var created, saved *leavebank.LeaveBank
		deps.repo.createFn = func(ctx context.Context, bank *leavebank.LeaveBank) error {
			created = bank
			return nil
		}
		deps.repo.saveFn = func(ctx context.Context, bank *leavebank.LeaveBank) error {
			saved = bank
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.BulkUpsert(ctx, companyID.String(), leavebank.BulkUpsertLeaveBankRequest{
			EmployeeID: employeeID.String(),
			Items: []leavebank.LeaveBankItem{
				{LeaveTypeID: sickID.String(), TotalAllowed: "8"},
				{LeaveTypeID: casualID.String(), TotalAllowed: "12"},
			},
		})

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Sick Leave", resp[0].LeaveType)
		assert.True(t, created.Remaining.Equal(decimal.NewFromInt(8)))
		assert.True(t, saved.TotalAllowed.Equal(decimal.NewFromInt(12)))
		assert.True(t, saved.Remaining.Equal(decimal.NewFromInt(6)))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown leave type writes nothing", func(t *testing.T) {
		deps := setupLeaveBankServiceTest(t)
		defer deps.db.Close()

		deps.companies.getLeaveTypeFn = func(ctx context.Context, cid, ltid uuid.UUID) (*company.LeaveType, error) {
			if ltid == sickID {
				return &company.LeaveType{ID: ltid, Name: "Sick Leave"}, nil
			}
			return nil, gorm.ErrRecordNotFound
		}
		deps.repo.createFn = func(ctx context.Context, bank *leavebank.LeaveBank) error {
			t.Fatal("unexpected create after failed validation")
			return nil
		}

		_, err := deps.service.BulkUpsert(ctx, companyID.String(), leavebank.BulkUpsertLeaveBankRequest{
			EmployeeID: employeeID.String(),
			Items: []leavebank.LeaveBankItem{
				{LeaveTypeID: sickID.String(), TotalAllowed: "8"},
				{LeaveTypeID: uuid.New().String(), TotalAllowed: "12"},
			},
		})

		assert.ErrorIs(t, err, companyerrors.ErrLeaveTypeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveBankService_ListByEmployee(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()
	sickID := uuid.New()
	casualID := uuid.New()

	deps := setupLeaveBankServiceTest(t)
	defer deps.db.Close()

	deps.repo.listFn = func(ctx context.Context, cid, eid uuid.UUID) ([]leavebank.LeaveBank, error) {
		return []leavebank.LeaveBank{
			{ID: uuid.New(), LeaveTypeID: sickID, EmployeeID: eid, TotalAllowed: decimal.NewFromInt(8), Remaining: decimal.NewFromInt(5), IsCumulated: true},
			{ID: uuid.New(), LeaveTypeID: casualID, EmployeeID: eid, TotalAllowed: decimal.NewFromInt(12), Remaining: decimal.NewFromInt(12)},
		}, nil
	}
	deps.companies.listLeaveTypesFn = func(ctx context.Context, cid uuid.UUID) ([]company.LeaveType, error) {
		return []company.LeaveType{
			{ID: sickID, Name: "Sick Leave", Policy: company.PolicyYearlyCumulative},
			{ID: casualID, Name: "Casual Leave", Policy: company.PolicyMonthlyCapped},
		}, nil
	}

	banks, err := deps.service.ListByEmployee(ctx, companyID.String(), employeeID.String())

	assert.NoError(t, err)
	assert.Len(t, banks, 2)
	assert.Equal(t, "Sick Leave", banks[0].LeaveType)
	assert.Equal(t, "5", banks[0].Remaining)
	assert.Equal(t, "Casual Leave", banks[1].LeaveType)
}
