package company

import (
	"context"
	"errors"
	"strings"
	"time"

	companyerrors "go-hrms/internal/company/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/company_service_mock.go -package=mock . Service
type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error)
	GetByID(ctx context.Context, id string) (*CompanyResponse, error)
	GetAll(ctx context.Context) ([]CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error)

	CreateLeaveType(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (*LeaveTypeResponse, error)
	ListLeaveTypes(ctx context.Context, companyID string) ([]LeaveTypeResponse, error)

	CreateHoliday(ctx context.Context, companyID string, req CreateHolidayRequest) (*HolidayResponse, error)
	ListHolidays(ctx context.Context, companyID string) ([]HolidayResponse, error)

	CreateSalaryComponent(ctx context.Context, companyID string, req CreateSalaryComponentRequest) (*SalaryComponentResponse, error)
	SeedSalaryComponents(ctx context.Context, companyID string) ([]SalaryComponentResponse, error)
	ListSalaryComponents(ctx context.Context, companyID string) ([]SalaryComponentResponse, error)

	UpsertEffectiveDays(ctx context.Context, companyID string, req UpsertEffectiveDaysRequest) (*EffectiveDaysResponse, error)
	GetEffectiveDays(ctx context.Context, companyID string, year, month int) (*EffectiveDaysResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	name := strings.TrimSpace(req.Name)

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, companyerrors.ErrCompanyAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	comp := &Company{
		Name:     name,
		Email:    strings.TrimSpace(req.Email),
		IsActive: true,
	}

	if err := s.repo.Create(ctx, comp); err != nil {
		if isUniqueViolation(err) {
			return nil, companyerrors.ErrCompanyAlreadyExists
		}
		return nil, err
	}

	s.logger.Info("company created",
		zap.String("company_id", comp.ID.String()),
		zap.String("name", comp.Name),
	)

	return s.mapToResponse(comp), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	return s.mapToResponse(comp), nil
}

func (s *service) GetAll(ctx context.Context) ([]CompanyResponse, error) {
	companies, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]CompanyResponse, 0, len(companies))
	for i := range companies {
		result = append(result, *s.mapToResponse(&companies[i]))
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		comp.Name = req.Name
	}
	if req.Email != "" {
		comp.Email = req.Email
	}
	if req.IsActive != nil {
		comp.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		return nil, err
	}

	return s.mapToResponse(comp), nil
}

func (s *service) CreateLeaveType(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (*LeaveTypeResponse, error) {
	uid, err := s.companyExists(ctx, companyID)
	if err != nil {
		return nil, err
	}

	policy := req.Policy
	if policy == "" {
		policy = ResolvePolicy(req.Name)
	}

	// One LOP-tagged type per company; the leave engine books unpaid
	// segments against it.
	if policy == PolicyLOP {
		if _, err := s.repo.GetLeaveTypeByPolicy(ctx, uid, PolicyLOP); err == nil {
			return nil, companyerrors.ErrLOPTypeAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	allocation := decimal.Zero
	if req.DefaultAllocation != "" {
		allocation, err = decimal.NewFromString(req.DefaultAllocation)
		if err != nil || allocation.IsNegative() {
			return nil, companyerrors.ErrInvalidAllocation
		}
	}

	lt := &LeaveType{
		CompanyID:         uid,
		Name:              strings.TrimSpace(req.Name),
		Policy:            policy,
		DefaultAllocation: allocation,
	}

	if err := s.repo.CreateLeaveType(ctx, lt); err != nil {
		if isUniqueViolation(err) {
			return nil, companyerrors.ErrLeaveTypeAlreadyExists
		}
		return nil, err
	}

	s.logger.Info("leave type created",
		zap.String("company_id", companyID),
		zap.String("leave_type_id", lt.ID.String()),
		zap.String("policy", lt.Policy),
	)

	return mapLeaveTypeToResponse(lt), nil
}

func (s *service) ListLeaveTypes(ctx context.Context, companyID string) ([]LeaveTypeResponse, error) {
	uid, err := s.companyExists(ctx, companyID)
	if err != nil {
		return nil, err
	}

	types, err := s.repo.ListLeaveTypes(ctx, uid)
	if err != nil {
		return nil, err
	}

	result := make([]LeaveTypeResponse, 0, len(types))
	for i := range types {
		result = append(result, *mapLeaveTypeToResponse(&types[i]))
	}
	return result, nil
}

func (s *service) CreateHoliday(ctx context.Context, companyID string, req CreateHolidayRequest) (*HolidayResponse, error) {
	uid, err := s.companyExists(ctx, companyID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, companyerrors.ErrInvalidDate
	}

	holiday := &Holiday{
		CompanyID: uid,
		Name:      strings.TrimSpace(req.Name),
		Date:      date,
	}

	if err := s.repo.CreateHoliday(ctx, holiday); err != nil {
		if isUniqueViolation(err) {
			return nil, companyerrors.ErrHolidayAlreadyExists
		}
		return nil, err
	}

	return mapHolidayToResponse(holiday), nil
}

func (s *service) ListHolidays(ctx context.Context, companyID string) ([]HolidayResponse, error) {
	uid, err := s.companyExists(ctx, companyID)
	if err != nil {
		return nil, err
	}

	holidays, err := s.repo.ListHolidays(ctx, uid)
	if err != nil {
		return nil, err
	}

	result := make([]HolidayResponse, 0, len(holidays))
	for i := range holidays {
		result = append(result, *mapHolidayToResponse(&holidays[i]))
	}
	return result, nil
}

func (s *service) CreateSalaryComponent(ctx context.Context, companyID string, req CreateSalaryComponentRequest) (*SalaryComponentResponse, error) {
	uid, err := s.companyExists(ctx, companyID)
	if err != nil {
		return nil, err
	}

	sc := &SalaryComponent{
		CompanyID: uid,
		Name:      strings.TrimSpace(req.Name),
		Kind:      req.Kind,
	}

	if err := s.repo.CreateSalaryComponent(ctx, sc); err != nil {
		if isUniqueViolation(err) {
			return nil, companyerrors.ErrSalaryComponentAlreadyExists
		}
		return nil, err
	}

	return &SalaryComponentResponse{ID: sc.ID.String(), Name: sc.Name, Kind: sc.Kind}, nil
}

// standardSalaryComponents is the component set ComputeBreakdown produces.
var standardSalaryComponents = []SalaryComponent{
	{Name: "Basic Pay", Kind: ComponentKindEarning},
	{Name: "Dearness Allowance", Kind: ComponentKindEarning},
	{Name: "House Rent Allowance", Kind: ComponentKindEarning},
	{Name: "Conveyance Allowance", Kind: ComponentKindEarning},
	{Name: "Medical Allowance", Kind: ComponentKindEarning},
	{Name: "Special Allowance", Kind: ComponentKindEarning},
	{Name: "Provident Fund", Kind: ComponentKindDeduction},
	{Name: "ESI", Kind: ComponentKindDeduction},
}

// SeedSalaryComponents creates any of the standard components the company is
// missing. Already-configured names are left untouched, so it is safe to call
// repeatedly.
func (s *service) SeedSalaryComponents(ctx context.Context, companyID string) ([]SalaryComponentResponse, error) {
	uid, err := s.companyExists(ctx, companyID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListSalaryComponents(ctx, uid)
	if err != nil {
		return nil, err
	}
	present := make(map[string]struct{}, len(existing))
	for _, sc := range existing {
		present[strings.ToLower(sc.Name)] = struct{}{}
	}

	created := make([]SalaryComponentResponse, 0, len(standardSalaryComponents))
	for _, std := range standardSalaryComponents {
		if _, ok := present[strings.ToLower(std.Name)]; ok {
			continue
		}
		sc := &SalaryComponent{
			CompanyID: uid,
			Name:      std.Name,
			Kind:      std.Kind,
		}
		if err := s.repo.CreateSalaryComponent(ctx, sc); err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return nil, err
		}
		created = append(created, SalaryComponentResponse{ID: sc.ID.String(), Name: sc.Name, Kind: sc.Kind})
	}

	s.logger.Info("salary components seeded",
		zap.String("company_id", companyID),
		zap.Int("created", len(created)),
	)

	return created, nil
}

func (s *service) ListSalaryComponents(ctx context.Context, companyID string) ([]SalaryComponentResponse, error) {
	uid, err := s.companyExists(ctx, companyID)
	if err != nil {
		return nil, err
	}

	components, err := s.repo.ListSalaryComponents(ctx, uid)
	if err != nil {
		return nil, err
	}

	result := make([]SalaryComponentResponse, 0, len(components))
	for _, sc := range components {
		result = append(result, SalaryComponentResponse{ID: sc.ID.String(), Name: sc.Name, Kind: sc.Kind})
	}
	return result, nil
}

func (s *service) UpsertEffectiveDays(ctx context.Context, companyID string, req UpsertEffectiveDaysRequest) (*EffectiveDaysResponse, error) {
	uid, err := s.companyExists(ctx, companyID)
	if err != nil {
		return nil, err
	}

	row := &MonthlyEffectiveDays{
		CompanyID:     uid,
		Year:          req.Year,
		Month:         req.Month,
		EffectiveDays: req.EffectiveDays,
	}

	if err := s.repo.UpsertEffectiveDays(ctx, row); err != nil {
		return nil, err
	}

	return &EffectiveDaysResponse{Year: row.Year, Month: row.Month, EffectiveDays: row.EffectiveDays}, nil
}

func (s *service) GetEffectiveDays(ctx context.Context, companyID string, year, month int) (*EffectiveDaysResponse, error) {
	uid, err := s.companyExists(ctx, companyID)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.GetEffectiveDays(ctx, uid, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrEffectiveDaysNotFound
		}
		return nil, err
	}

	return &EffectiveDaysResponse{Year: row.Year, Month: row.Month, EffectiveDays: row.EffectiveDays}, nil
}

func (s *service) companyExists(ctx context.Context, companyID string) (uuid.UUID, error) {
	uid, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, companyerrors.ErrInvalidCompanyID
	}

	if _, err := s.repo.GetByID(ctx, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, companyerrors.ErrCompanyNotFound
		}
		return uuid.Nil, err
	}

	return uid, nil
}

func (s *service) mapToResponse(c *Company) *CompanyResponse {
	return &CompanyResponse{
		ID:       c.ID.String(),
		Name:     c.Name,
		Email:    c.Email,
		IsActive: c.IsActive,
	}
}

func mapLeaveTypeToResponse(lt *LeaveType) *LeaveTypeResponse {
	return &LeaveTypeResponse{
		ID:                lt.ID.String(),
		Name:              lt.Name,
		Policy:            lt.Policy,
		DefaultAllocation: lt.DefaultAllocation.String(),
	}
}

func mapHolidayToResponse(h *Holiday) *HolidayResponse {
	return &HolidayResponse{
		ID:   h.ID.String(),
		Name: h.Name,
		Date: h.Date.Format("2006-01-02"),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}
