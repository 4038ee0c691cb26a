package leave

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hrms/internal/company"
	companyerrors "go-hrms/internal/company/errors"
	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/leavebank"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/notify"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/leave_service_mock.go -package=mock . Service
type Service interface {
	Apply(ctx context.Context, companyID string, req ApplyLeaveRequest) (*ApplyLeaveResponse, error)
	Transition(ctx context.Context, companyID, leaveID, action string) (*LeaveApplicationResponse, error)
	GetAll(ctx context.Context, companyID string, employeeID string) ([]LeaveApplicationResponse, error)
	GetByID(ctx context.Context, companyID, leaveID string) (*LeaveApplicationResponse, error)
}

type service struct {
	db           *gorm.DB
	repo         Repository
	companyRepo  company.Repository
	employeeRepo employee.Repository
	bankRepo     leavebank.Repository
	notifier     notify.Notifier
	logger       *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	companyRepo company.Repository,
	employeeRepo employee.Repository,
	bankRepo leavebank.Repository,
	notifier notify.Notifier,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		companyRepo:  companyRepo,
		employeeRepo: employeeRepo,
		bankRepo:     bankRepo,
		notifier:     notifier,
		logger:       l,
	}
}

// Apply validates the request, runs the allocation engine and persists the
// resulting segments atomically. Notification failures never undo a
// committed application.
func (s *service) Apply(ctx context.Context, companyID string, req ApplyLeaveRequest) (*ApplyLeaveResponse, error) {
	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.companyRepo.GetByID(ctx, companyUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	employeeUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	empl, err := s.employeeRepo.GetByID(ctx, companyUID, employeeUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotInCompany
		}
		return nil, err
	}

	leaveTypeUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return nil, companyerrors.ErrLeaveTypeNotFound
	}
	lt, err := s.companyRepo.GetLeaveType(ctx, companyUID, leaveTypeUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrLeaveTypeNotFound
		}
		return nil, err
	}

	if empl.ReportingManagerID == nil {
		return nil, leaveerrors.ErrManagerNotAssigned
	}
	manager, err := s.employeeRepo.GetByID(ctx, companyUID, *empl.ReportingManagerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrManagerNotFound
		}
		return nil, err
	}

	from, err := time.Parse(dateLayout, req.FromDate)
	if err != nil {
		return nil, leaveerrors.ErrInvalidDateRange
	}
	to, err := time.Parse(dateLayout, req.ToDate)
	if err != nil {
		return nil, leaveerrors.ErrInvalidDateRange
	}
	if from.After(to) {
		return nil, leaveerrors.ErrInvalidDateRange
	}

	overlaps, err := s.repo.HasOverlappingActive(ctx, companyUID, employeeUID, from, to)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, leaveerrors.ErrOverlappingLeave
	}

	var duration decimal.Decimal
	if req.Duration != "" {
		duration, err = decimal.NewFromString(req.Duration)
		if err != nil || !duration.IsPositive() {
			return nil, leaveerrors.ErrInvalidDuration
		}
	}

	// A sub-day request on a single date bypasses the allocation engine
	// entirely; it never counts against the ledger until approved.
	one := decimal.NewFromInt(1)
	if from.Equal(to) && !duration.IsZero() && duration.LessThan(one) {
		return s.applyHalfDay(ctx, comp, empl, manager, lt, from, duration, req.Reason)
	}

	if lt.Policy != company.PolicyLOP {
		if _, err := s.bankRepo.Get(ctx, companyUID, employeeUID, leaveTypeUID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, leaveerrors.ErrLeaveBankNotFound
			}
			return nil, err
		}
	}

	holidays, err := s.companyRepo.HolidayDates(ctx, companyUID, from, to)
	if err != nil {
		return nil, err
	}
	days := NewWorkCalendar(holidays).WorkingDays(from, to)
	if len(days) == 0 {
		return nil, leaveerrors.ErrNoWorkingDays
	}

	split, err := s.splitByPolicy(ctx, comp, empl, lt, days, from)
	if err != nil {
		return nil, err
	}

	segments := buildSegments(split)

	lopTypeID := lt.ID
	if len(split.LOP) > 0 && lt.Policy != company.PolicyLOP {
		lopType, err := s.companyRepo.GetLeaveTypeByPolicy(ctx, companyUID, company.PolicyLOP)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, leaveerrors.ErrLOPTypeNotConfigured
			}
			return nil, err
		}
		lopTypeID = lopType.ID
	}

	apps := make([]*LeaveApplication, 0, len(segments))
	for _, seg := range segments {
		typeID := lt.ID
		if seg.IsLOP {
			typeID = lopTypeID
		}
		count := decimal.NewFromInt(int64(seg.Days))
		apps = append(apps, &LeaveApplication{
			CompanyID:      companyUID,
			EmployeeID:     employeeUID,
			LeaveTypeID:    typeID,
			SubmittedTo:    manager.ID,
			FromDate:       seg.From,
			ToDate:         seg.To,
			Reason:         req.Reason,
			Status:         StatusPending,
			LeaveDuration:  count,
			LeaveDaysTaken: count,
		})
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).CreateBatch(ctx, apps); err != nil {
		s.logger.Error("persist leave applications failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	allowedTotal := decimal.NewFromInt(int64(len(split.Allowed)))
	lopTotal := decimal.NewFromInt(int64(len(split.LOP)))

	resp := &ApplyLeaveResponse{
		Message: applyMessage(allowedTotal, lopTotal),
		IsLOP:   len(split.LOP) > 0,
		Data:    make(map[string]LeaveApplicationResponse, len(apps)),
	}
	for i, app := range apps {
		prefix := "allowed_leave_"
		if segments[i].IsLOP {
			prefix = "lop_leave_"
		}
		resp.Data[prefix+app.FromDate.Format(dateLayout)] = *mapToResponse(app, lt.Name, segments[i].IsLOP)
	}

	totalDays := allowedTotal.Add(lopTotal)
	s.notifyApplied(ctx, comp, empl, manager, lt.Name, from, to, req.Reason, totalDays)

	s.logger.Info("leave applied",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("allowed_days", allowedTotal.String()),
		zap.String("lop_days", lopTotal.String()),
	)

	return resp, nil
}

func (s *service) applyHalfDay(
	ctx context.Context,
	comp *company.Company,
	empl *employee.Employee,
	manager *employee.Employee,
	lt *company.LeaveType,
	day time.Time,
	duration decimal.Decimal,
	reason string,
) (*ApplyLeaveResponse, error) {
	app := &LeaveApplication{
		CompanyID:      comp.ID,
		EmployeeID:     empl.ID,
		LeaveTypeID:    lt.ID,
		SubmittedTo:    manager.ID,
		FromDate:       day,
		ToDate:         day,
		Reason:         reason,
		Status:         StatusPending,
		LeaveDuration:  duration,
		LeaveDaysTaken: duration,
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.notifyApplied(ctx, comp, empl, manager, lt.Name, day, day, reason, duration)

	return &ApplyLeaveResponse{
		Message: applyMessage(duration, decimal.Zero),
		IsLOP:   false,
		Data: map[string]LeaveApplicationResponse{
			"allowed_leave_" + day.Format(dateLayout): *mapToResponse(app, lt.Name, false),
		},
	}, nil
}

func (s *service) splitByPolicy(
	ctx context.Context,
	comp *company.Company,
	empl *employee.Employee,
	lt *company.LeaveType,
	days []time.Time,
	from time.Time,
) (daySplit, error) {
	if lt.Policy == company.PolicyLOP {
		return daySplit{LOP: days}, nil
	}

	bank, err := s.bankRepo.Get(ctx, comp.ID, empl.ID, lt.ID)
	if err != nil {
		return daySplit{}, err
	}

	switch lt.Policy {
	case company.PolicyYearlyCumulative:
		yearStart := time.Date(from.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		yearEnd := time.Date(from.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		taken, err := s.repo.SumDaysTaken(ctx, comp.ID, empl.ID, lt.ID, &yearStart, &yearEnd)
		if err != nil {
			return daySplit{}, err
		}
		remaining := bank.TotalAllowed.Sub(taken)
		return splitYearlyCumulative(days, remaining), nil

	default:
		taken, err := s.repo.SumDaysTaken(ctx, comp.ID, empl.ID, lt.ID, nil, nil)
		if err != nil {
			return daySplit{}, err
		}
		remaining := bank.TotalAllowed.Sub(taken)

		monthlyTaken := make(map[monthKey]decimal.Decimal)
		for _, d := range days {
			key := monthKey{Year: d.Year(), Month: d.Month()}
			if _, ok := monthlyTaken[key]; ok {
				continue
			}
			monthStart := time.Date(key.Year, key.Month, 1, 0, 0, 0, 0, time.UTC)
			monthEnd := monthStart.AddDate(0, 1, -1)
			takenInMonth, err := s.repo.SumDaysTaken(ctx, comp.ID, empl.ID, lt.ID, &monthStart, &monthEnd)
			if err != nil {
				return daySplit{}, err
			}
			monthlyTaken[key] = takenInMonth
		}

		return splitMonthlyCapped(days, monthlyTaken, remaining), nil
	}
}

var transitionTargets = map[string]string{
	ActionApprove: StatusApproved,
	ActionReject:  StatusRejected,
	ActionRevoke:  StatusRevoked,
	ActionCancel:  StatusCancelled,
}

func transitionAllowed(action, current string) bool {
	switch action {
	case ActionApprove, ActionCancel:
		return current == StatusPending
	case ActionReject:
		return current == StatusPending || current == StatusApproved
	case ActionRevoke:
		return current == StatusApproved
	default:
		return false
	}
}

// Transition moves an application through its lifecycle under a row lock.
// Approval debits the leave bank, revocation credits it back; rejection and
// cancellation leave the ledger untouched.
func (s *service) Transition(ctx context.Context, companyID, leaveID, action string) (*LeaveApplicationResponse, error) {
	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}
	leaveUID, err := uuid.Parse(leaveID)
	if err != nil {
		return nil, leaveerrors.ErrLeaveNotFound
	}

	target, ok := transitionTargets[action]
	if !ok {
		return nil, leaveerrors.ErrInvalidTransition
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	app, err := qtx.GetByIDForUpdate(ctx, companyUID, leaveUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}

	if !transitionAllowed(action, app.Status) {
		return nil, leaveerrors.ErrInvalidTransition
	}

	bankTx := s.bankRepo.WithTx(tx)
	switch action {
	case ActionApprove:
		if err := s.adjustBank(ctx, bankTx, app, app.LeaveDaysTaken.Neg()); err != nil {
			return nil, err
		}
	case ActionRevoke:
		if err := s.adjustBank(ctx, bankTx, app, app.LeaveDaysTaken); err != nil {
			return nil, err
		}
	}

	app.Status = target
	if err := qtx.Update(ctx, app); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.notifyTransition(ctx, companyUID, app, action)

	s.logger.Info("leave transitioned",
		zap.String("company_id", companyID),
		zap.String("leave_id", leaveID),
		zap.String("action", action),
		zap.String("status", app.Status),
	)

	var typeName string
	var isLOP bool
	if lt, err := s.companyRepo.GetLeaveType(ctx, companyUID, app.LeaveTypeID); err == nil {
		typeName = lt.Name
		isLOP = lt.Policy == company.PolicyLOP
	}

	return mapToResponse(app, typeName, isLOP), nil
}

// adjustBank moves the remaining balance by delta days, clamping at zero.
// Applications on bankless types (unpaid leave) are skipped.
func (s *service) adjustBank(ctx context.Context, bankRepo leavebank.Repository, app *LeaveApplication, delta decimal.Decimal) error {
	bank, err := bankRepo.GetForUpdate(ctx, app.CompanyID, app.EmployeeID, app.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	bank.Remaining = bank.Remaining.Add(delta)
	if bank.Remaining.IsNegative() {
		bank.Remaining = decimal.Zero
	}

	return bankRepo.Save(ctx, bank)
}

func (s *service) GetAll(ctx context.Context, companyID string, employeeID string) ([]LeaveApplicationResponse, error) {
	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	var employeeFilter *uuid.UUID
	if employeeID != "" {
		uid, err := uuid.Parse(employeeID)
		if err != nil {
			return nil, employeeerrors.ErrInvalidEmployeeID
		}
		employeeFilter = &uid
	}

	apps, err := s.repo.ListByCompany(ctx, companyUID, employeeFilter)
	if err != nil {
		return nil, err
	}

	types, err := s.companyRepo.ListLeaveTypes(ctx, companyUID)
	if err != nil {
		return nil, err
	}
	typeNames := make(map[uuid.UUID]string, len(types))
	lopTypes := make(map[uuid.UUID]bool, len(types))
	for _, lt := range types {
		typeNames[lt.ID] = lt.Name
		lopTypes[lt.ID] = lt.Policy == company.PolicyLOP
	}

	result := make([]LeaveApplicationResponse, 0, len(apps))
	for i := range apps {
		result = append(result, *mapToResponse(&apps[i], typeNames[apps[i].LeaveTypeID], lopTypes[apps[i].LeaveTypeID]))
	}
	return result, nil
}

func (s *service) GetByID(ctx context.Context, companyID, leaveID string) (*LeaveApplicationResponse, error) {
	companyUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}
	leaveUID, err := uuid.Parse(leaveID)
	if err != nil {
		return nil, leaveerrors.ErrLeaveNotFound
	}

	app, err := s.repo.GetByID(ctx, companyUID, leaveUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}

	var typeName string
	var isLOP bool
	if lt, err := s.companyRepo.GetLeaveType(ctx, companyUID, app.LeaveTypeID); err == nil {
		typeName = lt.Name
		isLOP = lt.Policy == company.PolicyLOP
	}

	return mapToResponse(app, typeName, isLOP), nil
}

func applyMessage(allowed, lop decimal.Decimal) string {
	msg := fmt.Sprintf("Leave applied with %s allowed leave days", allowed.String())
	if lop.IsPositive() {
		msg += fmt.Sprintf(" and %s Leave Without Pay (LOP) days.", lop.String())
	}
	return msg
}

func (s *service) notifyApplied(
	ctx context.Context,
	comp *company.Company,
	empl *employee.Employee,
	manager *employee.Employee,
	leaveType string,
	from, to time.Time,
	reason string,
	totalDays decimal.Decimal,
) {
	if s.notifier == nil {
		return
	}

	var body strings.Builder
	fmt.Fprintf(&body, "A new leave application has been submitted.\n\n")
	fmt.Fprintf(&body, "Leave Type: %s\n", leaveType)
	fmt.Fprintf(&body, "Employee: %s\n", empl.FullName)
	fmt.Fprintf(&body, "Designation: %s\n", empl.Designation)
	fmt.Fprintf(&body, "Period: %s to %s\n", from.Format(dateLayout), to.Format(dateLayout))
	fmt.Fprintf(&body, "Reason: %s\n", reason)
	fmt.Fprintf(&body, "Total Days: %s\n", totalDays.String())

	s.notifier.Enqueue(ctx, events.EmailRequestedEvent{
		EventType: events.EventTypeLeaveApplied,
		CompanyID: comp.ID.String(),
		Subject:   "New Leave Application",
		Body:      body.String(),
		To:        []string{comp.Email},
		Cc:        []string{manager.Email},
	})
}

func (s *service) notifyTransition(ctx context.Context, companyUID uuid.UUID, app *LeaveApplication, action string) {
	if s.notifier == nil {
		return
	}

	empl, err := s.employeeRepo.GetByID(ctx, companyUID, app.EmployeeID)
	if err != nil {
		s.logger.Warn("load employee for transition notification failed", zap.Error(err))
		return
	}

	// Cc the manager recorded when the leave was submitted, not whoever the
	// employee reports to now.
	var cc []string
	if app.SubmittedTo != uuid.Nil {
		if manager, err := s.employeeRepo.GetByID(ctx, companyUID, app.SubmittedTo); err == nil {
			cc = []string{manager.Email}
		}
	}

	titled := cases.Title(language.English).String(pastTense(action))
	subject := fmt.Sprintf("Leave %s Notification for %s", titled, empl.FullName)

	var body strings.Builder
	fmt.Fprintf(&body, "Your leave application from %s to %s has been %s.\n",
		app.FromDate.Format(dateLayout), app.ToDate.Format(dateLayout), strings.ToLower(pastTense(action)))
	fmt.Fprintf(&body, "Days: %s\n", app.LeaveDaysTaken.String())

	s.notifier.Enqueue(ctx, events.EmailRequestedEvent{
		EventType: events.EventTypeLeaveStatusChanged,
		CompanyID: companyUID.String(),
		Subject:   subject,
		Body:      body.String(),
		To:        []string{empl.Email},
		Cc:        cc,
	})
}

func pastTense(action string) string {
	switch action {
	case ActionApprove:
		return "approved"
	case ActionReject:
		return "rejected"
	case ActionRevoke:
		return "revoked"
	case ActionCancel:
		return "cancelled"
	default:
		return action
	}
}

func mapToResponse(app *LeaveApplication, typeName string, isLOP bool) *LeaveApplicationResponse {
	var submittedTo string
	if app.SubmittedTo != uuid.Nil {
		submittedTo = app.SubmittedTo.String()
	}
	return &LeaveApplicationResponse{
		ID:             app.ID.String(),
		EmployeeID:     app.EmployeeID.String(),
		LeaveTypeID:    app.LeaveTypeID.String(),
		LeaveType:      typeName,
		SubmittedTo:    submittedTo,
		FromDate:       app.FromDate.Format(dateLayout),
		ToDate:         app.ToDate.Format(dateLayout),
		Reason:         app.Reason,
		Status:         app.Status,
		LeaveDuration:  app.LeaveDuration.String(),
		LeaveDaysTaken: app.LeaveDaysTaken.String(),
		IsLOP:          isLOP,
	}
}
