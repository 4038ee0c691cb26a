package auth_test

import (
	"context"
	"testing"

	"go-hrms/internal/auth"
	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	getByEmailFn func(ctx context.Context, email string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) GetAll(ctx context.Context, companyID uuid.UUID) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) ExistsInCompany(ctx context.Context, companyID, employeeID uuid.UUID) (bool, error) {
	return true, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return nil
}

func (f *fakeEmployeeRepository) WithTx(tx *gorm.DB) employee.Repository { return f }

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	companyID := uuid.New()
	employeeID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{
		getByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
			if email != "jane@acme.test" {
				return nil, gorm.ErrRecordNotFound
			}
			return &employee.Employee{
				ID:             employeeID,
				CompanyID:      companyID,
				EmployeeNumber: "EMP-000001",
				FullName:       "Jane Roe",
				Email:          email,
				PasswordHash:   string(hash),
				Designation:    "Engineer",
			}, nil
		},
	}
	svc := auth.NewService(repo, zap.NewNop())

	t.Run("success issues a signed token", func(t *testing.T) {
		resp, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@acme.test", Password: "s3cret-pass"})

		assert.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, employeeID.String(), resp.Employee.ID)

		token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		claims, ok := token.Claims.(jwt.MapClaims)
		assert.True(t, ok)
		assert.Equal(t, companyID.String(), claims["company_id"])
		assert.Equal(t, employeeID.String(), claims["employee_id"])
	})

	t.Run("negative wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@acme.test", Password: "nope"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ghost@acme.test", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}
