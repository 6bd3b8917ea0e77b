package service

import (
	"context"
	"time"

	"github.com/homevista/homevista-backend/internal/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc        func(ctx context.Context, user *domain.User) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
	GetRoleFunc       func(ctx context.Context, id string) (domain.Role, error)
	CountFunc         func(ctx context.Context) (int64, error)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepository) GetRole(ctx context.Context, id string) (domain.Role, error) {
	if m.GetRoleFunc != nil {
		return m.GetRoleFunc(ctx, id)
	}
	return "", nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	CreateFunc            func(ctx context.Context, session *domain.Session, ttl time.Duration) error
	GetByRefreshTokenFunc func(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteFunc            func(ctx context.Context, refreshToken string) error
	DeleteByUserIDFunc    func(ctx context.Context, userID string) error
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session, ttl)
	}
	return nil
}

func (m *MockSessionRepository) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if m.GetByRefreshTokenFunc != nil {
		return m.GetByRefreshTokenFunc(ctx, refreshToken)
	}
	return nil, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, refreshToken string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, refreshToken)
	}
	return nil
}

func (m *MockSessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if m.DeleteByUserIDFunc != nil {
		return m.DeleteByUserIDFunc(ctx, userID)
	}
	return nil
}

// MockPropertyRepository is a mock implementation of PropertyRepository
type MockPropertyRepository struct {
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Property, error)
	ListByTypeFunc func(ctx context.Context, propertyType domain.PropertyType) ([]*domain.Property, error)
	ListFunc       func(ctx context.Context) ([]*domain.Property, error)
	CountFunc      func(ctx context.Context) (int64, error)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPropertyRepository) ListByType(ctx context.Context, propertyType domain.PropertyType) ([]*domain.Property, error) {
	if m.ListByTypeFunc != nil {
		return m.ListByTypeFunc(ctx, propertyType)
	}
	return []*domain.Property{}, nil
}

func (m *MockPropertyRepository) List(ctx context.Context) ([]*domain.Property, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*domain.Property{}, nil
}

func (m *MockPropertyRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockBookingRepository is a mock implementation of BookingRepository
type MockBookingRepository struct {
	CreateFunc       func(ctx context.Context, booking *domain.Booking) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Booking, error)
	ListFunc         func(ctx context.Context, limit, offset int) ([]*domain.Booking, error)
	ListRecentFunc   func(ctx context.Context, limit int) ([]*domain.Booking, error)
	CountFunc        func(ctx context.Context) (int64, error)
	AmountsFunc      func(ctx context.Context) ([]*float64, error)
	UpdateStatusFunc func(ctx context.Context, id string, status domain.BookingStatus) error
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, booking)
	}
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBookingRepository) List(ctx context.Context, limit, offset int) ([]*domain.Booking, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*domain.Booking{}, nil
}

func (m *MockBookingRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Booking, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return []*domain.Booking{}, nil
}

func (m *MockBookingRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockBookingRepository) Amounts(ctx context.Context) ([]*float64, error) {
	if m.AmountsFunc != nil {
		return m.AmountsFunc(ctx)
	}
	return []*float64{}, nil
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

// MockSessionGateway is a mock implementation of SessionGateway
type MockSessionGateway struct {
	GetSessionFunc func(ctx context.Context) (*domain.Session, error)
	SignOutFunc    func(ctx context.Context) error
}

func (m *MockSessionGateway) GetSession(ctx context.Context) (*domain.Session, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx)
	}
	return nil, nil
}

func (m *MockSessionGateway) SignOut(ctx context.Context) error {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx)
	}
	return nil
}
