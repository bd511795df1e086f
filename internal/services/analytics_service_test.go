package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adhunikethi/agritech-api/internal/models"
	"github.com/adhunikethi/agritech-api/internal/repository"
)

// Mock AnalyticsRepository backed by an in-memory map
type mockAnalyticsRepository struct {
	repository.AnalyticsRepository
	entries     map[string][]byte
	setCalls    int
	invalidated []string
}

func newMockAnalyticsRepository() *mockAnalyticsRepository {
	return &mockAnalyticsRepository{entries: make(map[string][]byte)}
}

func (m *mockAnalyticsRepository) GetCache(ctx context.Context, key string) (*models.AnalyticsCache, error) {
	data, ok := m.entries[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.AnalyticsCache{CacheKey: key, Data: data, ExpiresAt: time.Now().Add(time.Minute)}, nil
}

func (m *mockAnalyticsRepository) SetCache(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	m.entries[key] = jsonData
	m.setCalls++
	return nil
}

func (m *mockAnalyticsRepository) InvalidateCache(ctx context.Context, key string) error {
	delete(m.entries, key)
	m.invalidated = append(m.invalidated, key)
	return nil
}

func (m *mockAnalyticsRepository) CleanExpiredCache(ctx context.Context) error { return nil }

// Mocks for the four collection loads
type mockProductRepository struct {
	repository.ProductRepository
	mockFindAll func(ctx context.Context) ([]models.Product, error)
	findAllHits int
}

func (m *mockProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	m.findAllHits++
	if m.mockFindAll != nil {
		return m.mockFindAll(ctx)
	}
	return nil, nil
}

type mockOrderRepository struct {
	repository.OrderRepository
	mockFindAll func(ctx context.Context) ([]models.Order, error)
}

func (m *mockOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	if m.mockFindAll != nil {
		return m.mockFindAll(ctx)
	}
	return nil, nil
}

type mockUserRepository struct {
	repository.UserRepository
	mockFindAll    func(ctx context.Context) ([]models.User, error)
	mockFindAdmins func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	if m.mockFindAll != nil {
		return m.mockFindAll(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) FindAdmins(ctx context.Context) ([]models.User, error) {
	if m.mockFindAdmins != nil {
		return m.mockFindAdmins(ctx)
	}
	return nil, nil
}

type mockPaymentRepository struct {
	repository.PaymentRepository
	mockFindAll func(ctx context.Context) ([]models.Payment, error)
}

func (m *mockPaymentRepository) FindAll(ctx context.Context) ([]models.Payment, error) {
	if m.mockFindAll != nil {
		return m.mockFindAll(ctx)
	}
	return nil, nil
}

type mockNotificationRepository struct {
	repository.NotificationRepository
	created []models.Notification
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	m.created = append(m.created, *n)
	return nil
}

func (m *mockNotificationRepository) CreateBatch(ctx context.Context, ns []models.Notification) error {
	m.created = append(m.created, ns...)
	return nil
}

func newAnalyticsServiceForTest(
	cacheRepo *mockAnalyticsRepository,
	productRepo *mockProductRepository,
	orderRepo *mockOrderRepository,
	userRepo *mockUserRepository,
	paymentRepo *mockPaymentRepository,
) *AnalyticsService {
	notificationSvc := NewNotificationService(&mockNotificationRepository{}, userRepo)
	return NewAnalyticsService(cacheRepo, productRepo, orderRepo, userRepo, paymentRepo, notificationSvc)
}

func TestGetDashboardComputesAndCaches(t *testing.T) {
	cacheRepo := newMockAnalyticsRepository()
	productRepo := &mockProductRepository{
		mockFindAll: func(ctx context.Context) ([]models.Product, error) {
			return []models.Product{{ID: 1, Name: "Tomato Seeds", Price: 50}}, nil
		},
	}
	orderRepo := &mockOrderRepository{
		mockFindAll: func(ctx context.Context) ([]models.Order, error) {
			return []models.Order{
				{ID: 1, UserID: 1, TotalPrice: 100, OrderDate: time.Now(), Status: models.OrderStatusPending,
					OrderDetails: []models.OrderDetail{{OrderID: 1, ProductID: 1, Quantity: 2}}},
			}, nil
		},
	}
	userRepo := &mockUserRepository{
		mockFindAll: func(ctx context.Context) ([]models.User, error) {
			return []models.User{{ID: 1, Name: "Asha", Status: models.StatusActive, UserType: models.UserTypeFarmer}}, nil
		},
	}
	paymentRepo := &mockPaymentRepository{
		mockFindAll: func(ctx context.Context) ([]models.Payment, error) {
			return []models.Payment{{ID: 1, Amount: 100, PaymentStatus: models.PaymentStatusCompleted, PaymentMethod: models.PaymentMethodUPI}}, nil
		},
	}

	svc := newAnalyticsServiceForTest(cacheRepo, productRepo, orderRepo, userRepo, paymentRepo)

	snapshot, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.InDelta(t, 100.0, snapshot.Overview.TotalRevenue, 1e-9)
	assert.Equal(t, 1, snapshot.Overview.TotalOrders)
	assert.Equal(t, 1, snapshot.Overview.TotalUsers)
	assert.False(t, snapshot.GeneratedAt.IsZero())

	// snapshot was written through to the cache
	assert.Equal(t, 1, cacheRepo.setCalls)
	assert.Contains(t, cacheRepo.entries, dashboardCacheKey)
}

func TestGetDashboardServesFromCache(t *testing.T) {
	cacheRepo := newMockAnalyticsRepository()
	cached := &models.DashboardSnapshot{
		Overview:    models.DashboardOverview{TotalRevenue: 999},
		GeneratedAt: time.Now(),
	}
	require.NoError(t, cacheRepo.SetCache(context.Background(), dashboardCacheKey, cached, time.Minute))
	cacheRepo.setCalls = 0

	productRepo := &mockProductRepository{}
	svc := newAnalyticsServiceForTest(cacheRepo, productRepo, &mockOrderRepository{}, &mockUserRepository{}, &mockPaymentRepository{})

	snapshot, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 999.0, snapshot.Overview.TotalRevenue, 1e-9)
	// a cache hit never touches the collections
	assert.Zero(t, productRepo.findAllHits)
	assert.Zero(t, cacheRepo.setCalls)
}

func TestGetDashboardFailsWhenAnyLoadFails(t *testing.T) {
	cacheRepo := newMockAnalyticsRepository()
	orderRepo := &mockOrderRepository{
		mockFindAll: func(ctx context.Context) ([]models.Order, error) {
			return nil, errors.New("connection reset")
		},
	}

	svc := newAnalyticsServiceForTest(cacheRepo, &mockProductRepository{}, orderRepo, &mockUserRepository{}, &mockPaymentRepository{})

	_, err := svc.GetDashboard(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading orders")
	assert.Zero(t, cacheRepo.setCalls)
}

func TestInvalidateDashboard(t *testing.T) {
	cacheRepo := newMockAnalyticsRepository()
	require.NoError(t, cacheRepo.SetCache(context.Background(), dashboardCacheKey, &models.DashboardSnapshot{}, time.Minute))

	svc := newAnalyticsServiceForTest(cacheRepo, &mockProductRepository{}, &mockOrderRepository{}, &mockUserRepository{}, &mockPaymentRepository{})
	svc.InvalidateDashboard(context.Background())

	assert.NotContains(t, cacheRepo.entries, dashboardCacheKey)
}

func TestRefreshCacheStoresFreshSnapshot(t *testing.T) {
	cacheRepo := newMockAnalyticsRepository()
	svc := newAnalyticsServiceForTest(cacheRepo, &mockProductRepository{}, &mockOrderRepository{}, &mockUserRepository{}, &mockPaymentRepository{})

	require.NoError(t, svc.RefreshCache(context.Background()))
	assert.Contains(t, cacheRepo.entries, dashboardCacheKey)
}

func TestRefreshCacheReturnsComputeErrorWhenNotificationFails(t *testing.T) {
	cacheRepo := newMockAnalyticsRepository()
	orderRepo := &mockOrderRepository{
		mockFindAll: func(ctx context.Context) ([]models.Order, error) {
			return nil, errors.New("connection reset")
		},
	}
	userRepo := &mockUserRepository{
		mockFindAdmins: func(ctx context.Context) ([]models.User, error) {
			return nil, errors.New("admins unavailable")
		},
	}

	svc := newAnalyticsServiceForTest(cacheRepo, &mockProductRepository{}, orderRepo, userRepo, &mockPaymentRepository{})

	// The compute failure is reported even when the admin alert also fails
	err := svc.RefreshCache(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading orders")
	assert.Zero(t, cacheRepo.setCalls)
}
