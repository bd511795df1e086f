package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adhunikethi/agritech-api/internal/models"
	"github.com/adhunikethi/agritech-api/internal/repository"
)

// Mock repositories holding their records in memory
type stubOrderRepository struct {
	repository.OrderRepository
	orders map[uint]*models.Order
}

func newStubOrderRepository() *stubOrderRepository {
	return &stubOrderRepository{orders: make(map[uint]*models.Order)}
}

func (m *stubOrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *order
	return &cp, nil
}

func (m *stubOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == 0 {
		order.ID = uint(len(m.orders) + 1)
	}
	cp := *order
	m.orders[order.ID] = &cp
	return nil
}

func (m *stubOrderRepository) Update(ctx context.Context, order *models.Order) error {
	cp := *order
	m.orders[order.ID] = &cp
	return nil
}

func (m *stubOrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if order, ok := m.orders[id]; ok {
		order.Status = status
	}
	return nil
}

type stubProductRepository struct {
	repository.ProductRepository
	products map[uint]*models.Product
}

func newStubProductRepository(products ...models.Product) *stubProductRepository {
	repo := &stubProductRepository{products: make(map[uint]*models.Product)}
	for i := range products {
		p := products[i]
		repo.products[p.ID] = &p
	}
	return repo
}

func (m *stubProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *product
	return &cp, nil
}

func (m *stubProductRepository) Update(ctx context.Context, product *models.Product) error {
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func newOrderServiceForTest(orderRepo *stubOrderRepository, productRepo *stubProductRepository) (*OrderService, *mockNotificationRepository) {
	notifRepo := &mockNotificationRepository{}
	userRepo := &mockUserRepository{
		mockFindAdmins: func(ctx context.Context) ([]models.User, error) {
			return []models.User{{ID: 99, Name: "Admin", Status: models.StatusActive, UserType: models.UserTypeAdmin}}, nil
		},
	}
	notificationSvc := NewNotificationService(notifRepo, userRepo)
	auditSvc := NewAuditService(nil)
	analyticsSvc := newAnalyticsServiceForTest(newMockAnalyticsRepository(), &mockProductRepository{}, &mockOrderRepository{}, userRepo, &mockPaymentRepository{})

	svc := NewOrderService(orderRepo, productRepo, &mockPaymentRepository{}, notificationSvc, auditSvc, analyticsSvc)
	return svc, notifRepo
}

func TestOrderCreate(t *testing.T) {
	productRepo := newStubProductRepository(
		models.Product{ID: 1, Name: "Tomato Seeds", Price: 50, Stock: 10, Status: models.ProductStatusPublished},
		models.Product{ID: 2, Name: "Hand Trowel", Price: 120, Stock: 3, Status: models.ProductStatusPublished},
	)
	orderRepo := newStubOrderRepository()
	svc, notifRepo := newOrderServiceForTest(orderRepo, productRepo)

	order := &models.Order{
		UserID:    1,
		OrderDate: time.Now(),
		OrderDetails: []models.OrderDetail{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	}

	require.NoError(t, svc.Create(context.Background(), order))

	// total = 2*50 + 1*120
	assert.InDelta(t, 220.0, order.TotalPrice, 1e-9)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	// line items snapshot catalog data
	assert.Equal(t, "Tomato Seeds", order.OrderDetails[0].ProductName)
	assert.InDelta(t, 50.0, order.OrderDetails[0].Price, 1e-9)

	// stock was decremented
	p1, _ := productRepo.FindByID(context.Background(), 1)
	assert.Equal(t, 8, p1.Stock)
	p2, _ := productRepo.FindByID(context.Background(), 2)
	assert.Equal(t, 2, p2.Stock)

	// admins were notified of the new order
	require.NotEmpty(t, notifRepo.created)
	assert.Equal(t, uint(99), notifRepo.created[0].UserID)
}

func TestOrderCreateRejectsInsufficientStock(t *testing.T) {
	productRepo := newStubProductRepository(
		models.Product{ID: 1, Name: "Tomato Seeds", Price: 50, Stock: 1, Status: models.ProductStatusPublished},
	)
	svc, _ := newOrderServiceForTest(newStubOrderRepository(), productRepo)

	order := &models.Order{
		UserID:       1,
		OrderDate:    time.Now(),
		OrderDetails: []models.OrderDetail{{ProductID: 1, Quantity: 5}},
	}

	err := svc.Create(context.Background(), order)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestOrderCreateRejectsUnpublishedProduct(t *testing.T) {
	productRepo := newStubProductRepository(
		models.Product{ID: 1, Name: "Tomato Seeds", Price: 50, Stock: 10, Status: models.ProductStatusUnpublished},
	)
	svc, _ := newOrderServiceForTest(newStubOrderRepository(), productRepo)

	order := &models.Order{
		UserID:       1,
		OrderDate:    time.Now(),
		OrderDetails: []models.OrderDetail{{ProductID: 1, Quantity: 1}},
	}

	err := svc.Create(context.Background(), order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestOrderTransition(t *testing.T) {
	productRepo := newStubProductRepository(
		models.Product{ID: 1, Name: "Tomato Seeds", Price: 50, Stock: 10, Status: models.ProductStatusPublished},
	)
	orderRepo := newStubOrderRepository()
	svc, _ := newOrderServiceForTest(orderRepo, productRepo)

	order := &models.Order{
		UserID:       1,
		OrderDate:    time.Now(),
		OrderDetails: []models.OrderDetail{{ProductID: 1, Quantity: 4}},
	}
	require.NoError(t, svc.Create(context.Background(), order))

	updated, err := svc.Transition(context.Background(), order.ID, "process", 99)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)

	updated, err = svc.Transition(context.Background(), order.ID, "ship", 99)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	// shipped orders cannot be cancelled
	_, err = svc.Transition(context.Background(), order.ID, "cancel", 99)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestOrderCancelRestocks(t *testing.T) {
	productRepo := newStubProductRepository(
		models.Product{ID: 1, Name: "Tomato Seeds", Price: 50, Stock: 10, Status: models.ProductStatusPublished},
	)
	orderRepo := newStubOrderRepository()
	svc, _ := newOrderServiceForTest(orderRepo, productRepo)

	order := &models.Order{
		UserID:       1,
		OrderDate:    time.Now(),
		OrderDetails: []models.OrderDetail{{ProductID: 1, Quantity: 4}},
	}
	require.NoError(t, svc.Create(context.Background(), order))

	p, _ := productRepo.FindByID(context.Background(), 1)
	require.Equal(t, 6, p.Stock)

	updated, err := svc.Transition(context.Background(), order.ID, "cancel", 99)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)

	p, _ = productRepo.FindByID(context.Background(), 1)
	assert.Equal(t, 10, p.Stock)
}

func TestOrderTransitionUnknownEvent(t *testing.T) {
	orderRepo := newStubOrderRepository()
	orderRepo.orders[1] = &models.Order{ID: 1, Status: models.OrderStatusPending}
	svc, _ := newOrderServiceForTest(orderRepo, newStubProductRepository())

	_, err := svc.Transition(context.Background(), 1, "teleport", 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown order event")
}
