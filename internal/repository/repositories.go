package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	Product      ProductRepository
	Order        OrderRepository
	Payment      PaymentRepository
	Inventory    InventoryRepository
	Notification NotificationRepository
	RefreshToken RefreshTokenRepository
	Analytics    AnalyticsRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Product:      NewProductRepository(db),
		Order:        NewOrderRepository(db),
		Payment:      NewPaymentRepository(db),
		Inventory:    NewInventoryRepository(db),
		Notification: NewNotificationRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
		Analytics:    NewAnalyticsRepository(db),
	}
}
