package handlers

import (
	"github.com/adhunikethi/agritech-api/internal/services"
	"github.com/adhunikethi/agritech-api/internal/storage"
)

// Handlers holds all handler instances
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	User         *UserHandler
	Product      *ProductHandler
	Order        *OrderHandler
	Payment      *PaymentHandler
	Inventory    *InventoryHandler
	Notification *NotificationHandler
	Analytics    *AnalyticsHandler
	Audit        *AuditHandler
	Job          *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, store *storage.LocalStorage) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Auth:         NewAuthHandler(svcs.Auth, svcs.User),
		User:         NewUserHandler(svcs.User),
		Product:      NewProductHandler(svcs.Product, store),
		Order:        NewOrderHandler(svcs.Order),
		Payment:      NewPaymentHandler(svcs.Payment, svcs.Order),
		Inventory:    NewInventoryHandler(svcs.Inventory),
		Notification: NewNotificationHandler(svcs.Notification),
		Analytics:    NewAnalyticsHandler(svcs.Analytics, svcs.Export),
		Audit:        NewAuditHandler(svcs.Audit),
		Job:          NewJobHandler(svcs.Job),
	}
}
