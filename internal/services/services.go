package services

import (
	"gorm.io/gorm"

	"github.com/adhunikethi/agritech-api/internal/config"
	"github.com/adhunikethi/agritech-api/internal/jobs"
	"github.com/adhunikethi/agritech-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Auth         *AuthService
	User         *UserService
	Product      *ProductService
	Order        *OrderService
	Payment      *PaymentService
	Inventory    *InventoryService
	Notification *NotificationService
	Analytics    *AnalyticsService
	Export       *ExportService
	Audit        *AuditService
	Job          *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config, db *gorm.DB) *Services {
	notificationSvc := NewNotificationService(repos.Notification, repos.User)
	auditSvc := NewAuditService(db)

	analyticsSvc := NewAnalyticsService(repos.Analytics, repos.Product, repos.Order, repos.User, repos.Payment, notificationSvc)
	jobSvc := NewJobService(worker)

	return &Services{
		Auth:         NewAuthService(repos.User, repos.RefreshToken, cfg),
		User:         NewUserService(repos.User, auditSvc),
		Product:      NewProductService(repos.Product, auditSvc),
		Order:        NewOrderService(repos.Order, repos.Product, repos.Payment, notificationSvc, auditSvc, analyticsSvc),
		Payment:      NewPaymentService(repos.Payment, auditSvc, analyticsSvc),
		Inventory:    NewInventoryService(repos.Inventory, notificationSvc, auditSvc),
		Notification: notificationSvc,
		Analytics:    analyticsSvc,
		Export:       NewExportService(analyticsSvc),
		Audit:        auditSvc,
		Job:          jobSvc,
	}
}
