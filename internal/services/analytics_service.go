package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adhunikethi/agritech-api/internal/analytics"
	"github.com/adhunikethi/agritech-api/internal/models"
	"github.com/adhunikethi/agritech-api/internal/repository"
	"github.com/adhunikethi/agritech-api/pkg/logger"
)

const (
	dashboardCacheKey = "analytics_dashboard"
	dashboardCacheTTL = 15 * time.Minute
)

// AnalyticsService computes and caches the admin dashboard snapshot
type AnalyticsService struct {
	analyticsRepo   repository.AnalyticsRepository
	productRepo     repository.ProductRepository
	orderRepo       repository.OrderRepository
	userRepo        repository.UserRepository
	paymentRepo     repository.PaymentRepository
	notificationSvc *NotificationService
}

func NewAnalyticsService(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	notificationSvc *NotificationService,
) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo:   analyticsRepo,
		productRepo:     productRepo,
		orderRepo:       orderRepo,
		userRepo:        userRepo,
		paymentRepo:     paymentRepo,
		notificationSvc: notificationSvc,
	}
}

// GetDashboard returns the dashboard snapshot, serving from cache when a
// fresh entry exists and recomputing otherwise.
func (s *AnalyticsService) GetDashboard(ctx context.Context) (*models.DashboardSnapshot, error) {
	cached, err := s.analyticsRepo.GetCache(ctx, dashboardCacheKey)
	if err == nil && cached != nil {
		var snapshot models.DashboardSnapshot
		if err := json.Unmarshal(cached.Data, &snapshot); err == nil {
			return &snapshot, nil
		}
	}

	snapshot, err := s.computeDashboard(ctx)
	if err != nil {
		return nil, err
	}

	_ = s.analyticsRepo.SetCache(ctx, dashboardCacheKey, snapshot, dashboardCacheTTL)

	return snapshot, nil
}

// computeDashboard loads the four collections concurrently and runs one
// aggregation pass over them. A failure on any of the four loads fails the
// whole computation; partial dashboards are worse than an error.
func (s *AnalyticsService) computeDashboard(ctx context.Context) (*models.DashboardSnapshot, error) {
	var (
		products []models.Product
		orders   []models.Order
		users    []models.User
		payments []models.Payment
	)

	errs := make(chan error, 4)

	go func() {
		var err error
		products, err = s.productRepo.FindAll(ctx)
		if err != nil {
			err = fmt.Errorf("loading products: %w", err)
		}
		errs <- err
	}()
	go func() {
		var err error
		orders, err = s.orderRepo.FindAll(ctx)
		if err != nil {
			err = fmt.Errorf("loading orders: %w", err)
		}
		errs <- err
	}()
	go func() {
		var err error
		users, err = s.userRepo.FindAll(ctx)
		if err != nil {
			err = fmt.Errorf("loading users: %w", err)
		}
		errs <- err
	}()
	go func() {
		var err error
		payments, err = s.paymentRepo.FindAll(ctx)
		if err != nil {
			err = fmt.Errorf("loading payments: %w", err)
		}
		errs <- err
	}()

	var firstErr error
	for i := 0; i < 4; i++ {
		if err := <-errs; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	snapshot := analytics.Aggregate(products, orders, users, payments)
	snapshot.GeneratedAt = time.Now()
	return snapshot, nil
}

// InvalidateDashboard drops the cached snapshot so the next read recomputes
func (s *AnalyticsService) InvalidateDashboard(ctx context.Context) {
	if err := s.analyticsRepo.InvalidateCache(ctx, dashboardCacheKey); err != nil {
		logger.Error("failed to invalidate dashboard cache", "error", err)
	}
}

// RefreshCache recomputes the dashboard snapshot in the background and prunes
// expired cache rows. Run from the scheduler.
func (s *AnalyticsService) RefreshCache(ctx context.Context) error {
	logger.Info("[AnalyticsService] Refreshing dashboard cache in background...")

	snapshot, err := s.computeDashboard(ctx)
	if err != nil {
		logger.Error("Failed to recompute dashboard", "error", err)
		if notifyErr := s.notificationSvc.NotifyAdmins(ctx,
			"Dashboard Refresh Failed",
			"The scheduled dashboard refresh did not complete. Figures may be stale.",
			models.NotificationTypeSystemError); notifyErr != nil {
			logger.Error("Failed to notify admins about dashboard refresh failure", "error", notifyErr)
		}
		return err
	}

	if err := s.analyticsRepo.SetCache(ctx, dashboardCacheKey, snapshot, dashboardCacheTTL); err != nil {
		logger.Error("Failed to store dashboard cache", "error", err)
		return err
	}

	_ = s.analyticsRepo.CleanExpiredCache(ctx)

	logger.Info("[AnalyticsService] Dashboard cache refresh completed.")
	return nil
}
