package services

import (
	"context"
	"fmt"

	"github.com/adhunikethi/agritech-api/internal/models"
	"github.com/adhunikethi/agritech-api/internal/repository"
)

// ProductService handles product catalog business logic
type ProductService struct {
	repo     repository.ProductRepository
	auditSvc *AuditService
}

func NewProductService(repo repository.ProductRepository, auditSvc *AuditService) *ProductService {
	return &ProductService{
		repo:     repo,
		auditSvc: auditSvc,
	}
}

func (s *ProductService) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, query *repository.ListQuery) ([]models.Product, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *ProductService) Create(ctx context.Context, product *models.Product, actorID uint) error {
	if product.CategoryID != nil {
		if _, err := s.repo.FindCategoryByID(ctx, *product.CategoryID); err != nil {
			return ErrNotFound
		}
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "CREATE", "Product", product.ID, fmt.Sprintf("Product created: %s", product.Name), "", "")
}

func (s *ProductService) Update(ctx context.Context, product *models.Product, actorID uint) error {
	if err := s.repo.Update(ctx, product); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "UPDATE", "Product", product.ID, fmt.Sprintf("Product updated: %s", product.Name), "", "")
}

func (s *ProductService) Delete(ctx context.Context, id uint, actorID uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "DELETE", "Product", id, "Product removed", "", "")
}

// SetStatus publishes or unpublishes a product
func (s *ProductService) SetStatus(ctx context.Context, id uint, status string, actorID uint) (*models.Product, error) {
	if status != models.ProductStatusPublished && status != models.ProductStatusUnpublished {
		return nil, ErrInvalidState
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Status = status
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.auditSvc.Log(ctx, actorID, "SET_STATUS", "Product", id, fmt.Sprintf("Status changed to %s", status), "", "")
	return product, nil
}

func (s *ProductService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *ProductService) CreateCategory(ctx context.Context, category *models.Category, actorID uint) error {
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, "CREATE", "Category", category.ID, fmt.Sprintf("Category created: %s", category.CategoryName), "", "")
}
