package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adhunikethi/agritech-api/internal/middleware"
	"github.com/adhunikethi/agritech-api/internal/models"
	"github.com/adhunikethi/agritech-api/internal/services"
	"github.com/adhunikethi/agritech-api/internal/storage"
)

type ProductHandler struct {
	productService *services.ProductService
	store          *storage.LocalStorage
}

func NewProductHandler(productService *services.ProductService, store *storage.LocalStorage) *ProductHandler {
	return &ProductHandler{productService: productService, store: store}
}

// @Summary List Products
// @Description Get a paginated list of catalog products
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by name or description"
// @Param status query string false "Filter by status (PUBLISHED, UNPUBLISHED)"
// @Param category_id query int false "Filter by category"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /products [get]
func (h *ProductHandler) Index(c *gin.Context) {
	query := parseListQuery(c)
	query.Filters["status"] = c.Query("status")
	query.Filters["category_id"] = c.Query("category_id")

	products, total, err := h.productService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Product
// @Description Get a product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /products/{id} [get]
func (h *ProductHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	product, err := h.productService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	Image       string  `json:"image"`
	CategoryID  *uint   `json:"categoryId"`
}

// @Summary Create Product
// @Description Create a new catalog product
// @Tags Products
// @Accept json
// @Produce json
// @Param request body ProductRequest true "Product Data"
// @Success 201 {object} models.Product
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := BindNestedOrFlat(c, "product", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" || req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and a positive price are required"})
		return
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
	}

	actorID := middleware.GetUserID(c)
	if err := h.productService.Create(c.Request.Context(), product, actorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// @Summary Update Product
// @Description Update a catalog product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body ProductRequest true "Product Data"
// @Success 200 {object} models.Product
// @Security BearerAuth
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	product, err := h.productService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	var req ProductRequest
	if err := BindNestedOrFlat(c, "product", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.Stock >= 0 {
		product.Stock = req.Stock
	}
	if req.Image != "" {
		product.Image = req.Image
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}

	actorID := middleware.GetUserID(c)
	if err := h.productService.Update(c.Request.Context(), product, actorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// @Summary Delete Product
// @Description Removes a product from the catalog
// @Tags Products
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	actorID := middleware.GetUserID(c)
	if err := h.productService.Delete(c.Request.Context(), uint(id), actorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product removed"})
}

type ProductStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// @Summary Set Product Status
// @Description Publishes or unpublishes a product
// @Tags Products
// @Accept json
// @Param id path int true "Product ID"
// @Param request body ProductStatusRequest true "Status"
// @Success 200 {object} models.Product
// @Security BearerAuth
// @Router /products/{id}/status [patch]
func (h *ProductHandler) SetStatus(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req ProductStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middleware.GetUserID(c)
	product, err := h.productService.SetStatus(c.Request.Context(), uint(id), req.Status, actorID)
	if err != nil {
		if err == services.ErrInvalidState {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be PUBLISHED or UNPUBLISHED"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// @Summary Upload Product Image
// @Description Uploads an image for a product and stores its path on the record
// @Tags Products
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param image formData file true "Image file (jpeg, png or webp, max 5MB)"
// @Success 200 {object} models.Product
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /products/{id}/image [post]
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	product, err := h.productService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if header.Size > storage.MaxFileSize() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds the maximum allowed size"})
		return
	}
	if !storage.IsValidImageType(header.Header.Get("Content-Type")) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	relPath, err := h.store.Upload(file, header, "products")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Replace the previous image before saving the new path
	if product.Image != "" && h.store.Exists(product.Image) {
		_ = h.store.Delete(product.Image)
	}
	product.Image = relPath

	actorID := middleware.GetUserID(c)
	if err := h.productService.Update(c.Request.Context(), product, actorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// @Summary List Categories
// @Description Get all product categories
// @Tags Products
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /categories [get]
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.productService.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

type CategoryRequest struct {
	CategoryName string `json:"categoryName" binding:"required"`
}

// @Summary Create Category
// @Description Create a new product category
// @Tags Products
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category Data"
// @Success 201 {object} models.Category
// @Security BearerAuth
// @Router /categories [post]
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := &models.Category{CategoryName: req.CategoryName}
	actorID := middleware.GetUserID(c)
	if err := h.productService.CreateCategory(c.Request.Context(), category, actorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}
