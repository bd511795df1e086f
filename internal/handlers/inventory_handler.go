package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adhunikethi/agritech-api/internal/middleware"
	"github.com/adhunikethi/agritech-api/internal/models"
	"github.com/adhunikethi/agritech-api/internal/services"
)

type InventoryHandler struct {
	inventoryService *services.InventoryService
}

func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// @Summary List Inventory
// @Description Get a paginated list of warehouse items
// @Tags Inventory
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by name, SKU or supplier"
// @Param category query string false "Filter by category"
// @Param location query string false "Filter by storage location"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /inventory [get]
func (h *InventoryHandler) Index(c *gin.Context) {
	query := parseListQuery(c)
	query.Filters["category"] = c.Query("category")
	query.Filters["location"] = c.Query("location")

	items, total, err := h.inventoryService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Inventory Item
// @Description Get an inventory item by ID
// @Tags Inventory
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} models.InventoryItem
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /inventory/{id} [get]
func (h *InventoryHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	item, err := h.inventoryService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// @Summary Get Inventory Item by SKU
// @Description Looks up a warehouse item by its SKU
// @Tags Inventory
// @Produce json
// @Param sku path string true "Item SKU"
// @Success 200 {object} models.InventoryItem
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /inventory/sku/{sku} [get]
func (h *InventoryHandler) ShowBySKU(c *gin.Context) {
	item, err := h.inventoryService.FindBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

type InventoryItemRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	SKU          string  `json:"sku" binding:"required"`
	Quantity     int     `json:"quantity" binding:"gte=0"`
	ReorderPoint int     `json:"reorderPoint" binding:"gte=0"`
	Unit         string  `json:"unit"`
	CostPrice    float64 `json:"costPrice" binding:"gte=0"`
	SellingPrice float64 `json:"sellingPrice" binding:"gte=0"`
	Supplier     string  `json:"supplier"`
	Location     string  `json:"location"`
}

// @Summary Create Inventory Item
// @Description Registers a new warehouse item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body InventoryItemRequest true "Item Data"
// @Success 201 {object} models.InventoryItem
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &models.InventoryItem{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		SKU:          req.SKU,
		Quantity:     req.Quantity,
		ReorderPoint: req.ReorderPoint,
		Unit:         req.Unit,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		Supplier:     req.Supplier,
		Location:     req.Location,
	}

	actorID := middleware.GetUserID(c)
	if err := h.inventoryService.Create(c.Request.Context(), item, actorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// @Summary Update Inventory Item
// @Description Updates warehouse item metadata. Quantities change through movements.
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body InventoryItemRequest true "Item Data"
// @Success 200 {object} models.InventoryItem
// @Security BearerAuth
// @Router /inventory/{id} [put]
func (h *InventoryHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	item, err := h.inventoryService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	var req InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Category = req.Category
	item.SKU = req.SKU
	item.ReorderPoint = req.ReorderPoint
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	item.CostPrice = req.CostPrice
	item.SellingPrice = req.SellingPrice
	item.Supplier = req.Supplier
	item.Location = req.Location

	actorID := middleware.GetUserID(c)
	if err := h.inventoryService.Update(c.Request.Context(), item, actorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// @Summary Delete Inventory Item
// @Description Removes a warehouse item
// @Tags Inventory
// @Param id path int true "Item ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	actorID := middleware.GetUserID(c)
	if err := h.inventoryService.Delete(c.Request.Context(), uint(id), actorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}

type MovementRequest struct {
	Type      string `json:"type" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Reference string `json:"reference"`
	Notes     string `json:"notes"`
}

// @Summary Record Stock Movement
// @Description Applies an in/out/adjustment movement to an item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body MovementRequest true "Movement Data"
// @Success 200 {object} models.InventoryItem
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /inventory/{id}/movements [post]
func (h *InventoryHandler) RecordMovement(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movement := &models.StockMovement{
		ItemID:    uint(id),
		Type:      req.Type,
		Quantity:  req.Quantity,
		Reference: req.Reference,
		Notes:     req.Notes,
	}

	actorID := middleware.GetUserID(c)
	item, err := h.inventoryService.RecordMovement(c.Request.Context(), movement, actorID)
	if err != nil {
		switch err {
		case services.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		case services.ErrInsufficientStock:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// @Summary List Stock Movements
// @Description Get the movement history of an item
// @Tags Inventory
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /inventory/{id}/movements [get]
func (h *InventoryHandler) Movements(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	movements, err := h.inventoryService.ListMovements(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": movements})
}

// @Summary List Low Stock Items
// @Description Get items at or below their reorder point
// @Tags Inventory
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /inventory/low_stock [get]
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.inventoryService.FindLowStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
