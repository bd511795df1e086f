package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adhunikethi/agritech-api/internal/middleware"
	"github.com/adhunikethi/agritech-api/internal/models"
	"github.com/adhunikethi/agritech-api/internal/services"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// @Summary List Orders
// @Description Get a paginated list of orders
// @Tags Orders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param user_id query int false "Filter by customer"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /orders [get]
func (h *OrderHandler) Index(c *gin.Context) {
	query := parseListQuery(c)
	query.Filters["status"] = c.Query("status")

	// Non-admins only ever see their own orders
	if middleware.IsAdmin(c) {
		query.Filters["user_id"] = c.Query("user_id")
	} else {
		query.Filters["user_id"] = strconv.FormatUint(uint64(middleware.GetUserID(c)), 10)
	}

	orders, total, err := h.orderService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []models.OrderResponse
	for _, o := range orders {
		responses = append(responses, o.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Order
// @Description Get an order by ID with its line items
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.OrderResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *OrderHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	order, err := h.orderService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	if !middleware.IsAdmin(c) && order.UserID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order.ToResponse()})
}

type OrderLineRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	Items   []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
	Comment string             `json:"comment"`
}

// @Summary Create Order
// @Description Places a new order for the authenticated user
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest true "Order Data"
// @Success 201 {object} models.OrderResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order := &models.Order{
		UserID:    middleware.GetUserID(c),
		OrderDate: time.Now(),
	}
	if req.Comment != "" {
		order.Comment = &req.Comment
	}
	for _, item := range req.Items {
		order.OrderDetails = append(order.OrderDetails, models.OrderDetail{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if err := h.orderService.Create(c.Request.Context(), order); err != nil {
		if err == services.ErrInsufficientStock {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order.ToResponse()})
}

// @Summary Transition Order
// @Description Applies a fulfillment event (process, ship, deliver, cancel) to the order
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Param event path string true "Event name"
// @Success 200 {object} models.OrderResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /orders/{id}/{event} [post]
func (h *OrderHandler) Transition(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	event := c.Param("event")

	actorID := middleware.GetUserID(c)
	order, err := h.orderService.Transition(c.Request.Context(), uint(id), event, actorID)
	if err != nil {
		switch err {
		case services.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case services.ErrInvalidState:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order.ToResponse()})
}
