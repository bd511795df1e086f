package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adhunikethi/agritech-api/internal/middleware"
	"github.com/adhunikethi/agritech-api/internal/models"
	"github.com/adhunikethi/agritech-api/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	orderService   *services.OrderService
}

func NewPaymentHandler(paymentService *services.PaymentService, orderService *services.OrderService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		orderService:   orderService,
	}
}

// @Summary List Payments
// @Description Get a paginated list of payments
// @Tags Payments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param payment_status query string false "Filter by settlement status"
// @Param payment_method query string false "Filter by method (CARD, UPI, COD, WALLET)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /payments [get]
func (h *PaymentHandler) Index(c *gin.Context) {
	query := parseListQuery(c)
	query.Filters["payment_status"] = c.Query("payment_status")
	query.Filters["payment_method"] = c.Query("payment_method")

	if middleware.IsAdmin(c) {
		query.Filters["user_id"] = c.Query("user_id")
	} else {
		query.Filters["user_id"] = strconv.FormatUint(uint64(middleware.GetUserID(c)), 10)
	}

	payments, total, err := h.paymentService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Payment
// @Description Get a payment by ID
// @Tags Payments
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} models.Payment
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *PaymentHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	payment, err := h.paymentService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}

	if !middleware.IsAdmin(c) && payment.UserID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// @Summary Get Payment by Transaction ID
// @Description Looks up a payment by its gateway transaction reference
// @Tags Payments
// @Produce json
// @Param transaction_id path string true "Transaction ID"
// @Success 200 {object} models.Payment
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /payments/transaction/{transaction_id} [get]
func (h *PaymentHandler) ShowByTransaction(c *gin.Context) {
	payment, err := h.paymentService.FindByTransactionID(c.Request.Context(), c.Param("transaction_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

type CreatePaymentRequest struct {
	OrderID       uint    `json:"orderId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	TransactionID string  `json:"transactionId"`
}

// @Summary Create Payment
// @Description Records a payment and links it to an order
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body CreatePaymentRequest true "Payment Data"
// @Success 201 {object} models.Payment
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := BindNestedOrFlat(c, "payment", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.OrderID == 0 || req.Amount <= 0 || req.PaymentMethod == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId, amount and paymentMethod are required"})
		return
	}

	switch req.PaymentMethod {
	case models.PaymentMethodCard, models.PaymentMethodUPI, models.PaymentMethodCOD, models.PaymentMethodWallet:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method"})
		return
	}

	actorID := middleware.GetUserID(c)

	order, err := h.orderService.FindByID(c.Request.Context(), req.OrderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if !middleware.IsAdmin(c) && order.UserID != actorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	payment := &models.Payment{
		UserID:        order.UserID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
	}

	if err := h.paymentService.Create(c.Request.Context(), payment, actorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.orderService.AttachPayment(c.Request.Context(), order.ID, payment.ID, actorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

type PaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// @Summary Set Payment Status
// @Description Moves a payment to COMPLETED, PENDING, FAILED or REFUNDED
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path int true "Payment ID"
// @Param request body PaymentStatusRequest true "Status"
// @Success 200 {object} models.Payment
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /payments/{id}/status [patch]
func (h *PaymentHandler) SetStatus(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	var req PaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middleware.GetUserID(c)
	payment, err := h.paymentService.SetStatus(c.Request.Context(), uint(id), req.Status, actorID)
	if err != nil {
		switch err {
		case services.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		case services.ErrInvalidState:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}
