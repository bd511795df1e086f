package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adhunikethi/agritech-api/internal/middleware"
	"github.com/adhunikethi/agritech-api/internal/models"
	"github.com/adhunikethi/agritech-api/internal/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// @Summary List Notifications
// @Description Get the authenticated user's notifications
// @Tags Notifications
// @Produce json
// @Param unread query bool false "Only unread notifications"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) Index(c *gin.Context) {
	userID := middleware.GetUserID(c)
	unreadOnly := c.Query("unread") == "true" || c.Query("unread") == "1"

	notifications, err := h.notificationService.FindByUser(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]models.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, notifications[i].ToResponse())
	}

	unread, _ := h.notificationService.CountUnread(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{
		"notifications": responses,
		"unread_count":  unread,
	})
}

// @Summary Mark Notification Read
// @Description Marks one notification as read
// @Tags Notifications
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	userID := middleware.GetUserID(c)

	if err := h.notificationService.MarkAsRead(c.Request.Context(), uint(id), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification read"})
}

// @Summary Mark All Notifications Read
// @Description Marks every unread notification of the user as read
// @Tags Notifications
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /notifications/read_all [patch]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.notificationService.MarkAllAsRead(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all notifications read"})
}
