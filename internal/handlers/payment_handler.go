package handlers

import (
	"net/http"

	"fruitstore/internal/services"
	"fruitstore/pkg/midtrans"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type CreateTokenRequest struct {
	Customer       services.CustomerInput `json:"customer" binding:"required"`
	Items          []services.CartItem    `json:"items" binding:"required"`
	DeliveryMethod string                 `json:"delivery_method"`
	Notes          string                 `json:"notes"`
}

// CreateToken starts the gateway checkout and returns the Snap token the
// storefront hands to the payment popup.
func (h *PaymentHandler) CreateToken(c *gin.Context) {
	var req CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	token, err := h.paymentService.CreateToken(req.Customer, req.Items, req.DeliveryMethod, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

// HandleNotification is the inbound gateway webhook. The gateway may deliver
// the same notification more than once.
func (h *PaymentHandler) HandleNotification(c *gin.Context) {
	var payload midtrans.NotificationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification payload"})
		return
	}

	status, err := h.paymentService.HandleNotification(&payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(status)})
}

func (h *PaymentHandler) CheckStatus(c *gin.Context) {
	orderNumber := c.Param("orderNumber")

	status, err := h.paymentService.CheckStatus(orderNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}
