package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"fruitstore/internal/models"
	"fruitstore/internal/repository"
	"fruitstore/pkg/midtrans"
	"fruitstore/pkg/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentGateway is the contract the payment workflows need from the
// external processor.
type PaymentGateway interface {
	CreateTransaction(param *midtrans.SnapRequest) (*midtrans.SnapResponse, error)
	Notification(payload *midtrans.NotificationPayload) (*midtrans.TransactionStatus, error)
	TransactionStatus(orderID string) (*midtrans.TransactionStatus, error)
}

// PaymentToken is the checkout handoff to the gateway's payment page.
type PaymentToken struct {
	Token       string    `json:"token"`
	RedirectURL string    `json:"redirect_url"`
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
}

type PaymentService interface {
	CreateToken(customer CustomerInput, items []CartItem, deliveryMethod, notes string) (*PaymentToken, error)
	HandleNotification(payload *midtrans.NotificationPayload) (models.OrderStatus, error)
	CheckStatus(orderNumber string) (*midtrans.TransactionStatus, error)
}

type paymentService struct {
	orderRepo repository.OrderRepository
	customers CustomerService
	stock     StockService
	analytics AnalyticsService
	gateway   PaymentGateway
	views     ViewInvalidator
	baseURL   string
}

func NewPaymentService(
	orderRepo repository.OrderRepository,
	customers CustomerService,
	stock StockService,
	analytics AnalyticsService,
	gateway PaymentGateway,
	views ViewInvalidator,
	baseURL string,
) PaymentService {
	return &paymentService{
		orderRepo: orderRepo,
		customers: customers,
		stock:     stock,
		analytics: analytics,
		gateway:   gateway,
		views:     views,
		baseURL:   baseURL,
	}
}

// CreateToken runs the gateway checkout workflow. The order is persisted
// with a PROCESSING status and a TRANSFER placeholder before the token
// request, so it survives a failed gateway call; the webhook later settles
// the real payment method and status.
func (s *paymentService) CreateToken(customer CustomerInput, items []CartItem, deliveryMethod, notes string) (*PaymentToken, error) {
	if err := validateCart(items); err != nil {
		return nil, err
	}

	saved, err := s.customers.Upsert(customer)
	if err != nil {
		return nil, err
	}

	deliveryCost := pricing.DeliveryCost(deliveryMethod)

	subtotal := 0.0
	orderItems := make([]models.OrderItem, 0, len(items))
	itemDetails := make([]midtrans.ItemDetail, 0, len(items)+1)
	for _, item := range items {
		price := pricing.ExtractPrice(item.Price)
		itemSubtotal := price * float64(item.Quantity)
		subtotal += itemSubtotal

		orderItems = append(orderItems, models.OrderItem{
			FruitID:  item.FruitID,
			Quantity: item.Quantity,
			Price:    price,
			Subtotal: itemSubtotal,
		})
		itemDetails = append(itemDetails, midtrans.ItemDetail{
			ID:       item.FruitID.String(),
			Price:    price,
			Quantity: item.Quantity,
			Name:     item.Name,
			Category: "Fruits",
		})
	}
	total := subtotal + deliveryCost

	orderNumber := pricing.GenerateOrderNumber()
	order := &models.Order{
		OrderNumber: orderNumber,
		CustomerID:  saved.ID,
		Total:       total,
		Payment:     string(models.PaymentTransfer), // settled by the webhook
		Status:      string(models.OrderProcessing),
		Notes:       notes,
		Items:       orderItems,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if deliveryCost > 0 {
		label := "Express"
		if deliveryMethod == pricing.DeliverySameDay {
			label = "Same Day"
		}
		itemDetails = append(itemDetails, midtrans.ItemDetail{
			ID:       "delivery",
			Price:    deliveryCost,
			Quantity: 1,
			Name:     fmt.Sprintf("Delivery fee (%s)", label),
			Category: "Delivery",
		})
	}

	firstName, lastName := splitName(saved.Name)
	email := ""
	if saved.Email != nil {
		email = *saved.Email
	}
	address := &midtrans.Address{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     saved.Phone,
		Address:   saved.Address,
	}

	param := &midtrans.SnapRequest{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:     orderNumber,
			GrossAmount: total,
		},
		CreditCard:  &midtrans.CreditCard{Secure: true},
		ItemDetails: itemDetails,
		CustomerDetails: &midtrans.CustomerDetails{
			FirstName:       firstName,
			LastName:        lastName,
			Email:           email,
			Phone:           saved.Phone,
			BillingAddress:  address,
			ShippingAddress: address,
		},
		Callbacks: &midtrans.Callbacks{
			Finish:  s.baseURL + "/payment/finish",
			Error:   s.baseURL + "/payment/error",
			Pending: s.baseURL + "/payment/pending",
		},
	}

	resp, err := s.gateway.CreateTransaction(param)
	if err != nil {
		// The order above is already persisted; it stays PROCESSING until
		// the customer retries or an operator cancels it.
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	return &PaymentToken{
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
		OrderID:     order.ID,
		OrderNumber: orderNumber,
	}, nil
}

// HandleNotification processes an inbound gateway webhook. The payload is
// verified against the gateway's status endpoint; an unknown order number is
// an error and mutates nothing. Duplicate deliveries for an already-settled
// order re-apply the stock decrement, as the upstream store did.
func (s *paymentService) HandleNotification(payload *midtrans.NotificationPayload) (models.OrderStatus, error) {
	status, err := s.gateway.Notification(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}

	log.Printf("Payment notification received. Order: %s, transaction status: %s, fraud status: %s",
		status.OrderID, status.TransactionStatus, status.FraudStatus)

	order, err := s.orderRepo.GetByOrderNumber(status.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrOrderNotFound
		}
		return "", err
	}

	orderStatus := models.OrderProcessing
	decrementStock := false

	switch status.TransactionStatus {
	case "capture":
		if status.FraudStatus == "accept" {
			orderStatus = models.OrderCompleted
			decrementStock = true
		}
	case "settlement":
		orderStatus = models.OrderCompleted
		decrementStock = true
	case "pending":
		orderStatus = models.OrderProcessing
	case "deny", "cancel", "expire":
		orderStatus = models.OrderCancelled
	}

	if decrementStock {
		stockItems := make([]StockItem, 0, len(order.Items))
		for _, item := range order.Items {
			stockItems = append(stockItems, StockItem{FruitID: item.FruitID, Quantity: item.Quantity})
		}
		if result := s.stock.DecrementForOrder(stockItems); result.Partial() {
			log.Printf("Order %s: stock decrement skipped %d item(s)", order.OrderNumber, len(result.Skipped))
		}
	}

	paymentType := mapPaymentType(status.PaymentType)
	if err := s.orderRepo.UpdateStatusAndPayment(order.ID, string(orderStatus), string(paymentType)); err != nil {
		return "", fmt.Errorf("failed to update order status: %w", err)
	}

	if orderStatus == models.OrderCompleted {
		if err := s.analytics.Record(order.Total); err != nil {
			log.Printf("Order %s: failed to update analytics: %v", order.OrderNumber, err)
		}
	}

	if err := s.views.Invalidate("orders", "inventory"); err != nil {
		log.Printf("Order %s: failed to invalidate views: %v", order.OrderNumber, err)
	}

	return orderStatus, nil
}

func (s *paymentService) CheckStatus(orderNumber string) (*midtrans.TransactionStatus, error) {
	status, err := s.gateway.TransactionStatus(orderNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return status, nil
}

// mapPaymentType folds the gateway's payment sub-types into the store's
// payment methods, defaulting to TRANSFER for anything unrecognized.
func mapPaymentType(gatewayType string) models.PaymentType {
	switch gatewayType {
	case "credit_card":
		return models.PaymentCreditCard
	case "gopay", "shopeepay", "qris":
		return models.PaymentDigitalWallet
	case "bank_transfer", "echannel", "permata", "bca_va", "bni_va", "bri_va", "other_va":
		return models.PaymentTransfer
	default:
		return models.PaymentTransfer
	}
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
