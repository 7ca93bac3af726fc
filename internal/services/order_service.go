package services

import (
	"errors"
	"fmt"
	"log"

	"fruitstore/internal/models"
	"fruitstore/internal/repository"
	"fruitstore/pkg/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is one storefront cart line. Price carries the catalog display
// string and is parsed at order time.
type CartItem struct {
	FruitID  uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    string    `json:"price"`
	Quantity int       `json:"quantity"`
}

// ViewInvalidator signals downstream cached views to refresh after a
// mutation. Failures are best-effort for every caller.
type ViewInvalidator interface {
	Invalidate(views ...string) error
}

type OrderService interface {
	Create(customer CustomerInput, items []CartItem, payment, deliveryMethod, notes string) (*models.Order, error)
	GetByID(id uuid.UUID) (*models.Order, error)
	GetAll() ([]models.Order, error)
	UpdateStatus(id uuid.UUID, status string) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	customers CustomerService
	stock     StockService
	analytics AnalyticsService
	views     ViewInvalidator
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	customers CustomerService,
	stock StockService,
	analytics AnalyticsService,
	views ViewInvalidator,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		customers: customers,
		stock:     stock,
		analytics: analytics,
		views:     views,
	}
}

func validateCart(items []CartItem) error {
	if len(items) == 0 {
		return newValidationError(map[string]string{"items": "cart must contain at least one item"})
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return newValidationError(map[string]string{"items": "item quantity must be a positive integer"})
		}
	}
	return nil
}

// Create runs the direct (cash/manual) order workflow: upsert the customer,
// price the cart, persist order and items in one create, then apply the
// best-effort side effects. Once the insert succeeds the order stands even if
// stock, analytics or cache invalidation degrade.
func (s *orderService) Create(customer CustomerInput, items []CartItem, payment, deliveryMethod, notes string) (*models.Order, error) {
	if !models.ValidPaymentType(payment) {
		return nil, newValidationError(map[string]string{"payment": "unknown payment method"})
	}
	if err := validateCart(items); err != nil {
		return nil, err
	}

	saved, err := s.customers.Upsert(customer)
	if err != nil {
		return nil, err
	}

	deliveryCost := pricing.DeliveryCost(deliveryMethod)

	total := deliveryCost
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		price := pricing.ExtractPrice(item.Price)
		subtotal := price * float64(item.Quantity)
		total += subtotal

		orderItems = append(orderItems, models.OrderItem{
			FruitID:  item.FruitID,
			Quantity: item.Quantity,
			Price:    price,
			Subtotal: subtotal,
		})
	}

	order := &models.Order{
		OrderNumber: pricing.GenerateOrderNumber(),
		CustomerID:  saved.ID,
		Total:       total,
		Payment:     payment,
		Status:      string(models.OrderProcessing),
		Notes:       notes,
		Items:       orderItems,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	order.Customer = saved

	// Side effects below are best-effort relative to the insert above.
	stockItems := make([]StockItem, 0, len(order.Items))
	for _, item := range order.Items {
		stockItems = append(stockItems, StockItem{FruitID: item.FruitID, Quantity: item.Quantity})
	}
	if result := s.stock.DecrementForOrder(stockItems); result.Partial() {
		log.Printf("Order %s: stock decrement skipped %d item(s)", order.OrderNumber, len(result.Skipped))
	}

	if err := s.analytics.Record(order.Total); err != nil {
		log.Printf("Order %s: failed to update analytics: %v", order.OrderNumber, err)
	}

	if err := s.views.Invalidate("orders", "inventory"); err != nil {
		log.Printf("Order %s: failed to invalidate views: %v", order.OrderNumber, err)
	}

	return order, nil
}

func (s *orderService) GetByID(id uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetAll() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

func (s *orderService) UpdateStatus(id uuid.UUID, status string) error {
	if !models.ValidOrderStatus(status) {
		return newValidationError(map[string]string{"status": "unknown order status"})
	}

	if _, err := s.orderRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return err
	}

	if err := s.views.Invalidate("orders"); err != nil {
		log.Printf("Order %s: failed to invalidate views: %v", id, err)
	}
	return nil
}
