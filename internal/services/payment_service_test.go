package services

import (
	"errors"
	"testing"
	"time"

	"fruitstore/internal/models"
	"fruitstore/pkg/midtrans"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentTestEnv struct {
	customers *fakeCustomerRepo
	fruits    *fakeFruitRepo
	history   *fakeStockHistoryRepo
	orders    *fakeOrderRepo
	analytics *fakeAnalyticsRepo
	views     *fakeViews
	gateway   *fakeGateway
	svc       PaymentService
}

func newPaymentTestEnv() *paymentTestEnv {
	env := &paymentTestEnv{
		customers: newFakeCustomerRepo(),
		fruits:    newFakeFruitRepo(),
		history:   &fakeStockHistoryRepo{},
		orders:    newFakeOrderRepo(),
		analytics: newFakeAnalyticsRepo(),
		views:     &fakeViews{},
		gateway: &fakeGateway{
			snapResponse: &midtrans.SnapResponse{
				Token:       "snap-token-123",
				RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/snap-token-123",
			},
		},
	}
	customerService := NewCustomerService(env.customers)
	stockService := NewStockService(env.fruits, env.history)
	analyticsService := NewAnalyticsService(env.analytics)
	env.svc = NewPaymentService(env.orders, customerService, stockService, analyticsService,
		env.gateway, env.views, "https://toko-buah.example.com")
	return env
}

// seedProcessingOrder creates an order the way CreateToken would, so webhook
// tests start from a realistic PROCESSING state.
func (env *paymentTestEnv) seedProcessingOrder(t *testing.T, stock int) (*models.Order, *models.Fruit) {
	t.Helper()
	fruit := env.fruits.add("Jeruk Mandarin", "Rp 35.000/kg", stock)

	token, err := env.svc.CreateToken(validCustomer(), []CartItem{
		{FruitID: fruit.ID, Name: fruit.Name, Price: "Rp 35.000", Quantity: 2},
	}, "express", "")
	require.NoError(t, err)

	order, err := env.orders.GetByID(token.OrderID)
	require.NoError(t, err)
	return order, fruit
}

func TestCreateTokenPersistsOrderAndBuildsParameter(t *testing.T) {
	env := newPaymentTestEnv()
	fruit := env.fruits.add("Jeruk Mandarin", "Rp 35.000/kg", 10)

	token, err := env.svc.CreateToken(validCustomer(), []CartItem{
		{FruitID: fruit.ID, Name: fruit.Name, Price: "Rp 35.000", Quantity: 2},
	}, "express", "leave at door")
	require.NoError(t, err)

	assert.Equal(t, "snap-token-123", token.Token)
	assert.NotEmpty(t, token.RedirectURL)

	// The order exists before payment confirmation, with placeholder method.
	order, err := env.orders.GetByID(token.OrderID)
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderProcessing), order.Status)
	assert.Equal(t, string(models.PaymentTransfer), order.Payment)
	assert.Equal(t, 90000.0, order.Total)

	// Stock is untouched until the webhook confirms payment.
	assert.Equal(t, 10, env.fruits.fruits[fruit.ID].Stock)

	param := env.gateway.lastParam
	require.NotNil(t, param)
	assert.Equal(t, order.OrderNumber, param.TransactionDetails.OrderID)
	assert.Equal(t, 90000.0, param.TransactionDetails.GrossAmount)

	// Delivery is carried as its own item line.
	require.Len(t, param.ItemDetails, 2)
	assert.Equal(t, "delivery", param.ItemDetails[1].ID)
	assert.Equal(t, 20000.0, param.ItemDetails[1].Price)

	require.NotNil(t, param.CustomerDetails)
	assert.Equal(t, "Budi", param.CustomerDetails.FirstName)
	assert.Equal(t, "Santoso", param.CustomerDetails.LastName)

	require.NotNil(t, param.Callbacks)
	assert.Equal(t, "https://toko-buah.example.com/payment/finish", param.Callbacks.Finish)
}

func TestCreateTokenGatewayFailureLeavesOrderPersisted(t *testing.T) {
	env := newPaymentTestEnv()
	env.gateway.snapErr = errors.New("connection refused")
	fruit := env.fruits.add("Jeruk Mandarin", "Rp 35.000/kg", 10)

	_, err := env.svc.CreateToken(validCustomer(), []CartItem{
		{FruitID: fruit.ID, Price: "Rp 35.000", Quantity: 1},
	}, "standard", "")

	require.ErrorIs(t, err, ErrGateway)
	// The order was already inserted before the token call and survives it.
	assert.Len(t, env.orders.orders, 1)
}

func TestNotificationSettlementCompletesOrder(t *testing.T) {
	env := newPaymentTestEnv()
	order, fruit := env.seedProcessingOrder(t, 10)

	env.gateway.status = &midtrans.TransactionStatus{
		OrderID:           order.OrderNumber,
		TransactionStatus: "settlement",
		PaymentType:       "bank_transfer",
	}

	status, err := env.svc.HandleNotification(&midtrans.NotificationPayload{OrderID: order.OrderNumber})
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, status)

	updated, _ := env.orders.GetByID(order.ID)
	assert.Equal(t, string(models.OrderCompleted), updated.Status)
	assert.Equal(t, string(models.PaymentTransfer), updated.Payment)

	// Exactly one decrement pass over the order's items.
	assert.Equal(t, 8, env.fruits.fruits[fruit.ID].Stock)
	assert.Len(t, env.history.entries, 1)

	// Analytics recorded on completion.
	row, err := env.analytics.GetByDate(truncateToMidnight(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, 90000.0, row.TotalSales)
	assert.Equal(t, 1, row.OrderCount)
}

func TestNotificationCaptureChallengeKeepsProcessing(t *testing.T) {
	env := newPaymentTestEnv()
	order, fruit := env.seedProcessingOrder(t, 10)

	env.gateway.status = &midtrans.TransactionStatus{
		OrderID:           order.OrderNumber,
		TransactionStatus: "capture",
		FraudStatus:       "challenge",
		PaymentType:       "credit_card",
	}

	status, err := env.svc.HandleNotification(&midtrans.NotificationPayload{OrderID: order.OrderNumber})
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, status)

	// Challenged transactions touch neither stock nor analytics.
	assert.Equal(t, 10, env.fruits.fruits[fruit.ID].Stock)
	assert.Empty(t, env.analytics.rows)
}

func TestNotificationCaptureAcceptCompletesOrder(t *testing.T) {
	env := newPaymentTestEnv()
	order, fruit := env.seedProcessingOrder(t, 10)

	env.gateway.status = &midtrans.TransactionStatus{
		OrderID:           order.OrderNumber,
		TransactionStatus: "capture",
		FraudStatus:       "accept",
		PaymentType:       "credit_card",
	}

	status, err := env.svc.HandleNotification(&midtrans.NotificationPayload{OrderID: order.OrderNumber})
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, status)

	updated, _ := env.orders.GetByID(order.ID)
	assert.Equal(t, string(models.PaymentCreditCard), updated.Payment)
	assert.Equal(t, 8, env.fruits.fruits[fruit.ID].Stock)
}

func TestNotificationDenyCancelsOrder(t *testing.T) {
	for _, transactionStatus := range []string{"deny", "cancel", "expire"} {
		t.Run(transactionStatus, func(t *testing.T) {
			env := newPaymentTestEnv()
			order, fruit := env.seedProcessingOrder(t, 10)

			env.gateway.status = &midtrans.TransactionStatus{
				OrderID:           order.OrderNumber,
				TransactionStatus: transactionStatus,
				PaymentType:       "gopay",
			}

			status, err := env.svc.HandleNotification(&midtrans.NotificationPayload{OrderID: order.OrderNumber})
			require.NoError(t, err)
			assert.Equal(t, models.OrderCancelled, status)

			updated, _ := env.orders.GetByID(order.ID)
			assert.Equal(t, string(models.OrderCancelled), updated.Status)
			assert.Equal(t, string(models.PaymentDigitalWallet), updated.Payment)
			assert.Equal(t, 10, env.fruits.fruits[fruit.ID].Stock)
			assert.Empty(t, env.analytics.rows)
		})
	}
}

func TestNotificationPendingKeepsProcessing(t *testing.T) {
	env := newPaymentTestEnv()
	order, _ := env.seedProcessingOrder(t, 10)

	env.gateway.status = &midtrans.TransactionStatus{
		OrderID:           order.OrderNumber,
		TransactionStatus: "pending",
		PaymentType:       "qris",
	}

	status, err := env.svc.HandleNotification(&midtrans.NotificationPayload{OrderID: order.OrderNumber})
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, status)
}

func TestNotificationUnknownOrderMutatesNothing(t *testing.T) {
	env := newPaymentTestEnv()
	_, fruit := env.seedProcessingOrder(t, 10)

	env.gateway.status = &midtrans.TransactionStatus{
		OrderID:           "ORD-000000-0000",
		TransactionStatus: "settlement",
	}

	_, err := env.svc.HandleNotification(&midtrans.NotificationPayload{OrderID: "ORD-000000-0000"})
	require.ErrorIs(t, err, ErrOrderNotFound)

	assert.Equal(t, 10, env.fruits.fruits[fruit.ID].Stock)
	assert.Empty(t, env.analytics.rows)
}

func TestNotificationGatewayFailure(t *testing.T) {
	env := newPaymentTestEnv()
	env.gateway.statusErr = errors.New("timeout")

	_, err := env.svc.HandleNotification(&midtrans.NotificationPayload{OrderID: "ORD-250101-0001"})
	assert.ErrorIs(t, err, ErrGateway)
}

func TestMapPaymentType(t *testing.T) {
	cases := map[string]models.PaymentType{
		"credit_card":   models.PaymentCreditCard,
		"bank_transfer": models.PaymentTransfer,
		"echannel":      models.PaymentTransfer,
		"bca_va":        models.PaymentTransfer,
		"gopay":         models.PaymentDigitalWallet,
		"shopeepay":     models.PaymentDigitalWallet,
		"qris":          models.PaymentDigitalWallet,
		"akulaku":       models.PaymentTransfer, // unrecognized defaults to transfer
		"":              models.PaymentTransfer,
	}
	for gatewayType, want := range cases {
		assert.Equal(t, want, mapPaymentType(gatewayType), "payment_type %q", gatewayType)
	}
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Budi Santoso Wijaya")
	assert.Equal(t, "Budi", first)
	assert.Equal(t, "Santoso Wijaya", last)

	first, last = splitName("Budi")
	assert.Equal(t, "Budi", first)
	assert.Equal(t, "", last)
}

func TestCheckStatusPassesThrough(t *testing.T) {
	env := newPaymentTestEnv()
	env.gateway.status = &midtrans.TransactionStatus{
		OrderID:           "ORD-250101-0001",
		TransactionStatus: "settlement",
	}

	status, err := env.svc.CheckStatus("ORD-250101-0001")
	require.NoError(t, err)
	assert.Equal(t, "settlement", status.TransactionStatus)
}

func TestCreateTokenRejectsEmptyCart(t *testing.T) {
	env := newPaymentTestEnv()

	_, err := env.svc.CreateToken(validCustomer(), nil, "standard", "")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, env.orders.orders)
}
