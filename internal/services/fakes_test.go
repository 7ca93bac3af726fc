package services

import (
	"time"

	"fruitstore/internal/models"
	"fruitstore/pkg/midtrans"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*models.Customer)}
}

func (r *fakeCustomerRepo) Create(customer *models.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	customer.CreatedAt = time.Now()
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(id uuid.UUID) (*models.Customer, error) {
	if c, ok := r.customers[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCustomerRepo) GetByEmail(email string) (*models.Customer, error) {
	for _, c := range r.customers {
		if c.Email != nil && *c.Email == email {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCustomerRepo) GetFirstByPhone(phone string) (*models.Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCustomerRepo) Update(customer *models.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetAll() ([]models.Customer, error) {
	all := make([]models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		all = append(all, *c)
	}
	return all, nil
}

type fakeFruitRepo struct {
	fruits map[uuid.UUID]*models.Fruit
}

func newFakeFruitRepo() *fakeFruitRepo {
	return &fakeFruitRepo{fruits: make(map[uuid.UUID]*models.Fruit)}
}

func (r *fakeFruitRepo) add(name, price string, stock int) *models.Fruit {
	fruit := &models.Fruit{ID: uuid.New(), Name: name, Price: price, Stock: stock}
	r.fruits[fruit.ID] = fruit
	return fruit
}

func (r *fakeFruitRepo) Create(fruit *models.Fruit) error {
	if fruit.ID == uuid.Nil {
		fruit.ID = uuid.New()
	}
	r.fruits[fruit.ID] = fruit
	return nil
}

func (r *fakeFruitRepo) GetByID(id uuid.UUID) (*models.Fruit, error) {
	if f, ok := r.fruits[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFruitRepo) GetAll() ([]models.Fruit, error) {
	all := make([]models.Fruit, 0, len(r.fruits))
	for _, f := range r.fruits {
		all = append(all, *f)
	}
	return all, nil
}

func (r *fakeFruitRepo) Update(fruit *models.Fruit) error {
	r.fruits[fruit.ID] = fruit
	return nil
}

func (r *fakeFruitRepo) UpdateStock(id uuid.UUID, stock int) error {
	f, ok := r.fruits[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.Stock = stock
	return nil
}

func (r *fakeFruitRepo) Delete(id uuid.UUID) error {
	delete(r.fruits, id)
	return nil
}

type fakeStockHistoryRepo struct {
	entries []models.StockHistory
}

func (r *fakeStockHistoryRepo) Create(entry *models.StockHistory) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeStockHistoryRepo) GetByFruitID(fruitID uuid.UUID) ([]models.StockHistory, error) {
	var out []models.StockHistory
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].FruitID == fruitID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*models.Order)}
}

func (r *fakeOrderRepo) Create(order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
	}
	order.CreatedAt = time.Now()
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(id uuid.UUID) (*models.Order, error) {
	if o, ok := r.orders[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) GetAll() ([]models.Order, error) {
	all := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		all = append(all, *o)
	}
	return all, nil
}

func (r *fakeOrderRepo) UpdateStatus(id uuid.UUID, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) UpdateStatusAndPayment(id uuid.UUID, status, payment string) error {
	o, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	o.Payment = payment
	return nil
}

type fakeAnalyticsRepo struct {
	rows map[time.Time]*models.Analytics
}

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{rows: make(map[time.Time]*models.Analytics)}
}

func (r *fakeAnalyticsRepo) Create(analytics *models.Analytics) error {
	if analytics.ID == uuid.Nil {
		analytics.ID = uuid.New()
	}
	r.rows[analytics.Date] = analytics
	return nil
}

func (r *fakeAnalyticsRepo) GetByDate(date time.Time) (*models.Analytics, error) {
	if row, ok := r.rows[date]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAnalyticsRepo) Update(analytics *models.Analytics) error {
	r.rows[analytics.Date] = analytics
	return nil
}

func (r *fakeAnalyticsRepo) GetByDateRange(startDate, endDate time.Time) ([]models.Analytics, error) {
	var out []models.Analytics
	for _, row := range r.rows {
		if !row.Date.Before(startDate) && !row.Date.After(endDate) {
			out = append(out, *row)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// fakeViews records every invalidation signal.
type fakeViews struct {
	invalidated []string
}

func (v *fakeViews) Invalidate(views ...string) error {
	v.invalidated = append(v.invalidated, views...)
	return nil
}

// fakeGateway returns scripted responses and captures the last parameter.
type fakeGateway struct {
	lastParam    *midtrans.SnapRequest
	snapResponse *midtrans.SnapResponse
	snapErr      error
	status       *midtrans.TransactionStatus
	statusErr    error
}

func (g *fakeGateway) CreateTransaction(param *midtrans.SnapRequest) (*midtrans.SnapResponse, error) {
	g.lastParam = param
	if g.snapErr != nil {
		return nil, g.snapErr
	}
	return g.snapResponse, nil
}

func (g *fakeGateway) Notification(payload *midtrans.NotificationPayload) (*midtrans.TransactionStatus, error) {
	if g.statusErr != nil {
		return nil, g.statusErr
	}
	return g.status, nil
}

func (g *fakeGateway) TransactionStatus(orderID string) (*midtrans.TransactionStatus, error) {
	if g.statusErr != nil {
		return nil, g.statusErr
	}
	return g.status, nil
}
