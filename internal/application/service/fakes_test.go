package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/nippo-api/internal/domain/entity"
	"github.com/sangkips/nippo-api/internal/domain/repository"
	"github.com/sangkips/nippo-api/internal/domain/sales"
)

var errStoreDown = errors.New("connection refused")

func sameDay(a, b time.Time) bool {
	return a.Format(sales.DateLayout) == b.Format(sales.DateLayout)
}

type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{users: map[uuid.UUID]*entity.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) List(_ context.Context, _ *repository.UserFilterParams) ([]entity.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

type memStores struct {
	stores map[uuid.UUID]*entity.Store
}

func newMemStores(stores ...*entity.Store) *memStores {
	m := &memStores{stores: map[uuid.UUID]*entity.Store{}}
	for _, s := range stores {
		m.stores[s.ID] = s
	}
	return m
}

func (m *memStores) Create(_ context.Context, store *entity.Store) error {
	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	m.stores[store.ID] = store
	return nil
}

func (m *memStores) GetByID(_ context.Context, id uuid.UUID) (*entity.Store, error) {
	return m.stores[id], nil
}

func (m *memStores) Update(_ context.Context, store *entity.Store) error {
	m.stores[store.ID] = store
	return nil
}

func (m *memStores) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.stores, id)
	return nil
}

func (m *memStores) List(_ context.Context, _ *repository.StoreFilterParams) ([]entity.Store, int64, error) {
	out := make([]entity.Store, 0, len(m.stores))
	for _, s := range m.stores {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

type memProducts struct {
	products map[uuid.UUID]*entity.Product
}

func newMemProducts(products ...*entity.Product) *memProducts {
	m := &memProducts{products: map[uuid.UUID]*entity.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProducts) Create(_ context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	m.products[product.ID] = product
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	return m.products[id], nil
}

func (m *memProducts) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range m.products {
		if p.ProductCode == code {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memProducts) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProducts) Update(_ context.Context, product *entity.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *memProducts) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.products, id)
	return nil
}

func (m *memProducts) List(_ context.Context, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	out := make([]entity.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

type memVisits struct {
	mu        sync.Mutex
	visits    map[uuid.UUID]*entity.Visit
	lastSince time.Time
	lastLimit int
}

func newMemVisits(visits ...*entity.Visit) *memVisits {
	m := &memVisits{visits: map[uuid.UUID]*entity.Visit{}}
	for _, v := range visits {
		m.visits[v.ID] = v
	}
	return m
}

func (m *memVisits) Create(_ context.Context, visit *entity.Visit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if visit.ID == uuid.Nil {
		visit.ID = uuid.New()
	}
	m.visits[visit.ID] = visit
	return nil
}

func (m *memVisits) GetByID(_ context.Context, id uuid.UUID) (*entity.Visit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visits[id], nil
}

func (m *memVisits) Update(_ context.Context, visit *entity.Visit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visits[visit.ID] = visit
	return nil
}

func (m *memVisits) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.visits, id)
	return nil
}

func (m *memVisits) List(_ context.Context, _ *repository.VisitFilterParams) ([]entity.Visit, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Visit, 0, len(m.visits))
	for _, v := range m.visits {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (m *memVisits) Recent(_ context.Context, userID *uuid.UUID, since time.Time, limit int) ([]entity.Visit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSince, m.lastLimit = since, limit
	var out []entity.Visit
	for _, v := range m.visits {
		if userID != nil && v.UserID != *userID {
			continue
		}
		if v.VisitDate.Before(since) {
			continue
		}
		out = append(out, *v)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memVisits) ListByUserAndDate(_ context.Context, userID uuid.UUID, day time.Time) ([]entity.Visit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Visit
	for _, v := range m.visits {
		if v.UserID == userID && sameDay(v.VisitDate, day) {
			out = append(out, *v)
		}
	}
	return out, nil
}

type memOrders struct {
	mu           sync.Mutex
	orders       map[uuid.UUID]*entity.Order
	replaced     bool
	listByDayErr error
}

func newMemOrders(orders ...*entity.Order) *memOrders {
	m := &memOrders{orders: map[uuid.UUID]*entity.Order{}}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *memOrders) Create(_ context.Context, order *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	m.orders[order.ID] = order
	return nil
}

func (m *memOrders) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return m.GetWithDetails(context.Background(), id)
}

func (m *memOrders) GetWithDetails(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (m *memOrders) Update(_ context.Context, order *entity.Order, replaceItems bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaced = replaceItems
	stored := *order
	if !replaceItems {
		stored.Items = m.orders[order.ID].Items
	}
	m.orders[order.ID] = &stored
	return nil
}

func (m *memOrders) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.orders, id)
	return nil
}

func (m *memOrders) List(_ context.Context, _ *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (m *memOrders) ListByUserAndDate(_ context.Context, userID uuid.UUID, day time.Time) ([]entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listByDayErr != nil {
		return nil, m.listByDayErr
	}
	var out []entity.Order
	for _, o := range m.orders {
		if o.UserID == userID && sameDay(o.OrderDate, day) {
			out = append(out, *o)
		}
	}
	return out, nil
}

type memReports struct {
	reports map[uuid.UUID]*entity.DailyReport
}

func newMemReports() *memReports {
	return &memReports{reports: map[uuid.UUID]*entity.DailyReport{}}
}

func (m *memReports) Create(_ context.Context, report *entity.DailyReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	m.reports[report.ID] = report
	return nil
}

func (m *memReports) GetByID(_ context.Context, id uuid.UUID) (*entity.DailyReport, error) {
	r, ok := m.reports[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memReports) GetByUserAndDate(_ context.Context, userID uuid.UUID, day time.Time) (*entity.DailyReport, error) {
	for _, r := range m.reports {
		if r.UserID == userID && sameDay(r.ReportDate, day) {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memReports) Update(_ context.Context, report *entity.DailyReport) error {
	cp := *report
	m.reports[report.ID] = &cp
	return nil
}

func (m *memReports) List(_ context.Context, _ *repository.DailyReportFilterParams) ([]entity.DailyReport, int64, error) {
	out := make([]entity.DailyReport, 0, len(m.reports))
	for _, r := range m.reports {
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func ptr[T any](v T) *T { return &v }
