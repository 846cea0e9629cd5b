// Package paymentstest provides in-memory collaborators for exercising the
// payments service without a database, gateway, or email provider.
package paymentstest

import (
	"context"
	"sync"
	"time"

	"github.com/farellandr/vakansik/internal/events"
	"github.com/farellandr/vakansik/internal/gateway"
	"github.com/farellandr/vakansik/internal/models"
	"github.com/farellandr/vakansik/internal/notify"
	"github.com/farellandr/vakansik/internal/repository"
	"gorm.io/datatypes"
)

// OrderStore keeps orders in a map and applies the same forward-only rule as
// the Postgres repository. Set the *Err fields to inject failures.
type OrderStore struct {
	mu     sync.Mutex
	Orders map[string]*models.Order
	Trips  map[string]*models.Trip

	CreateErr error
	AttachErr error
	UpdateErr error

	Creates int
	Updates int
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		Orders: map[string]*models.Order{},
		Trips:  map[string]*models.Trip{},
	}
}

func (s *OrderStore) Put(order *models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *order
	s.Orders[order.ID] = &cp
}

func (s *OrderStore) Order(id string) *models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok {
		return nil
	}
	cp := *order
	return &cp
}

func (s *OrderStore) Create(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.Creates++
	cp := *order
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	s.Orders[order.ID] = &cp
	return nil
}

func (s *OrderStore) MarkFailed(_ context.Context, id, errorMessage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok || order.Status != models.OrderStatusPending {
		return repository.ErrOrderNotFound
	}
	order.Status = models.OrderStatusFailed
	msg := errorMessage
	order.ErrorMessage = &msg
	return nil
}

func (s *OrderStore) AttachPaymentRequest(_ context.Context, id, paymentRequestID string, rawResponse []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AttachErr != nil {
		return s.AttachErr
	}
	order, ok := s.Orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	prID := paymentRequestID
	order.PaymentRequestID = &prID
	order.XenditResponse = datatypes.JSON(append([]byte(nil), rawResponse...))
	return nil
}

func (s *OrderStore) UpdateStatus(_ context.Context, id string, target models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}
	order, ok := s.Orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	if order.Status == models.OrderStatusPending || order.Status == target {
		order.Status = target
		s.Updates++
	}
	cp := *order
	if trip, ok := s.Trips[order.TripID]; ok {
		t := *trip
		cp.Trip = &t
	}
	return &cp, nil
}

func (s *OrderStore) Get(_ context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	cp := *order
	return &cp, nil
}

func (s *OrderStore) ListAwaitingSettlement(_ context.Context, createdBefore time.Time, limit int) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, order := range s.Orders {
		if order.Status == models.OrderStatusPending && order.PaymentRequestID != nil && order.CreatedAt.Before(createdBefore) {
			out = append(out, *order)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type TripCatalog struct {
	Trips map[string]*models.Trip
	Err   error
}

func (c *TripCatalog) GetPricing(_ context.Context, id string) (*models.Trip, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	trip, ok := c.Trips[id]
	if !ok {
		return nil, repository.ErrTripNotFound
	}
	cp := *trip
	return &cp, nil
}

type UserDirectory struct {
	Emails map[string]string
	Err    error
}

func (d *UserDirectory) EmailFor(_ context.Context, userID string) (string, error) {
	if d.Err != nil {
		return "", d.Err
	}
	email, ok := d.Emails[userID]
	if !ok {
		return "", repository.ErrUserNotFound
	}
	return email, nil
}

// Gateway records every request and answers with CreateFunc, or with
// Response/Err when CreateFunc is nil.
type Gateway struct {
	mu         sync.Mutex
	Requests   []gateway.PaymentRequest
	CreateFunc func(ctx context.Context, req gateway.PaymentRequest) (*gateway.Response, error)
	Response   *gateway.Response
	Err        error
}

func (g *Gateway) CreatePaymentRequest(ctx context.Context, req gateway.PaymentRequest) (*gateway.Response, error) {
	g.mu.Lock()
	g.Requests = append(g.Requests, req)
	g.mu.Unlock()
	if g.CreateFunc != nil {
		return g.CreateFunc(ctx, req)
	}
	return g.Response, g.Err
}

func (g *Gateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Requests)
}

type StatusLookup struct {
	States map[string]string
	Err    error
}

func (l *StatusLookup) PaymentRequestStatus(_ context.Context, paymentRequestID string) (string, error) {
	if l.Err != nil {
		return "", l.Err
	}
	return l.States[paymentRequestID], nil
}

type SentEmail struct {
	To      string
	Admin   bool
	Summary notify.OrderSummary
}

type Notifier struct {
	mu         sync.Mutex
	Sent       []SentEmail
	UserErr    error
	AdminErr   error
	UserCalls  int
	AdminCalls int
}

func (n *Notifier) PaymentSucceeded(_ context.Context, to string, summary notify.OrderSummary) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.UserCalls++
	if n.UserErr != nil {
		return n.UserErr
	}
	n.Sent = append(n.Sent, SentEmail{To: to, Summary: summary})
	return nil
}

func (n *Notifier) AdminBookingNotification(_ context.Context, summary notify.OrderSummary) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.AdminCalls++
	if n.AdminErr != nil {
		return n.AdminErr
	}
	n.Sent = append(n.Sent, SentEmail{Admin: true, Summary: summary})
	return nil
}

type Publisher struct {
	mu     sync.Mutex
	Events []events.OrderEvent
}

func (p *Publisher) Publish(_ context.Context, event events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return nil
}

func (p *Publisher) Close() error { return nil }

func (p *Publisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.Events))
	for _, e := range p.Events {
		types = append(types, e.Type)
	}
	return types
}

// Guard remembers which orders were already notified.
type Guard struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (g *Guard) FirstNotification(_ context.Context, orderID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.seen == nil {
		g.seen = map[string]bool{}
	}
	if g.seen[orderID] {
		return false, nil
	}
	g.seen[orderID] = true
	return true, nil
}
