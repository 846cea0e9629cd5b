// Package payments implements the booking payment pipeline: pricing and
// recording an order, requesting a payable instrument from the gateway, and
// applying the gateway's asynchronous settlement callbacks to the order.
//
// Every write is a single-row statement keyed by order id; no transaction
// spans the gateway call. The order row is the only shared state between
// concurrent invocations.
package payments

import (
	"context"
	"time"

	"github.com/farellandr/vakansik/internal/events"
	"github.com/farellandr/vakansik/internal/gateway"
	"github.com/farellandr/vakansik/internal/models"
	"github.com/farellandr/vakansik/internal/notify"
	"go.uber.org/zap"
)

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	MarkFailed(ctx context.Context, id, errorMessage string) error
	AttachPaymentRequest(ctx context.Context, id, paymentRequestID string, rawResponse []byte) error
	UpdateStatus(ctx context.Context, id string, target models.OrderStatus) (*models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	ListAwaitingSettlement(ctx context.Context, createdBefore time.Time, limit int) ([]models.Order, error)
}

type TripCatalog interface {
	GetPricing(ctx context.Context, id string) (*models.Trip, error)
}

type UserDirectory interface {
	EmailFor(ctx context.Context, userID string) (string, error)
}

type Gateway interface {
	CreatePaymentRequest(ctx context.Context, req gateway.PaymentRequest) (*gateway.Response, error)
}

type StatusLookup interface {
	PaymentRequestStatus(ctx context.Context, paymentRequestID string) (string, error)
}

type Notifier interface {
	PaymentSucceeded(ctx context.Context, to string, summary notify.OrderSummary) error
	AdminBookingNotification(ctx context.Context, summary notify.OrderSummary) error
}

type Dependencies struct {
	Orders    OrderStore
	Trips     TripCatalog
	Users     UserDirectory
	Gateway   Gateway
	Statuses  StatusLookup
	Notifier  Notifier
	Guard     notify.Guard
	Publisher events.Publisher
}

type Options struct {
	CallbackToken string
	DisplayName   string
	ReturnURLs    ReturnURLs
}

// ReturnURLs are the deep links the mobile client intercepts after an
// e-wallet redirect.
type ReturnURLs struct {
	Success string
	Cancel  string
	Failure string
}

const DefaultDisplayName = "Vakansik"

var DefaultReturnURLs = ReturnURLs{
	Success: "vakansik://payment/success",
	Cancel:  "vakansik://payment/cancel",
	Failure: "vakansik://payment/failure",
}

type Service struct {
	orders    OrderStore
	trips     TripCatalog
	users     UserDirectory
	gateway   Gateway
	statuses  StatusLookup
	notifier  Notifier
	guard     notify.Guard
	publisher events.Publisher
	opts      Options
	logger    *zap.Logger
}

func NewService(deps Dependencies, opts Options, logger *zap.Logger) *Service {
	if opts.DisplayName == "" {
		opts.DisplayName = DefaultDisplayName
	}
	if opts.ReturnURLs == (ReturnURLs{}) {
		opts.ReturnURLs = DefaultReturnURLs
	}
	if deps.Guard == nil {
		deps.Guard = notify.AlwaysNotify{}
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		orders:    deps.Orders,
		trips:     deps.Trips,
		users:     deps.Users,
		gateway:   deps.Gateway,
		statuses:  deps.Statuses,
		notifier:  deps.Notifier,
		guard:     deps.Guard,
		publisher: deps.Publisher,
		opts:      opts,
		logger:    logger,
	}
}

func (s *Service) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.Get(ctx, id)
}

func (s *Service) publish(ctx context.Context, eventType string, order *models.Order) {
	if err := s.publisher.Publish(ctx, events.NewOrderEvent(eventType, order)); err != nil {
		s.logger.Warn("Failed to publish order event",
			zap.String("order_id", order.ID),
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}
