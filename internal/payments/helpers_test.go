package payments

import (
	"encoding/json"
	"testing"

	"github.com/farellandr/vakansik/internal/models"
	"github.com/farellandr/vakansik/internal/payments/paymentstest"
	"github.com/shopspring/decimal"
)

type testEnv struct {
	orders    *paymentstest.OrderStore
	trips     *paymentstest.TripCatalog
	users     *paymentstest.UserDirectory
	gateway   *paymentstest.Gateway
	statuses  *paymentstest.StatusLookup
	notifier  *paymentstest.Notifier
	publisher *paymentstest.Publisher
	svc       *Service
}

const testCallbackToken = "cb-token"

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	trip := &models.Trip{
		ID:           "trip-1",
		Name:         "Bromo Sunrise",
		MeetingPoint: "Stasiun Malang",
		Price:        decimal.NewFromInt(150000),
	}

	env := &testEnv{
		orders:    paymentstest.NewOrderStore(),
		trips:     &paymentstest.TripCatalog{Trips: map[string]*models.Trip{trip.ID: trip}},
		users:     &paymentstest.UserDirectory{Emails: map[string]string{"user-1": "budi@example.com"}},
		gateway:   &paymentstest.Gateway{},
		statuses:  &paymentstest.StatusLookup{States: map[string]string{}},
		notifier:  &paymentstest.Notifier{},
		publisher: &paymentstest.Publisher{},
	}
	env.orders.Trips[trip.ID] = trip

	env.svc = NewService(Dependencies{
		Orders:    env.orders,
		Trips:     env.trips,
		Users:     env.users,
		Gateway:   env.gateway,
		Statuses:  env.statuses,
		Notifier:  env.notifier,
		Publisher: env.publisher,
	}, Options{CallbackToken: testCallbackToken}, nil)

	return env
}

// pendingOrder stores a PENDING order owned by user-1 for trip-1.
func (env *testEnv) pendingOrder(id string) *models.Order {
	guests, _ := json.Marshal([]models.JoinedUser{{Name: "Budi", PhoneNumber: "08123"}})
	order := &models.Order{
		ID:          id,
		UserID:      "user-1",
		TripID:      "trip-1",
		TripDate:    "2024-12-25",
		AmountIDR:   150000,
		Status:      models.OrderStatusPending,
		ChannelCode: ChannelQRIS,
		JoinedUsers: guests,
	}
	env.orders.Put(order)
	return order
}
