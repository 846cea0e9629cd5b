// Package notify renders and sends the booking emails that follow a
// successful payment.
package notify

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var ErrNoAdminRecipients = errors.New("no admin recipients configured")

type Notifier struct {
	mailer Mailer
	admins []string
	logger *zap.Logger
}

func NewNotifier(mailer Mailer, admins []string, logger *zap.Logger) *Notifier {
	return &Notifier{
		mailer: mailer,
		admins: admins,
		logger: logger,
	}
}

func (n *Notifier) PaymentSucceeded(ctx context.Context, to string, summary OrderSummary) error {
	html, err := render(userTemplate, summary)
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, Message{
		To:      []string{to},
		Subject: fmt.Sprintf("Pembayaran Berhasil - %s", summary.TripName),
		HTML:    html,
	})
}

func (n *Notifier) AdminBookingNotification(ctx context.Context, summary OrderSummary) error {
	if len(n.admins) == 0 {
		return ErrNoAdminRecipients
	}
	html, err := render(adminTemplate, summary)
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, Message{
		To:      n.admins,
		Subject: fmt.Sprintf("[Booking Baru] %s - %s", summary.TripName, summary.OrderID),
		HTML:    html,
	})
}
