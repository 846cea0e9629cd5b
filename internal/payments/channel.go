package payments

import "github.com/farellandr/vakansik/internal/models"

const (
	ChannelOVO       = "OVO"
	ChannelShopeePay = "SHOPEEPAY"
	ChannelQRIS      = "QRIS"
)

// ChannelCodeFor maps the client's payment method to a gateway channel.
// Unrecognised methods fall back to ShopeePay instead of being rejected.
func ChannelCodeFor(paymentMethod string) string {
	switch paymentMethod {
	case "ovo":
		return ChannelOVO
	case "shopee":
		return ChannelShopeePay
	case "qris":
		return ChannelQRIS
	default:
		return ChannelShopeePay
	}
}

func (s *Service) channelProperties(channelCode, paymentNumber string) map[string]string {
	switch channelCode {
	case ChannelQRIS:
		return map[string]string{
			"display_name": s.opts.DisplayName,
		}
	case ChannelOVO:
		return map[string]string{
			"account_mobile_number": paymentNumber,
		}
	default:
		return map[string]string{
			"display_name":          s.opts.DisplayName,
			"account_mobile_number": paymentNumber,
			"success_return_url":    s.opts.ReturnURLs.Success,
			"cancel_return_url":     s.opts.ReturnURLs.Cancel,
			"failure_return_url":    s.opts.ReturnURLs.Failure,
		}
	}
}

// StatusForEvent maps a webhook event name to the order status it implies.
func StatusForEvent(event string) models.OrderStatus {
	switch event {
	case "payment.capture", "payment.succeeded":
		return models.OrderStatusCompleted
	case "payment.failed":
		return models.OrderStatusFailed
	case "payment.expired":
		return models.OrderStatusExpired
	default:
		return models.OrderStatusPending
	}
}

// StatusForGatewayState maps a payment request state reported by the gateway
// API to an order status. States that are still in flight map to PENDING.
func StatusForGatewayState(state string) models.OrderStatus {
	switch state {
	case "SUCCEEDED", "CAPTURED":
		return models.OrderStatusCompleted
	case "FAILED":
		return models.OrderStatusFailed
	case "EXPIRED", "CANCELED", "VOIDED":
		return models.OrderStatusExpired
	default:
		return models.OrderStatusPending
	}
}
