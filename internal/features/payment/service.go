package payment

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

const (
	currencyID      = "BRL"
	maxInstallments = 12
)

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type paymentGetter interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

type orderAccessor interface {
	OrderTotal(ctx context.Context, orderID uuid.UUID) (float64, error)
	MarkOrderPaid(ctx context.Context, orderID uuid.UUID) error
}

type service struct {
	preferences     preferenceCreator
	payments        paymentGetter
	orders          orderAccessor
	frontendBaseURL string
	backendBaseURL  string
}

func NewService(
	preferences preferenceCreator,
	payments paymentGetter,
	orders orderAccessor,
	frontendBaseURL string,
	backendBaseURL string,
) *service {
	return &service{
		preferences:     preferences,
		payments:        payments,
		orders:          orders,
		frontendBaseURL: strings.TrimSuffix(frontendBaseURL, "/"),
		backendBaseURL:  strings.TrimSuffix(backendBaseURL, "/"),
	}
}

func (s *service) createPreference(ctx context.Context, request *CreatePreferenceRequest) *PreferenceResult {
	// The charged amount comes from the persisted order row; a tampered
	// client amount never reaches the gateway.
	amount, err := s.orders.OrderTotal(ctx, request.OrderID)
	if err != nil {
		log.Printf(
			"order total lookup failed for order %s: %v",
			request.OrderID,
			err,
		)

		return &PreferenceResult{
			Success: false,
			Error:   "order not found for payment preference",
		}
	}

	description := request.Description
	if description == "" {
		description = "LYOKI order"
	}

	preferenceRequest := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:         request.OrderID.String(),
				Title:      description,
				Quantity:   1,
				UnitPrice:  amount,
				CurrencyID: currencyID,
			},
		},
		Payer: &preference.PayerRequest{
			Name:  request.PayerName,
			Email: request.PayerEmail,
		},
		BackURLs: &preference.BackURLsRequest{
			Success: s.frontendBaseURL + "/payment/success",
			Pending: s.frontendBaseURL + "/payment/pending",
			Failure: s.frontendBaseURL + "/payment/failure",
		},
		AutoReturn:        "approved",
		ExternalReference: externalReferenceFor(request.OrderID),
		NotificationURL:   s.backendBaseURL + "/api/v1/webhooks/mercadopago",
		PaymentMethods: &preference.PaymentMethodsRequest{
			Installments: maxInstallments,
		},
	}

	created, err := s.preferences.Create(ctx, preferenceRequest)
	if err != nil {
		log.Printf(
			"mercado pago preference creation failed for order %s: %v",
			request.OrderID,
			err,
		)

		return &PreferenceResult{
			Success: false,
			Error:   "payment gateway rejected the preference request",
		}
	}

	return &PreferenceResult{
		Success:      true,
		PreferenceID: created.ID,
		InitPoint:    created.InitPoint,
	}
}

func (s *service) getPaymentStatus(ctx context.Context, paymentID int) *PaymentStatusResult {
	fetched, err := s.payments.Get(ctx, paymentID)
	if err != nil {
		log.Printf(
			"mercado pago payment lookup failed for payment %d: %v",
			paymentID,
			err,
		)

		return &PaymentStatusResult{
			Success: false,
			Error:   "payment gateway lookup failed",
		}
	}

	return &PaymentStatusResult{
		Success:           true,
		PaymentID:         fetched.ID,
		Status:            normalizeStatus(fetched.Status),
		StatusDetail:      fetched.StatusDetail,
		TransactionAmount: fetched.TransactionAmount,
		PaymentMethodID:   fetched.PaymentMethodID,
	}
}

// processNotification handles the gateway's webhook ping for a payment. An
// approved payment flips the referenced order to paid; anything else is
// acknowledged and dropped.
func (s *service) processNotification(ctx context.Context, paymentID int) error {
	fetched, err := s.payments.Get(ctx, paymentID)
	if err != nil {
		return fmt.Errorf(
			"failed to fetch payment %d for webhook notification: %w",
			paymentID,
			err,
		)
	}

	if normalizeStatus(fetched.Status) != StatusApproved {
		return nil
	}

	orderID, err := orderIDFromExternalReference(fetched.ExternalReference)
	if err != nil {
		return err
	}

	return s.orders.MarkOrderPaid(ctx, orderID)
}

func externalReferenceFor(orderID uuid.UUID) string {
	return "order-" + orderID.String()
}

func orderIDFromExternalReference(externalReference string) (uuid.UUID, error) {
	rawOrderID, found := strings.CutPrefix(externalReference, "order-")
	if !found {
		return uuid.Nil, fmt.Errorf(
			"unexpected external reference %q on payment notification",
			externalReference,
		)
	}

	orderID, err := uuid.Parse(rawOrderID)
	if err != nil {
		return uuid.Nil, fmt.Errorf(
			"invalid order id in external reference %q: %w",
			externalReference,
			err,
		)
	}

	return orderID, nil
}

func normalizeStatus(gatewayStatus string) string {
	switch gatewayStatus {
	case "approved":
		return StatusApproved

	case "pending", "in_process", "authorized":
		return StatusPending

	default:
		return StatusRejected
	}
}
