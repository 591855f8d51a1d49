package payment

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/y0usad/lyoki-site/internal/handlerutils"
	"github.com/y0usad/lyoki-site/internal/servererrors"
	"github.com/y0usad/lyoki-site/internal/validate"
)

type servicer interface {
	createPreference(ctx context.Context, request *CreatePreferenceRequest) *PreferenceResult
	getPaymentStatus(ctx context.Context, paymentID int) *PaymentStatusResult
	processNotification(ctx context.Context, paymentID int) error
}

type handler struct {
	service servicer
}

func NewHandler(paymentService servicer) *handler {
	return &handler{
		service: paymentService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/payment/create-preference",
		handlerutils.MakeHandler(
			h.createPreferenceHandler,
		),
	)

	router.Get(
		"/payment/status/{paymentID}",
		handlerutils.MakeHandler(
			h.getPaymentStatusHandler,
		),
	)

	router.Post(
		"/webhooks/mercadopago",
		handlerutils.MakeHandler(
			h.webhookHandler,
		),
	)
}

func (h *handler) createPreferenceHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreatePreferenceRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	result := h.service.createPreference(ctx, payload)

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"payment preference processed",
		result,
	)
}

func (h *handler) getPaymentStatusHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	paymentID, err := parsePaymentID(chi.URLParam(r, "paymentID"))
	if err != nil {
		return err
	}

	result := h.service.getPaymentStatus(ctx, paymentID)

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"payment status retrieved",
		result,
	)
}

// webhookHandler acknowledges Mercado Pago's notification pings. The
// gateway retries on non-2xx, so the payment id is pulled from the query
// parameters it actually sends (type/topic plus data.id or id).
func (h *handler) webhookHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	queryParams := r.URL.Query()

	topic := queryParams.Get("type")
	if topic == "" {
		topic = queryParams.Get("topic")
	}
	if topic != "payment" {
		return handlerutils.WriteSuccessJSON(
			w,
			http.StatusOK,
			"notification ignored",
			nil,
		)
	}

	rawPaymentID := queryParams.Get("data.id")
	if rawPaymentID == "" {
		rawPaymentID = queryParams.Get("id")
	}

	paymentID, err := parsePaymentID(rawPaymentID)
	if err != nil {
		return err
	}

	if err := h.service.processNotification(ctx, paymentID); err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"notification processed",
		nil,
	)
}

func parsePaymentID(rawPaymentID string) (int, error) {
	paymentID, err := strconv.Atoi(rawPaymentID)
	if err != nil || paymentID <= 0 {
		return 0, servererrors.New(
			http.StatusBadRequest,
			"invalid payment id",
			nil,
		)
	}

	return paymentID, nil
}
