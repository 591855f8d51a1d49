package order

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/y0usad/lyoki-site/internal/handlerutils"
	"github.com/y0usad/lyoki-site/internal/servererrors"
	"github.com/y0usad/lyoki-site/internal/validate"
)

type servicer interface {
	createOrder(ctx context.Context, newOrder *CreateOrderRequest) (*Order, error)
}

type handler struct {
	service servicer
}

func NewHandler(orderService servicer) *handler {
	return &handler{
		service: orderService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/orders",
		handlerutils.MakeHandler(
			h.createOrderHandler,
		),
	)
}

func (h *handler) createOrderHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateOrderRequest
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

	created, err := h.service.createOrder(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductNotFound):
			return servererrors.New(
				http.StatusNotFound,
				err.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrInsufficientStock):
			return servererrors.New(
				http.StatusBadRequest,
				err.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"order created",
		created,
	)
}
