package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/y0usad/lyoki-site/internal/auth"
	"github.com/y0usad/lyoki-site/internal/handlerutils"
	"github.com/y0usad/lyoki-site/internal/middlewares"
	"github.com/y0usad/lyoki-site/internal/servererrors"
	"github.com/y0usad/lyoki-site/internal/validate"
)

type servicer interface {
	register(ctx context.Context, newUser *RegisterUserRequest) (*AuthResponse, error)
	login(ctx context.Context, credentials *LoginUserRequest) (*AuthResponse, error)
	loginWithGoogle(ctx context.Context, request *GoogleLoginRequest) (*AuthResponse, error)
	updateProfile(ctx context.Context, callerID uuid.UUID, update *UpdateProfileRequest) (*User, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityType string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(userService servicer, middleware middleware) *handler {
	return &handler{
		service:    userService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/auth/register",
		handlerutils.MakeHandler(
			h.registerHandler,
		),
	)

	router.Post(
		"/auth/login",
		handlerutils.MakeHandler(
			h.loginHandler,
		),
	)

	router.Post(
		"/auth/google",
		handlerutils.MakeHandler(
			h.googleLoginHandler,
		),
	)

	router.Put(
		"/auth/profile/{userID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.updateProfileHandler,
				auth.EntityTypeUser,
			),
		),
	)
}

func (h *handler) registerHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *RegisterUserRequest
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

	authResponse, err := h.service.register(ctx, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrEmailAlreadyRegistered) {
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrEmailAlreadyRegistered.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"user registered",
		authResponse,
	)
}

func (h *handler) loginHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *LoginUserRequest
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

	authResponse, err := h.service.login(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidCredentials):
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrInvalidCredentials.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrAccountInactive):
			return servererrors.New(
				http.StatusForbidden,
				servererrors.ErrAccountInactive.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"user logged in",
		authResponse,
	)
}

func (h *handler) googleLoginHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *GoogleLoginRequest
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

	authResponse, err := h.service.loginWithGoogle(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidGoogleToken):
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrInvalidGoogleToken.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrAccountInactive):
			return servererrors.New(
				http.StatusForbidden,
				servererrors.ErrAccountInactive.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"user logged in with google",
		authResponse,
	)
}

func (h *handler) updateProfileHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	callerID := middlewares.GetEntityIDFromContextKey(r.Context())
	if callerID == uuid.Nil {
		return servererrors.New(
			http.StatusUnauthorized,
			servererrors.ErrUnauthorized.Error(),
			nil,
		)
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid user id",
			nil,
		)
	}

	var payload *UpdateProfileRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload.UserID = targetID

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	updated, err := h.service.updateProfile(ctx, callerID, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrForbidden):
			return servererrors.New(
				http.StatusForbidden,
				servererrors.ErrForbidden.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrUserNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrUserNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"profile updated",
		updated,
	)
}
