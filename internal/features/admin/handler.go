package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/y0usad/lyoki-site/internal/auth"
	"github.com/y0usad/lyoki-site/internal/features/order"
	"github.com/y0usad/lyoki-site/internal/features/user"
	"github.com/y0usad/lyoki-site/internal/handlerutils"
	"github.com/y0usad/lyoki-site/internal/middlewares"
	"github.com/y0usad/lyoki-site/internal/servererrors"
	"github.com/y0usad/lyoki-site/internal/validate"
)

type servicer interface {
	login(ctx context.Context, credentials *LoginAdminRequest) (*AuthResponse, error)
	createAdmin(ctx context.Context, newAdmin *CreateAdminRequest) (*Admin, error)
	listAdmins(ctx context.Context) ([]*Admin, error)
	updateAdmin(ctx context.Context, update *UpdateAdminRequest) (*Admin, error)
	deleteAdmin(ctx context.Context, callerID, adminID uuid.UUID) error
	createUser(ctx context.Context, newUser *CreateUserRequest) (*user.User, error)
	listUsers(ctx context.Context) ([]*user.User, error)
	updateUser(ctx context.Context, update *UpdateUserRequest) (*user.User, error)
	deleteUser(ctx context.Context, userID uuid.UUID) error
	listTransactions(ctx context.Context) ([]*order.Order, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityType string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(adminService servicer, middleware middleware) *handler {
	return &handler{
		service:    adminService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/admin/login",
		handlerutils.MakeHandler(
			h.loginHandler,
		),
	)

	// protected back-office routes
	protected := func(apiHandler handlerutils.APIHandler) http.HandlerFunc {
		return handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				apiHandler,
				auth.EntityTypeAdmin,
			),
		)
	}

	router.Get("/admin/admins", protected(h.listAdminsHandler))
	router.Post("/admin/admins", protected(h.createAdminHandler))
	router.Put("/admin/admins/{adminID}", protected(h.updateAdminHandler))
	router.Delete("/admin/admins/{adminID}", protected(h.deleteAdminHandler))

	router.Get("/admin/users", protected(h.listUsersHandler))
	router.Post("/admin/users", protected(h.createUserHandler))
	router.Put("/admin/users/{userID}", protected(h.updateUserHandler))
	router.Delete("/admin/users/{userID}", protected(h.deleteUserHandler))

	router.Get("/admin/transactions", protected(h.listTransactionsHandler))
}

func (h *handler) loginHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *LoginAdminRequest
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
		if errors.Is(err, servererrors.ErrInvalidCredentials) {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrInvalidCredentials.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"admin logged in",
		authResponse,
	)
}

func (h *handler) listAdminsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	admins, err := h.service.listAdmins(ctx)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all admins retrieved",
		admins,
	)
}

func (h *handler) createAdminHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateAdminRequest
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

	created, err := h.service.createAdmin(ctx, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrUsernameAlreadyTaken) {
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrUsernameAlreadyTaken.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"admin created",
		created,
	)
}

func (h *handler) updateAdminHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	adminID, err := parseAdminID(r)
	if err != nil {
		return err
	}

	var payload *UpdateAdminRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload.AdminID = adminID

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	updated, err := h.service.updateAdmin(ctx, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrAdminNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrAdminNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"admin updated",
		updated,
	)
}

func (h *handler) deleteAdminHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	adminID, err := parseAdminID(r)
	if err != nil {
		return err
	}

	callerID := middlewares.GetEntityIDFromContextKey(r.Context())

	if err := h.service.deleteAdmin(ctx, callerID, adminID); err != nil {
		switch {
		case errors.Is(err, servererrors.ErrForbidden):
			return servererrors.New(
				http.StatusForbidden,
				servererrors.ErrForbidden.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrAdminNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrAdminNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"admin deleted",
		nil,
	)
}

func (h *handler) listUsersHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	users, err := h.service.listUsers(ctx)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all users retrieved",
		ListUsersResponse{
			AllUsersCount: len(users),
			Users:         users,
		},
	)
}

func (h *handler) createUserHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateUserRequest
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

	created, err := h.service.createUser(ctx, payload)
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
		"user created",
		created,
	)
}

func (h *handler) updateUserHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	userID, err := parseUserID(r)
	if err != nil {
		return err
	}

	var payload *UpdateUserRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload.UserID = userID

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	updated, err := h.service.updateUser(ctx, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrUserNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrUserNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"user updated",
		updated,
	)
}

func (h *handler) deleteUserHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	userID, err := parseUserID(r)
	if err != nil {
		return err
	}

	if err := h.service.deleteUser(ctx, userID); err != nil {
		if errors.Is(err, servererrors.ErrUserNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrUserNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"user deleted",
		nil,
	)
}

func (h *handler) listTransactionsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	transactions, err := h.service.listTransactions(ctx)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all transactions retrieved",
		transactions,
	)
}

func parseAdminID(r *http.Request) (uuid.UUID, error) {
	adminID, err := uuid.Parse(chi.URLParam(r, "adminID"))
	if err != nil {
		return uuid.Nil, servererrors.New(
			http.StatusBadRequest,
			"invalid admin id",
			nil,
		)
	}

	return adminID, nil
}

func parseUserID(r *http.Request) (uuid.UUID, error) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		return uuid.Nil, servererrors.New(
			http.StatusBadRequest,
			"invalid user id",
			nil,
		)
	}

	return userID, nil
}
