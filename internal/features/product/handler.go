package product

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/y0usad/lyoki-site/internal/auth"
	"github.com/y0usad/lyoki-site/internal/handlerutils"
	"github.com/y0usad/lyoki-site/internal/servererrors"
	"github.com/y0usad/lyoki-site/internal/validate"
)

type servicer interface {
	createProduct(ctx context.Context, newProduct *CreateProductRequest) (*Product, error)
	getAllProducts(ctx context.Context, query *GetAllProductsRequestQuery) ([]*Product, int, error)
	getProduct(ctx context.Context, productID uuid.UUID) (*Product, error)
	updateProduct(ctx context.Context, update *UpdateProductRequest) (*Product, error)
	deleteProduct(ctx context.Context, productID uuid.UUID) error
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityType string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(productService servicer, middleware middleware) *handler {
	return &handler{
		service:    productService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/products",
		handlerutils.MakeHandler(
			h.getAllProductsHandler,
		),
	)

	router.Get(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.getProductHandler,
		),
	)

	// protected back-office routes
	router.Post(
		"/admin/products",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.createProductHandler,
				auth.EntityTypeAdmin,
			),
		),
	)

	router.Put(
		"/admin/products/{productID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.updateProductHandler,
				auth.EntityTypeAdmin,
			),
		),
	)

	router.Delete(
		"/admin/products/{productID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.deleteProductHandler,
				auth.EntityTypeAdmin,
			),
		),
	)
}

func (h *handler) createProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateProductRequest
	var err error
	defer r.Body.Close()

	if err = handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err = validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	created, err := h.service.createProduct(
		ctx,
		payload,
	)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductAlreadyExists):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrProductAlreadyExists.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"product created",
		created,
	)
}

func (h *handler) getAllProductsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	queryItems := getQueryItems(
		r.URL.Query(),
	)

	if err := validate.StructFields(queryItems); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrURLQueryParams.Error(),
			err,
		)
	}

	products, totalCount, err := h.service.getAllProducts(ctx, queryItems)
	if err != nil {
		return err
	}

	limit := int(queryItems.PageOpts.Limit)
	totalPagesCount := (totalCount + limit - 1) / limit
	itemsLeftCount := (totalCount - int(queryItems.PageOpts.Page*queryItems.PageOpts.Limit))
	pagesLeftCount := (itemsLeftCount + limit - 1) / limit

	if itemsLeftCount < 0 {
		itemsLeftCount = 0
		pagesLeftCount = 0
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all products retrieved",
		GetAllProductsResponse{
			AllProductsCount: totalCount,
			TotalPagesCount:  totalPagesCount,
			PagesLeftCount:   pagesLeftCount,
			ItemsLeftCount:   itemsLeftCount,
			Products:         products,
		},
	)
}

func (h *handler) getProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	product, err := h.service.getProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, servererrors.ErrProductNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product found",
		product,
	)
}

func (h *handler) updateProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	var payload *UpdateProductRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload.ProductID = productID

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	updated, err := h.service.updateProduct(ctx, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrProductNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product updated",
		updated,
	)
}

func (h *handler) deleteProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	productID, err := parseProductID(r)
	if err != nil {
		return err
	}

	if err := h.service.deleteProduct(ctx, productID); err != nil {
		if errors.Is(err, servererrors.ErrProductNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product deleted",
		nil,
	)
}

func parseProductID(r *http.Request) (uuid.UUID, error) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return uuid.Nil, servererrors.New(
			http.StatusBadRequest,
			"invalid product id",
			nil,
		)
	}

	return productID, nil
}

func getQueryItems(queriesParams url.Values) *GetAllProductsRequestQuery {
	query := new(GetAllProductsRequestQuery)

	query.FilterOpts.Category = queriesParams.Get("category")

	results := strings.Split(queriesParams.Get("sort"), ":")

	query.SortOpts.SortBy = "created_at"
	query.SortOpts.SortOpt = "desc"

	if len(results) == 1 && results[0] != "" {
		query.SortOpts.SortBy = results[0]
	}

	if len(results) == 2 {
		query.SortOpts.SortBy = results[0]
		query.SortOpts.SortOpt = results[1]
	}

	query.FilterOpts.Search = queriesParams.Get("search")

	query.PageOpts.Page = stringToUint64(
		1,
		queriesParams.Get("page"),
	)

	query.PageOpts.Limit = stringToUint64(
		20,
		queriesParams.Get("limit"),
	)

	query.FilterOpts.PriceMin = stringToFloat64(
		0.00,
		queriesParams.Get("priceMin"),
	)

	query.FilterOpts.PriceMax = stringToFloat64(
		0.00,
		queriesParams.Get("priceMax"),
	)

	return query
}

func stringToUint64(defaultValue uint64, field string) uint64 {
	num, err := strconv.ParseUint(field, 10, 0)
	if err != nil || num == 0 {
		return defaultValue
	}

	return num
}

func stringToFloat64(defaultValue float64, field string) float64 {
	num, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return defaultValue
	}

	return num
}
