package product

import (
	"github.com/google/uuid"
)

// Requests

type CreateProductRequest struct {
	Name             string  `json:"name" validate:"required,min=3,max=120,noAllRepeatingChars"`
	Price            float64 `json:"price" validate:"required,gt=0"`
	Description      string  `json:"description" validate:"required,min=10,max=1000,noAllRepeatingChars"`
	ShortDescription string  `json:"shortDescription" validate:"max=255"`
	ImageURL         string  `json:"imageURL" validate:"required,url"`
	Category         string  `json:"category" validate:"required"`
	Stock            uint    `json:"stock"`
	Sizes            string  `json:"sizes"`
	IsUnique         bool    `json:"isUnique"`
}

type UpdateProductRequest struct {
	ProductID        uuid.UUID `json:"-"`
	Name             *string   `json:"name" validate:"omitempty,min=3,max=120,noAllRepeatingChars"`
	Price            *float64  `json:"price" validate:"omitempty,gt=0"`
	Description      *string   `json:"description" validate:"omitempty,min=10,max=1000"`
	ShortDescription *string   `json:"shortDescription" validate:"omitempty,max=255"`
	ImageURL         *string   `json:"imageURL" validate:"omitempty,url"`
	Category         *string   `json:"category"`
	Stock            *uint     `json:"stock"`
	Sizes            *string   `json:"sizes"`
	IsUnique         *bool     `json:"isUnique"`
}

type FilterOpts struct {
	Category string  `json:"category"`
	PriceMin float64 `json:"priceMin" validate:"min=0"`
	PriceMax float64 `json:"priceMax" validate:"min=0"`
	Search   string  `json:"search"`
}

type SortOpts struct {
	SortBy  string `json:"sortBy" validate:"oneof=name price category created_at"`
	SortOpt string `json:"sortOpt" validate:"oneof=desc asc"`
}

type PageOpts struct {
	Page  uint64 `json:"page" validate:"min=0"`
	Limit uint64 `json:"limit" validate:"min=0"`
}

type GetAllProductsRequestQuery struct {
	FilterOpts FilterOpts `json:"filterOpts"`
	SortOpts   SortOpts   `json:"sortOpts"`
	PageOpts   PageOpts   `json:"pageOpts"`
}

// Responses

type GetAllProductsResponse struct {
	AllProductsCount int        `json:"allProductsCount"`
	TotalPagesCount  int        `json:"totalPagesCount"`
	PagesLeftCount   int        `json:"pagesLeftCount"`
	ItemsLeftCount   int        `json:"itemsLeftCount"`
	Products         []*Product `json:"products"`
}
