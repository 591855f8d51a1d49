package product

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/y0usad/lyoki-site/internal/eventengine"
	"github.com/y0usad/lyoki-site/internal/eventengine/event"
	"github.com/y0usad/lyoki-site/internal/servererrors"
)

type Storer interface {
	createOne(ctx context.Context, newProduct *CreateProductRequest) (*Product, error)
	findAll(ctx context.Context, queryItems *GetAllProductsRequestQuery) ([]*Product, int, error)
	findByID(ctx context.Context, productID uuid.UUID) (*Product, error)
	findByName(ctx context.Context, name string) (*Product, error)
	updateOne(ctx context.Context, update *UpdateProductRequest) (*Product, error)
	deleteOne(ctx context.Context, productID uuid.UUID) error
}

type service struct {
	store       Storer
	eventEngine eventengine.RegisterPublisher
}

func NewService(store Storer, eventEngine eventengine.RegisterPublisher) *service {
	s := &service{
		store:       store,
		eventEngine: eventEngine,
	}

	// Register eventsNames the product service will emit
	s.eventEngine.RegisterEvents(
		event.CatalogProductUpdatedEventName,
		event.CatalogProductDeletedEventName,
	)

	return s
}

func (s *service) createProduct(ctx context.Context, newProduct *CreateProductRequest) (*Product, error) {
	newProduct.Name = strings.TrimSpace(newProduct.Name)
	newProduct.Description = strings.TrimSpace(newProduct.Description)
	newProduct.ShortDescription = strings.TrimSpace(newProduct.ShortDescription)
	newProduct.ImageURL = strings.TrimSpace(newProduct.ImageURL)

	existing, err := s.store.findByName(ctx, newProduct.Name)
	if err != nil {
		return nil, err
	}

	if existing.ProductID != uuid.Nil {
		return nil, servererrors.ErrProductAlreadyExists
	}

	return s.store.createOne(
		ctx,
		newProduct,
	)
}

func (s *service) getAllProducts(ctx context.Context, queryItems *GetAllProductsRequestQuery) ([]*Product, int, error) {
	return s.store.findAll(ctx, queryItems)
}

func (s *service) getProduct(ctx context.Context, productID uuid.UUID) (*Product, error) {
	return s.store.findByID(ctx, productID)
}

func (s *service) updateProduct(ctx context.Context, update *UpdateProductRequest) (*Product, error) {
	updated, err := s.store.updateOne(ctx, update)
	if err != nil {
		return nil, err
	}

	updatedEvent := &event.CatalogProductUpdatedEvent{
		ProductID: updated.ProductID,
		Category:  updated.Category,
	}
	s.eventEngine.Publish(
		&event.Event{
			Name:    updatedEvent.GetEventName(),
			Payload: updatedEvent,
		},
	)

	return updated, nil
}

func (s *service) deleteProduct(ctx context.Context, productID uuid.UUID) error {
	existing, err := s.store.findByID(ctx, productID)
	if err != nil {
		return err
	}

	if err := s.store.deleteOne(ctx, productID); err != nil {
		return err
	}

	deletedEvent := &event.CatalogProductDeletedEvent{
		ProductID: existing.ProductID,
		Category:  existing.Category,
	}
	s.eventEngine.Publish(
		&event.Event{
			Name:    deletedEvent.GetEventName(),
			Payload: deletedEvent,
		},
	)

	return nil
}
