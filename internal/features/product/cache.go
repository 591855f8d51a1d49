package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/y0usad/lyoki-site/internal/servererrors"
)

const notFoundSentinel = "notfound"

// cachedStore is a read-through cache over the product store. Only single
// product lookups are cached; list queries depend on filter/sort/page
// params and go straight to the database. Stale entries are removed by the
// event handler when an order decrements stock or an admin edits the
// catalog, with the ttl as a backstop.
type cachedStore struct {
	store *Store
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedStore(store *Store, rdb *redis.Client) *cachedStore {
	return &cachedStore{
		store: store,
		rdb:   rdb,
		ttl:   5 * time.Minute,
	}
}

func productKey(productID uuid.UUID) string {
	return fmt.Sprintf("product:%s", productID)
}

func (c *cachedStore) findByID(ctx context.Context, productID uuid.UUID) (*Product, error) {
	key := productKey(productID)

	data, err := c.rdb.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		if string(data) == notFoundSentinel {
			return nil, servererrors.ErrProductNotFound
		}

		var product Product
		if err := json.Unmarshal(data, &product); err != nil {
			log.Printf("failed to unmarshal cached product (continuing with db): %v", err)
			break
		}

		return &product, nil

	case errors.Is(err, redis.Nil):
		// cache miss

	default:
		log.Printf("redis error (continuing with db): %v", err)
	}

	product, err := c.store.findByID(ctx, productID)
	if err != nil {
		if errors.Is(err, servererrors.ErrProductNotFound) {
			if setErr := c.rdb.Set(ctx, key, notFoundSentinel, 1*time.Minute).Err(); setErr != nil {
				log.Printf("failed to cache notfound: %v", setErr)
			}
		}
		return nil, err
	}

	jsonData, err := json.Marshal(product)
	if err != nil {
		log.Printf("failed to marshal product for cache: %v", err)
		return product, nil
	}

	if err := c.rdb.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
		log.Printf("failed to cache product: %v", err)
	}

	return product, nil
}

// invalidate drops a product's cache entry. Called from the event handler
// when stock or catalog data changed.
func (c *cachedStore) invalidate(ctx context.Context, productID uuid.UUID) {
	if err := c.rdb.Del(ctx, productKey(productID)).Err(); err != nil {
		log.Printf("failed to delete product cache %s: %v", productID, err)
	}
}

func (c *cachedStore) createOne(ctx context.Context, newProduct *CreateProductRequest) (*Product, error) {
	return c.store.createOne(ctx, newProduct)
}

func (c *cachedStore) findAll(ctx context.Context, queryItems *GetAllProductsRequestQuery) ([]*Product, int, error) {
	return c.store.findAll(ctx, queryItems)
}

func (c *cachedStore) findByName(ctx context.Context, name string) (*Product, error) {
	return c.store.findByName(ctx, name)
}

func (c *cachedStore) updateOne(ctx context.Context, update *UpdateProductRequest) (*Product, error) {
	return c.store.updateOne(ctx, update)
}

func (c *cachedStore) deleteOne(ctx context.Context, productID uuid.UUID) error {
	return c.store.deleteOne(ctx, productID)
}
