package order

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/y0usad/lyoki-site/internal/servererrors"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

// createOne runs the whole checkout as one transaction: lock the product
// rows, re-price and stock-check every item, persist the order with its
// items and decrement stock. Any failure rolls the whole thing back, so no
// partial stock decrement is ever observable. The FOR UPDATE locks
// serialize concurrent checkouts touching the same products.
func (s *Store) createOne(ctx context.Context, newOrder *CreateOrderRequest) (*Order, error) {
	tx, err := s.db.BeginTx(
		ctx,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to begin order transaction: %w", err)
	}
	defer tx.Rollback()

	productIDs := lockOrderedProductIDs(newOrder.Items)

	// ORDER BY keeps the row-lock acquisition order identical across
	// concurrent checkouts over overlapping product sets; without it two
	// transactions can lock in opposite orders and deadlock.
	lockQuery := `SELECT product_id, name, price, stock
		FROM products
		WHERE product_id = ANY($1)
		ORDER BY product_id
		FOR UPDATE`

	rows, err := tx.QueryContext(
		ctx,
		lockQuery,
		pq.Array(productIDs),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to lock products in order store: %w",
			err,
		)
	}
	defer rows.Close()

	catalog := make(map[uuid.UUID]*catalogLine, len(productIDs))
	for rows.Next() {
		var line catalogLine
		err := rows.Scan(
			&line.productID,
			&line.name,
			&line.price,
			&line.stock,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan product line in order store: %w",
				err,
			)
		}
		catalog[line.productID] = &line
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(
			"failed to complete product rows iteration in order store: %w",
			err,
		)
	}
	rows.Close()

	pricedItems, total, err := priceOrder(catalog, newOrder.Items)
	if err != nil {
		return nil, err
	}

	order := &Order{
		Total:         total,
		CustomerName:  newOrder.CustomerName,
		CustomerEmail: newOrder.CustomerEmail,
		Address:       newOrder.Address,
		City:          newOrder.City,
		PostalCode:    newOrder.PostalCode,
		Status:        StatusCreated,
	}

	insertOrderQuery := `INSERT INTO orders(total, customer_name, customer_email, address, city, postal_code, status)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		RETURNING order_id, created_at`

	err = tx.QueryRowContext(
		ctx,
		insertOrderQuery,
		order.Total,
		order.CustomerName,
		order.CustomerEmail,
		order.Address,
		order.City,
		order.PostalCode,
		order.Status,
	).Scan(
		&order.OrderID,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert new order in order store: %w",
			err,
		)
	}

	insertItemQuery := `INSERT INTO order_items(order_id, product_id, product_name, quantity, price)
		VALUES($1, $2, $3, $4, $5)
		RETURNING order_item_id`

	decrementStockQuery := `UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE product_id = $2`

	for _, item := range pricedItems {
		orderItem := OrderItem{
			OrderID:     order.OrderID,
			ProductID:   item.productID,
			ProductName: item.name,
			Quantity:    item.quantity,
			Price:       item.price,
		}

		err = tx.QueryRowContext(
			ctx,
			insertItemQuery,
			orderItem.OrderID,
			orderItem.ProductID,
			orderItem.ProductName,
			orderItem.Quantity,
			orderItem.Price,
		).Scan(&orderItem.OrderItemID)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to insert order item in order store: %w",
				err,
			)
		}

		_, err = tx.ExecContext(
			ctx,
			decrementStockQuery,
			item.quantity,
			item.productID,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to decrement stock for product %s in order store: %w",
				item.productID,
				err,
			)
		}

		order.Items = append(order.Items, orderItem)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf(
			"failed to commit order transaction: %w",
			err,
		)
	}

	return order, nil
}

// lockOrderedProductIDs returns the distinct product ids of the requested
// items sorted by id, matching the ORDER BY of the lock query.
func lockOrderedProductIDs(items []OrderItemRequest) []uuid.UUID {
	productIDs := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		productIDs = append(productIDs, item.ProductID)
	}

	slices.SortFunc(productIDs, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})

	return productIDs
}

func (s *Store) findTotal(ctx context.Context, orderID uuid.UUID) (float64, error) {
	query := `SELECT total
		FROM orders
		WHERE order_id = $1`

	var total float64
	err := s.db.QueryRowContext(
		ctx,
		query,
		orderID,
	).Scan(&total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, servererrors.ErrOrderNotFound
		}

		return 0, fmt.Errorf(
			"failed to get order total from order store: %w",
			err,
		)
	}

	return total, nil
}

func (s *Store) markPaid(ctx context.Context, orderID uuid.UUID) error {
	query := `UPDATE orders
		SET status = $1
		WHERE order_id = $2`

	result, err := s.db.ExecContext(
		ctx,
		query,
		StatusPaid,
		orderID,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to mark order paid in order store: %w",
			err,
		)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf(
			"failed to read mark paid result: %w",
			err,
		)
	}
	if affected == 0 {
		return servererrors.ErrOrderNotFound
	}

	return nil
}

// findAllWithItems returns every order newest first, each with its line
// items, for the back-office transactions view.
func (s *Store) findAllWithItems(ctx context.Context) ([]*Order, error) {
	query := `SELECT
		o.order_id, o.total, o.customer_name, o.customer_email,
		o.address, o.city, o.postal_code, o.status, o.created_at,
		oi.order_item_id, oi.product_id, oi.product_name, oi.quantity, oi.price
		FROM orders o
		LEFT JOIN order_items oi ON o.order_id = oi.order_id
		ORDER BY o.created_at DESC, oi.order_item_id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get orders with items from order store: %w",
			err,
		)
	}
	defer rows.Close()

	var orders []*Order
	byID := make(map[uuid.UUID]*Order)

	for rows.Next() {
		var current Order
		var orderItemID uuid.NullUUID
		var productID uuid.NullUUID
		var productName sql.NullString
		var quantity sql.NullInt64
		var price sql.NullFloat64

		err := rows.Scan(
			&current.OrderID,
			&current.Total,
			&current.CustomerName,
			&current.CustomerEmail,
			&current.Address,
			&current.City,
			&current.PostalCode,
			&current.Status,
			&current.CreatedAt,
			&orderItemID,
			&productID,
			&productName,
			&quantity,
			&price,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan order/item in order store: %w",
				err,
			)
		}

		existing, ok := byID[current.OrderID]
		if !ok {
			existing = &current
			byID[current.OrderID] = existing
			orders = append(orders, existing)
		}

		if orderItemID.Valid {
			existing.Items = append(existing.Items, OrderItem{
				OrderItemID: orderItemID.UUID,
				OrderID:     existing.OrderID,
				ProductID:   productID.UUID,
				ProductName: productName.String,
				Quantity:    uint(quantity.Int64),
				Price:       price.Float64,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(
			"failed to complete order rows iteration: %w",
			err,
		)
	}

	return orders, nil
}
