package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/y0usad/lyoki-site/internal/servererrors"
)

const productColumns = `product_id, name, price, description, short_description, image_url, category, stock, sizes, is_unique, created_at, updated_at`

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) createOne(ctx context.Context, newProduct *CreateProductRequest) (*Product, error) {
	query := `INSERT INTO products(name, price, description, short_description, image_url, category, stock, sizes, is_unique)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + productColumns

	row := s.db.QueryRowContext(
		ctx,
		query,
		newProduct.Name,
		newProduct.Price,
		newProduct.Description,
		newProduct.ShortDescription,
		newProduct.ImageURL,
		newProduct.Category,
		newProduct.Stock,
		newProduct.Sizes,
		newProduct.IsUnique,
	)

	var product Product
	if err := scanRowIntoProduct(row, &product); err != nil {
		return nil, fmt.Errorf(
			"failed to insert new product in product store: %w",
			err,
		)
	}

	return &product, nil
}

func (s *Store) findAll(ctx context.Context, queryItems *GetAllProductsRequestQuery) (products []*Product, count int, err error) {
	query, countQuery, queryParams := generateQueryAndParams(
		queryItems,
	)

	err = s.db.QueryRowContext(
		ctx,
		countQuery,
		queryParams[:len(queryParams)-2]..., // exclude limit and offset
	).Scan(
		&count,
	)
	if err != nil {
		return nil, 0, fmt.Errorf(
			"failed to get all products count from product store: %w",
			err,
		)
	}

	rows, err := s.db.QueryContext(ctx, query, queryParams...)
	if err != nil {
		return nil, 0, fmt.Errorf(
			"failed to get all products from product store: %w",
			err,
		)
	}
	defer rows.Close()

	for rows.Next() {
		var product Product
		if err := scanRowIntoProduct(rows, &product); err != nil {
			return nil, 0, fmt.Errorf(
				"failed to scan product from product store: %w",
				err,
			)
		}
		products = append(products, &product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf(
			"failed to complete product rows iteration: %w",
			err,
		)
	}

	return products, count, nil
}

func (s *Store) findByID(ctx context.Context, productID uuid.UUID) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`
	row := s.db.QueryRowContext(ctx, query, productID)

	var product Product
	if err := scanRowIntoProduct(row, &product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrProductNotFound
		}

		return nil, fmt.Errorf(
			"failed to scan product from product store: %w",
			err,
		)
	}

	return &product, nil
}

func (s *Store) findByName(ctx context.Context, name string) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1`
	row := s.db.QueryRowContext(ctx, query, name)

	product := new(Product)
	if err := scanRowIntoProduct(row, product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return product, nil
		}

		return product, fmt.Errorf(
			"/product store/: failed to scan into product: %w",
			err,
		)
	}

	return product, nil
}

func (s *Store) updateOne(ctx context.Context, update *UpdateProductRequest) (*Product, error) {
	setClauses := []string{}
	queryParams := []any{}

	appendSet := func(column string, value any) {
		setClauses = append(
			setClauses,
			fmt.Sprintf("%s = $%d", column, len(queryParams)+1),
		)
		queryParams = append(queryParams, value)
	}

	if update.Name != nil {
		appendSet("name", *update.Name)
	}
	if update.Price != nil {
		appendSet("price", *update.Price)
	}
	if update.Description != nil {
		appendSet("description", *update.Description)
	}
	if update.ShortDescription != nil {
		appendSet("short_description", *update.ShortDescription)
	}
	if update.ImageURL != nil {
		appendSet("image_url", *update.ImageURL)
	}
	if update.Category != nil {
		appendSet("category", *update.Category)
	}
	if update.Stock != nil {
		appendSet("stock", *update.Stock)
	}
	if update.Sizes != nil {
		appendSet("sizes", *update.Sizes)
	}
	if update.IsUnique != nil {
		appendSet("is_unique", *update.IsUnique)
	}

	if len(setClauses) == 0 {
		return s.findByID(ctx, update.ProductID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(
		`UPDATE products SET %s WHERE product_id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "),
		len(queryParams)+1,
		productColumns,
	)
	queryParams = append(queryParams, update.ProductID)

	row := s.db.QueryRowContext(ctx, query, queryParams...)

	var product Product
	if err := scanRowIntoProduct(row, &product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrProductNotFound
		}

		return nil, fmt.Errorf(
			"failed to update product in product store: %w",
			err,
		)
	}

	return &product, nil
}

func (s *Store) deleteOne(ctx context.Context, productID uuid.UUID) error {
	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM products WHERE product_id = $1`,
		productID,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to delete product from product store: %w",
			err,
		)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return servererrors.ErrProductNotFound
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRowIntoProduct(row rowScanner, product *Product) error {
	return row.Scan(
		&product.ProductID,
		&product.Name,
		&product.Price,
		&product.Description,
		&product.ShortDescription,
		&product.ImageURL,
		&product.Category,
		&product.Stock,
		&product.Sizes,
		&product.IsUnique,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
}

func generateQueryAndParams(queryItems *GetAllProductsRequestQuery) (string, string, []any) {
	defaultQuery := `SELECT ` + productColumns + ` FROM products`
	defaultCountQuery := `SELECT COUNT(*) FROM products`

	whereClauses := []string{}
	queryParams := []any{}
	sortClause := ""

	if queryItems.FilterOpts.Search != "" {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf(
				"(name ILIKE $%d OR description ILIKE $%d)",
				len(queryParams)+1, len(queryParams)+2,
			),
		)

		queryParams = append(
			queryParams,
			fmt.Sprintf(
				"%s%%",
				queryItems.FilterOpts.Search,
			),
			fmt.Sprintf(
				"%s%%",
				queryItems.FilterOpts.Search,
			))
	}

	if queryItems.FilterOpts.Category != "" {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf(
				"category = $%d",
				len(queryParams)+1,
			),
		)

		queryParams = append(queryParams, queryItems.FilterOpts.Category)
	}

	if queryItems.FilterOpts.PriceMin > 0.00 {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf(
				"price >= $%d",
				len(queryParams)+1,
			),
		)
		queryParams = append(queryParams, queryItems.FilterOpts.PriceMin)
	}

	if queryItems.FilterOpts.PriceMax > 0.00 {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf("price <= $%d", len(queryParams)+1),
		)

		queryParams = append(queryParams, queryItems.FilterOpts.PriceMax)
	}

	if queryItems.SortOpts.SortBy != "" {
		// SortBy is whitelisted by the dto validation, never interpolated
		// from free-form input.
		sortClause = fmt.Sprintf(
			"ORDER BY %s %s",
			queryItems.SortOpts.SortBy,
			strings.ToUpper(queryItems.SortOpts.SortOpt),
		)
	}

	if len(whereClauses) > 0 {
		whereStr := strings.Join(whereClauses, " AND ")

		defaultQuery += fmt.Sprintf(
			" WHERE %s",
			whereStr,
		)

		defaultCountQuery += fmt.Sprintf(
			" WHERE %s",
			whereStr,
		)
	}

	if sortClause != "" {
		defaultQuery += fmt.Sprintf(" %s", sortClause)
	}

	defaultQuery += fmt.Sprintf(
		" LIMIT $%d OFFSET $%d",
		len(queryParams)+1,
		len(queryParams)+2,
	)
	queryParams = append(
		queryParams,
		queryItems.PageOpts.Limit,
		(queryItems.PageOpts.Page-1)*queryItems.PageOpts.Limit,
	)

	return defaultQuery, defaultCountQuery, queryParams
}
