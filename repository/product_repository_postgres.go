package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pdv-pricing/domain"
)

// PostgresProductRepository reads and writes the products table:
//
//	id uuid, sku text, name text, category text, supplier text,
//	cost_price numeric(12,2), sale_price numeric(12,2), updated_at timestamptz
type PostgresProductRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresProductRepository(pool *pgxpool.Pool) *PostgresProductRepository {
	return &PostgresProductRepository{pool: pool}
}

func (r *PostgresProductRepository) List(
	ctx context.Context,
	filter domain.ProductFilter,
) ([]domain.Product, error) {
	query, args := buildProductQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Product, error) {
		var p domain.Product
		err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.Supplier, &p.CostPrice, &p.SalePrice)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	return products, nil
}

// UpdatePrices writes every update in one transaction; a missing product rolls back the batch.
func (r *PostgresProductRepository) UpdatePrices(
	ctx context.Context,
	updates []domain.PriceUpdate,
) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin price update: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(
			`UPDATE products SET cost_price = $1, sale_price = $2, updated_at = now() WHERE id::text = $3`,
			u.CostPrice, u.SalePrice, u.ProductID,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for _, u := range updates {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return fmt.Errorf("update product %s: %w", u.ProductID, err)
		}
		if tag.RowsAffected() == 0 {
			results.Close()
			return fmt.Errorf("product %s: %w", u.ProductID, ErrNotFound)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("update prices: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit price update: %w", err)
	}
	return nil
}

func buildProductQuery(f domain.ProductFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if len(f.IDs) > 0 {
		add("id::text = ANY($%d)", f.IDs)
	}
	if f.Category != "" {
		add("lower(category) = lower($%d)", f.Category)
	}
	if f.Supplier != "" {
		add("lower(supplier) = lower($%d)", f.Supplier)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d)", n, n))
	}

	query := `SELECT id::text, sku, name, category, supplier, cost_price, sale_price FROM products`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	return query + " ORDER BY name", args
}
