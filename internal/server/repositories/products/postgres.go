package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ktpm/catalog/internal/common"
	"github.com/ktpm/catalog/internal/dbx"
	"github.com/ktpm/catalog/internal/server/models"
)

const columns = `id, product_name, price, quantity, description, category`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.ProductName, &p.Price, &p.Quantity, &p.Description, &p.Category); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return r.scanOne(ctx, `SELECT `+columns+` FROM products WHERE id = $1`, id)
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	query :=
		`INSERT INTO products (product_name, price, quantity, description, category)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING ` + columns

	return r.scanOne(ctx, query, p.ProductName, p.Price, p.Quantity, p.Description, string(p.Category))
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	query :=
		`UPDATE products
		 SET product_name = $2, price = $3, quantity = $4, description = $5, category = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + columns

	return r.scanOne(ctx, query, p.ID, p.ProductName, p.Price, p.Quantity, p.Description, string(p.Category))
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isMalformedID(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) scanOne(ctx context.Context, query string, args ...any) (*models.Product, error) {
	p := &models.Product{}
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&p.ID, &p.ProductName, &p.Price, &p.Quantity, &p.Description, &p.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// isMalformedID reports a non-UUID id rejected by the uuid column.
func isMalformedID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}
