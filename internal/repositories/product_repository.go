package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tradewisearg/servitec-web/internal/models"

	"github.com/lib/pq"
)

// ProductRepository defines the database operations on the stock collection.
type ProductRepository interface {
	Create(executor SQLExecutor, p *models.Product) (int64, error)
	GetByID(id int64) (*models.Product, error)
	GetByNameFold(executor SQLExecutor, name string) (*models.Product, error)
	List(category *string, sort string) ([]models.Product, error)
	Update(executor SQLExecutor, p *models.Product) error
	UpdateQuantity(executor SQLExecutor, id int64, newQuantity int) error
	Delete(executor SQLExecutor, id int64) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = "id, name, category, cost, price, quantity, image_url, created_at, updated_at"

func scanProduct(row interface{ Scan(...interface{}) error }, p *models.Product) error {
	var imageURL sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Cost, &p.Price, &p.Quantity, &imageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	return nil
}

func (r *productRepository) Create(executor SQLExecutor, p *models.Product) (int64, error) {
	query := `INSERT INTO products (name, category, cost, price, quantity, image_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	currentTime := time.Now()
	p.CreatedAt = currentTime
	p.UpdatedAt = currentTime

	err := executor.QueryRow(query, p.Name, p.Category, p.Cost, p.Price, p.Quantity, p.ImageURL, currentTime, currentTime).Scan(&p.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: product name '%s' already exists (constraint: %s)", ErrDuplicateKey, p.Name, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating product: %v", ErrDatabaseError, err)
	}
	return p.ID, nil
}

func (r *productRepository) GetByID(id int64) (*models.Product, error) {
	p := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	err := scanProduct(r.db.QueryRow(query, id), p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by ID %d: %v", ErrDatabaseError, id, err)
	}
	return p, nil
}

// GetByNameFold resolves a product by case-insensitive name match. Used by
// the CSV import to reconcile rows against existing stock.
func (r *productRepository) GetByNameFold(executor SQLExecutor, name string) (*models.Product, error) {
	p := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE lower(name) = lower($1)`
	err := scanProduct(executor.QueryRow(query, name), p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by name '%s': %v", ErrDatabaseError, name, err)
	}
	return p, nil
}

func (r *productRepository) List(category *string, sort string) ([]models.Product, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + productColumns + ` FROM products`)

	var args []interface{}
	if category != nil && *category != "" {
		queryBuilder.WriteString(" WHERE category = $1")
		args = append(args, *category)
	}

	switch sort {
	case "price_asc":
		queryBuilder.WriteString(" ORDER BY price ASC, name")
	case "price_desc":
		queryBuilder.WriteString(" ORDER BY price DESC, name")
	default:
		queryBuilder.WriteString(" ORDER BY name")
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating products: %v", ErrDatabaseError, err)
	}
	return products, nil
}

func (r *productRepository) Update(executor SQLExecutor, p *models.Product) error {
	query := `UPDATE products SET name = $1, category = $2, cost = $3, price = $4, quantity = $5, image_url = $6, updated_at = $7
	          WHERE id = $8`
	p.UpdatedAt = time.Now()
	result, err := executor.Exec(query, p.Name, p.Category, p.Cost, p.Price, p.Quantity, p.ImageURL, p.UpdatedAt, p.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: product name '%s' already exists (constraint: %s)", ErrDuplicateKey, p.Name, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating product ID %d: %v", ErrDatabaseError, p.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) UpdateQuantity(executor SQLExecutor, id int64, newQuantity int) error {
	result, err := executor.Exec(`UPDATE products SET quantity = $1, updated_at = $2 WHERE id = $3`,
		newQuantity, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating quantity for product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
