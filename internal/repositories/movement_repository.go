package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tradewisearg/servitec-web/internal/models"
)

// MovementRepository defines database operations on the stock ledger.
// The ledger is append-only: there is deliberately no update or delete.
type MovementRepository interface {
	Append(executor SQLExecutor, m *models.Movement) (int64, error)
	GetMovements(filters models.MovementFilters) ([]models.Movement, int, error)
	// ListByType returns every entry of one type, oldest first, without
	// pagination. Report derivation needs the full sale history.
	ListByType(movementType string) ([]models.Movement, error)
}

type movementRepository struct {
	db *sql.DB
}

// NewMovementRepository creates a new instance of MovementRepository.
func NewMovementRepository(db *sql.DB) MovementRepository {
	return &movementRepository{db: db}
}

func (r *movementRepository) Append(executor SQLExecutor, m *models.Movement) (int64, error) {
	query := `INSERT INTO movements
	          (type, product_name, quantity, prior_quantity, new_quantity, unit_price, total, actor, origin, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		m.Type, m.ProductName, m.Quantity, m.PriorQuantity, m.NewQuantity,
		m.UnitPrice, m.Total, m.Actor, m.Origin, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: appending movement: %v", ErrDatabaseError, err)
	}
	return m.ID, nil
}

func (r *movementRepository) ListByType(movementType string) ([]models.Movement, error) {
	query := `SELECT
	    id, type, product_name, quantity, prior_quantity, new_quantity,
	    unit_price, total, actor, origin, created_at
	  FROM movements WHERE type = $1
	  ORDER BY created_at, id`

	rows, err := r.db.Query(query, movementType)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s movements: %v", ErrDatabaseError, movementType, err)
	}
	defer rows.Close()

	movements := []models.Movement{}
	for rows.Next() {
		var m models.Movement
		var origin sql.NullString
		if err := rows.Scan(
			&m.ID, &m.Type, &m.ProductName, &m.Quantity, &m.PriorQuantity, &m.NewQuantity,
			&m.UnitPrice, &m.Total, &m.Actor, &origin, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning movement: %v", ErrDatabaseError, err)
		}
		if origin.Valid {
			m.Origin = &origin.String
		}
		movements = append(movements, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating movements: %v", ErrDatabaseError, err)
	}
	return movements, nil
}

func (r *movementRepository) GetMovements(filters models.MovementFilters) ([]models.Movement, int, error) {
	movements := []models.Movement{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
	    id, type, product_name, quantity, prior_quantity, new_quantity,
	    unit_price, total, actor, origin, created_at,
	    COUNT(*) OVER() AS total_count
	  FROM movements`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.ProductName != nil && *filters.ProductName != "" {
		conditions = append(conditions, fmt.Sprintf("lower(product_name) = lower($%d)", argCount))
		args = append(args, *filters.ProductName)
		argCount++
	}
	if filters.Type != nil && *filters.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argCount))
		args = append(args, *filters.Type)
		argCount++
	}
	if filters.Origin != nil && *filters.Origin != "" {
		conditions = append(conditions, fmt.Sprintf("origin = $%d", argCount))
		args = append(args, *filters.Origin)
		argCount++
	}
	if filters.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argCount))
		args = append(args, *filters.StartDate)
		argCount++
	}
	if filters.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argCount))
		args = append(args, *filters.EndDate)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 50
	}
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting movements: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Movement
		var origin sql.NullString
		if err := rows.Scan(
			&m.ID, &m.Type, &m.ProductName, &m.Quantity, &m.PriorQuantity, &m.NewQuantity,
			&m.UnitPrice, &m.Total, &m.Actor, &origin, &m.CreatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning movement: %v", ErrDatabaseError, err)
		}
		if origin.Valid {
			m.Origin = &origin.String
		}
		movements = append(movements, m)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating movements: %v", ErrDatabaseError, err)
	}

	return movements, totalCount, nil
}
