package services

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tradewisearg/servitec-web/internal/models"
	"github.com/tradewisearg/servitec-web/internal/repositories"

	"github.com/tradewisearg/servitec-web/pkg/csvscan"
)

var (
	// ErrImportUnreadable is returned when the file cannot be parsed at all.
	ErrImportUnreadable = errors.New("import file is unreadable")
	// ErrMissingColumns is returned when the header lacks a required column.
	ErrMissingColumns = errors.New("import file is missing required columns")
)

// maxBatchOps caps the number of writes grouped into one commit. The limit
// mirrors the backing store's per-batch write ceiling; imports larger than
// this are committed in chunks.
const maxBatchOps = 500

// Required and optional CSV column headers.
const (
	colName      = "name"
	colCategory  = "category"
	colCost      = "cost"
	colPrice     = "price"
	colQuantity  = "quantity"
	colDeletedAt = "deletedat"
)

// ImportResult summarizes a completed bulk import.
type ImportResult struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
	Movements int `json:"movements"`
}

// ImportService reconciles stock against an uploaded CSV file and exports
// the import template.
type ImportService interface {
	ImportFromCSV(r io.Reader, actor string) (*ImportResult, error)
	TemplateCSV() []byte
}

type importService struct {
	productRepo  repositories.ProductRepository
	movementRepo repositories.MovementRepository
	beginTx      func() (serviceTx, error)
}

// NewImportService creates a new instance of ImportService.
func NewImportService(pr repositories.ProductRepository, mr repositories.MovementRepository, db *sql.DB) ImportService {
	return &importService{productRepo: pr, movementRepo: mr, beginTx: beginSQLTx(db)}
}

// columnIndex maps required/optional columns to their position in the
// header row. deletedAt is -1 when the column is absent.
type columnIndex struct {
	name      int
	category  int
	cost      int
	price     int
	quantity  int
	deletedAt int
}

func parseImportHeader(header []string) (columnIndex, error) {
	idx := columnIndex{name: -1, category: -1, cost: -1, price: -1, quantity: -1, deletedAt: -1}
	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case colName:
			idx.name = i
		case colCategory:
			idx.category = i
		case colCost:
			idx.cost = i
		case colPrice:
			idx.price = i
		case colQuantity:
			idx.quantity = i
		case colDeletedAt:
			idx.deletedAt = i
		}
	}

	var missing []string
	for _, col := range []struct {
		name string
		pos  int
	}{
		{"Name", idx.name}, {"Category", idx.category}, {"Cost", idx.cost},
		{"Price", idx.price}, {"Quantity", idx.quantity},
	} {
		if col.pos == -1 {
			missing = append(missing, col.name)
		}
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

// parseDecimal parses a number tolerating a comma decimal separator
// ("1234,50" → 1234.5).
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}

// importRow is one validated data row of the import file.
type importRow struct {
	Name     string
	Category string
	Cost     float64
	Price    float64
	Quantity int
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}

// parseImportRow validates a data row. It returns nil when the row must be
// skipped: soft-deleted, missing name, or non-numeric or negative required
// fields. Cost, price and quantity are non-negative invariants on products,
// so a negative value is a row error, not a structural one.
func parseImportRow(idx columnIndex, cells []string) *importRow {
	if idx.deletedAt >= 0 && strings.TrimSpace(cellAt(cells, idx.deletedAt)) != "" {
		return nil
	}

	name := strings.TrimSpace(cellAt(cells, idx.name))
	if name == "" {
		return nil
	}

	cost, err := parseDecimal(cellAt(cells, idx.cost))
	if err != nil || cost < 0 {
		return nil
	}
	price, err := parseDecimal(cellAt(cells, idx.price))
	if err != nil || price < 0 {
		return nil
	}
	qtyFloat, err := parseDecimal(cellAt(cells, idx.quantity))
	if err != nil || qtyFloat < 0 {
		return nil
	}

	return &importRow{
		Name:     name,
		Category: models.NormalizeCategory(cellAt(cells, idx.category)),
		Cost:     cost,
		Price:    price,
		Quantity: int(qtyFloat),
	}
}

func (s *importService) ImportFromCSV(r io.Reader, actor string) (*ImportResult, error) {
	rows, err := csvscan.ScanAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrImportUnreadable)
	}

	idx, err := parseImportHeader(rows[0])
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}

	tx, err := s.beginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to start import transaction: %w", err)
	}
	// tx is rotated between batches; the deferred func always sees the
	// current one. Rollback after a successful commit is a no-op.
	defer func() { _ = tx.Rollback() }()
	opCount := 0

	for _, cells := range rows[1:] {
		row := parseImportRow(idx, cells)
		if row == nil {
			result.Skipped++
			continue
		}

		// A row writes at most two records (product + movement); rotate the
		// transaction before it would exceed the per-batch ceiling.
		if opCount+2 > maxBatchOps {
			if err := tx.Commit(); err != nil {
				return nil, fmt.Errorf("failed to commit import batch: %w", err)
			}
			tx, err = s.beginTx()
			if err != nil {
				return nil, fmt.Errorf("failed to start import transaction: %w", err)
			}
			opCount = 0
		}

		existing, err := s.productRepo.GetByNameFold(tx, row.Name)
		switch {
		case err == nil:
			if err := s.applyUpdate(tx, existing, row, actor, result); err != nil {
				return nil, err
			}
			opCount += 2
		case errors.Is(err, repositories.ErrNotFound):
			if err := s.applyCreate(tx, row, actor, result); err != nil {
				return nil, err
			}
			opCount += 2
		default:
			return nil, fmt.Errorf("failed to look up product '%s': %w", row.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import batch: %w", err)
	}
	return result, nil
}

func (s *importService) applyUpdate(tx repositories.SQLExecutor, existing *models.Product, row *importRow, actor string, result *ImportResult) error {
	priorQuantity := existing.Quantity

	existing.Category = row.Category
	existing.Cost = row.Cost
	existing.Price = row.Price
	existing.Quantity = row.Quantity
	if err := s.productRepo.Update(tx, existing); err != nil {
		return fmt.Errorf("failed to update product '%s': %w", existing.Name, err)
	}
	result.Updated++

	if row.Quantity != priorQuantity {
		movementType := models.MovementInbound
		delta := row.Quantity - priorQuantity
		if delta < 0 {
			movementType = models.MovementOutbound
			delta = -delta
		}
		origin := models.OriginCSVImport
		movement := &models.Movement{
			Type:          movementType,
			ProductName:   existing.Name,
			Quantity:      delta,
			PriorQuantity: priorQuantity,
			NewQuantity:   row.Quantity,
			UnitPrice:     row.Price,
			Actor:         actor,
			Origin:        &origin,
		}
		if _, err := s.movementRepo.Append(tx, movement); err != nil {
			return fmt.Errorf("failed to record reconciliation movement for '%s': %w", existing.Name, err)
		}
		result.Movements++
	}
	return nil
}

func (s *importService) applyCreate(tx repositories.SQLExecutor, row *importRow, actor string, result *ImportResult) error {
	product := &models.Product{
		Name:     row.Name,
		Category: row.Category,
		Cost:     row.Cost,
		Price:    row.Price,
		Quantity: row.Quantity,
	}
	if _, err := s.productRepo.Create(tx, product); err != nil {
		return fmt.Errorf("failed to create product '%s': %w", row.Name, err)
	}
	result.Created++

	if row.Quantity != 0 {
		origin := models.OriginCSVImport
		movement := &models.Movement{
			Type:          models.MovementInbound,
			ProductName:   product.Name,
			Quantity:      row.Quantity,
			PriorQuantity: 0,
			NewQuantity:   row.Quantity,
			UnitPrice:     row.Price,
			Actor:         actor,
			Origin:        &origin,
		}
		if _, err := s.movementRepo.Append(tx, movement); err != nil {
			return fmt.Errorf("failed to record inbound movement for '%s': %w", product.Name, err)
		}
		result.Movements++
	}
	return nil
}

// TemplateCSV returns the downloadable import template: header plus one
// example row, UTF-8 with a leading BOM and CRLF line endings so desktop
// spreadsheet apps open it cleanly.
func (s *importService) TemplateCSV() []byte {
	var b strings.Builder
	b.WriteString("\ufeff")
	b.WriteString("Name,Category,Cost,Price,Quantity,DeletedAt\r\n")
	b.WriteString("Auriculares Bluetooth,Auriculares,8000,12990,10,\r\n")
	return []byte(b.String())
}
