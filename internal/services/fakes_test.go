package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/tradewisearg/servitec-web/internal/models"
	"github.com/tradewisearg/servitec-web/internal/repositories"
)

// In-memory repositories and a transaction recorder for driving the
// services without a database.

type fakeTx struct {
	commits   int
	rollbacks int
}

func (t *fakeTx) Exec(string, ...interface{}) (sql.Result, error) { return nil, nil }
func (t *fakeTx) QueryRow(string, ...interface{}) *sql.Row        { return nil }
func (t *fakeTx) Query(string, ...interface{}) (*sql.Rows, error) { return nil, nil }
func (t *fakeTx) Commit() error                                   { t.commits++; return nil }
func (t *fakeTx) Rollback() error                                 { t.rollbacks++; return nil }

type txRecorder struct {
	opened []*fakeTx
}

func (r *txRecorder) begin() (serviceTx, error) {
	tx := &fakeTx{}
	r.opened = append(r.opened, tx)
	return tx, nil
}

func (r *txRecorder) commits() int {
	n := 0
	for _, tx := range r.opened {
		n += tx.commits
	}
	return n
}

type fakeProductRepo struct {
	products map[int64]models.Product
	nextID   int64
}

func newFakeProductRepo(products ...models.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[int64]models.Product{}}
	for _, p := range products {
		if p.ID == 0 {
			r.nextID++
			p.ID = r.nextID
		} else if p.ID > r.nextID {
			r.nextID = p.ID
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ repositories.SQLExecutor, p *models.Product) (int64, error) {
	for _, existing := range r.products {
		if strings.EqualFold(existing.Name, p.Name) {
			return 0, repositories.ErrDuplicateKey
		}
	}
	r.nextID++
	p.ID = r.nextID
	r.products[p.ID] = *p
	return p.ID, nil
}

func (r *fakeProductRepo) GetByID(id int64) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (r *fakeProductRepo) GetByNameFold(_ repositories.SQLExecutor, name string) (*models.Product, error) {
	for _, p := range r.products {
		if strings.EqualFold(p.Name, name) {
			cp := p
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeProductRepo) List(category *string, _ string) ([]models.Product, error) {
	products := []models.Product{}
	for _, p := range r.products {
		if category != nil && *category != "" && p.Category != *category {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *fakeProductRepo) Update(_ repositories.SQLExecutor, p *models.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(_ repositories.SQLExecutor, id int64, newQuantity int) error {
	p, ok := r.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Quantity = newQuantity
	r.products[id] = p
	return nil
}

func (r *fakeProductRepo) Delete(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

type fakeMovementRepo struct {
	entries []models.Movement
	nextID  int64
}

func (r *fakeMovementRepo) Append(_ repositories.SQLExecutor, m *models.Movement) (int64, error) {
	r.nextID++
	m.ID = r.nextID
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, *m)
	return m.ID, nil
}

func (r *fakeMovementRepo) GetMovements(models.MovementFilters) ([]models.Movement, int, error) {
	return r.entries, len(r.entries), nil
}

func (r *fakeMovementRepo) ListByType(movementType string) ([]models.Movement, error) {
	matched := []models.Movement{}
	for _, m := range r.entries {
		if m.Type == movementType {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

type summaryCall struct {
	day     string
	revenue float64
	cost    float64
	profit  float64
	units   int
}

type fakeSummaryRepo struct {
	calls []summaryCall
	err   error
}

func (r *fakeSummaryRepo) AddSale(_ repositories.SQLExecutor, day string, revenue, cost, profit float64, units int) error {
	if r.err != nil {
		return r.err
	}
	r.calls = append(r.calls, summaryCall{day: day, revenue: revenue, cost: cost, profit: profit, units: units})
	return nil
}

func (r *fakeSummaryRepo) GetByDay(string) (*models.DailySummary, error) {
	return nil, repositories.ErrNotFound
}

func (r *fakeSummaryRepo) GetRange(string, string) ([]models.DailySummary, error) {
	return []models.DailySummary{}, nil
}
