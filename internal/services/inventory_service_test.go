package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tradewisearg/servitec-web/internal/models"
)

func newTestInventoryService(pr *fakeProductRepo, mr *fakeMovementRepo, sr *fakeSummaryRepo) (*inventoryService, *txRecorder) {
	rec := &txRecorder{}
	return &inventoryService{
		productRepo:  pr,
		movementRepo: mr,
		summaryRepo:  sr,
		beginTx:      rec.begin,
	}, rec
}

func TestRecordSaleInsufficientStockChangesNothing(t *testing.T) {
	pr := newFakeProductRepo(models.Product{ID: 1, Name: "Mouse Gamer", Cost: 100, Price: 150, Quantity: 2})
	mr := &fakeMovementRepo{}
	sr := &fakeSummaryRepo{}
	svc, rec := newTestInventoryService(pr, mr, sr)

	_, err := svc.RecordSale(RecordSaleRequest{ProductID: 1, Quantity: 5}, "ana@taller.com")
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	p, _ := pr.GetByID(1)
	if p.Quantity != 2 {
		t.Errorf("stock changed to %d, want untouched 2", p.Quantity)
	}
	if len(mr.entries) != 0 {
		t.Errorf("ledger got %d entries, want none", len(mr.entries))
	}
	if len(sr.calls) != 0 {
		t.Errorf("summary got %d increments, want none", len(sr.calls))
	}
	if len(rec.opened) != 0 {
		t.Errorf("a transaction was opened for a rejected sale")
	}
}

func TestRecordSaleCommitsStockLedgerAndTotals(t *testing.T) {
	pr := newFakeProductRepo(models.Product{ID: 1, Name: "Mouse Gamer", Cost: 100, Price: 150, Quantity: 10})
	mr := &fakeMovementRepo{}
	sr := &fakeSummaryRepo{}
	svc, rec := newTestInventoryService(pr, mr, sr)

	result, err := svc.RecordSale(RecordSaleRequest{ProductID: 1, Quantity: 3}, "ana@taller.com")
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}

	if result.Revenue != 450 || result.Cost != 300 || result.Profit != 150 {
		t.Errorf("totals = %v/%v/%v, want 450/300/150", result.Revenue, result.Cost, result.Profit)
	}

	p, _ := pr.GetByID(1)
	if p.Quantity != 7 {
		t.Errorf("stock = %d, want 7", p.Quantity)
	}

	if len(mr.entries) != 1 {
		t.Fatalf("ledger got %d entries, want 1", len(mr.entries))
	}
	m := mr.entries[0]
	if m.Type != models.MovementSale || m.Quantity != 3 || m.PriorQuantity != 10 || m.NewQuantity != 7 {
		t.Errorf("unexpected sale movement: %+v", m)
	}
	if m.Total != m.UnitPrice*float64(m.Quantity) {
		t.Errorf("movement total %v != unit price %v x quantity %d", m.Total, m.UnitPrice, m.Quantity)
	}
	if m.Actor != "ana@taller.com" {
		t.Errorf("actor = %q", m.Actor)
	}

	if rec.commits() != 1 {
		t.Errorf("commits = %d, want 1", rec.commits())
	}

	if len(sr.calls) != 1 {
		t.Fatalf("summary got %d increments, want 1", len(sr.calls))
	}
	call := sr.calls[0]
	if call.day != models.SummaryDay(time.Now()) {
		t.Errorf("summary day = %q", call.day)
	}
	if call.revenue != 450 || call.cost != 300 || call.profit != 150 || call.units != 3 {
		t.Errorf("summary increment = %+v", call)
	}
}

func TestRecordSaleSummaryFailureDoesNotUndoSale(t *testing.T) {
	pr := newFakeProductRepo(models.Product{ID: 1, Name: "Teclado", Cost: 200, Price: 300, Quantity: 5})
	mr := &fakeMovementRepo{}
	sr := &fakeSummaryRepo{err: errors.New("summary store unavailable")}
	svc, _ := newTestInventoryService(pr, mr, sr)

	result, err := svc.RecordSale(RecordSaleRequest{ProductID: 1, Quantity: 2}, "ana@taller.com")
	if err != nil {
		t.Fatalf("sale must succeed despite summary failure, got %v", err)
	}
	if result.Product.Quantity != 3 {
		t.Errorf("stock = %d, want 3", result.Product.Quantity)
	}
	if len(mr.entries) != 1 {
		t.Errorf("ledger got %d entries, want 1", len(mr.entries))
	}
}

func TestCreateProductAppendsInboundMovement(t *testing.T) {
	pr := newFakeProductRepo()
	mr := &fakeMovementRepo{}
	svc, rec := newTestInventoryService(pr, mr, &fakeSummaryRepo{})

	product, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name: "Auriculares Bluetooth", Category: "auriculares", Cost: 8000, Price: 12990, Quantity: 10,
	}, "ana@taller.com")
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if product.Category != "Auriculares" {
		t.Errorf("category = %q, want canonical 'Auriculares'", product.Category)
	}

	if len(mr.entries) != 1 {
		t.Fatalf("ledger got %d entries, want 1", len(mr.entries))
	}
	m := mr.entries[0]
	if m.Type != models.MovementInbound || m.Quantity != 10 || m.PriorQuantity != 0 || m.NewQuantity != 10 {
		t.Errorf("unexpected inbound movement: %+v", m)
	}
	if rec.commits() != 1 {
		t.Errorf("commits = %d, want 1", rec.commits())
	}
}

func TestCreateProductDuplicateName(t *testing.T) {
	pr := newFakeProductRepo(models.Product{ID: 1, Name: "Mouse Gamer", Quantity: 1})
	svc, _ := newTestInventoryService(pr, &fakeMovementRepo{}, &fakeSummaryRepo{})

	_, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name: "mouse gamer", Category: "Mouse", Cost: 10, Price: 20, Quantity: 1,
	}, "ana@taller.com")
	if !errors.Is(err, ErrProductExists) {
		t.Fatalf("expected ErrProductExists, got %v", err)
	}
}

func TestUpdateProductRecordsAdjustment(t *testing.T) {
	pr := newFakeProductRepo(models.Product{ID: 1, Name: "Kit Streaming", Category: "Kit", Cost: 50, Price: 100, Quantity: 10})
	mr := &fakeMovementRepo{}
	svc, _ := newTestInventoryService(pr, mr, &fakeSummaryRepo{})

	_, err := svc.UpdateProduct(1, UpdateProductRequest{
		Name: "Kit Streaming", Category: "Kit", Cost: 50, Price: 100, Quantity: 4,
	}, "ana@taller.com")
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	if len(mr.entries) != 1 {
		t.Fatalf("ledger got %d entries, want 1", len(mr.entries))
	}
	m := mr.entries[0]
	if m.Type != models.MovementOutbound || m.Quantity != 6 || m.PriorQuantity != 10 || m.NewQuantity != 4 {
		t.Errorf("unexpected adjustment movement: %+v", m)
	}
}

func TestUpdateProductSameQuantityNoMovement(t *testing.T) {
	pr := newFakeProductRepo(models.Product{ID: 1, Name: "Kit Streaming", Category: "Kit", Cost: 50, Price: 100, Quantity: 10})
	mr := &fakeMovementRepo{}
	svc, _ := newTestInventoryService(pr, mr, &fakeSummaryRepo{})

	_, err := svc.UpdateProduct(1, UpdateProductRequest{
		Name: "Kit Streaming", Category: "Kit", Cost: 60, Price: 110, Quantity: 10,
	}, "ana@taller.com")
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if len(mr.entries) != 0 {
		t.Errorf("price-only edit appended %d ledger entries, want none", len(mr.entries))
	}
}
