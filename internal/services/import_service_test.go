package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tradewisearg/servitec-web/pkg/csvscan"
)

func TestParseImportHeader(t *testing.T) {
	idx, err := parseImportHeader([]string{"Name", "Category", "Cost", "Price", "Quantity", "DeletedAt"})
	if err != nil {
		t.Fatalf("parseImportHeader: %v", err)
	}
	if idx.name != 0 || idx.quantity != 4 || idx.deletedAt != 5 {
		t.Errorf("unexpected column index: %+v", idx)
	}
}

func TestParseImportHeaderCaseAndOrderInsensitive(t *testing.T) {
	idx, err := parseImportHeader([]string{"quantity", " PRICE ", "name", "cost", "Category"})
	if err != nil {
		t.Fatalf("parseImportHeader: %v", err)
	}
	if idx.quantity != 0 || idx.price != 1 || idx.name != 2 {
		t.Errorf("unexpected column index: %+v", idx)
	}
	if idx.deletedAt != -1 {
		t.Errorf("deletedAt should be absent, got %d", idx.deletedAt)
	}
}

func TestParseImportHeaderMissingColumns(t *testing.T) {
	_, err := parseImportHeader([]string{"Name", "Price"})
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
	for _, col := range []string{"Category", "Cost", "Quantity"} {
		if !strings.Contains(err.Error(), col) {
			t.Errorf("error %q should name missing column %s", err, col)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1234", 1234, true},
		{"1234.5", 1234.5, true},
		{"1234,5", 1234.5, true},
		{" 99 ", 99, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12x", 0, false},
	}
	for _, tc := range cases {
		got, err := parseDecimal(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("parseDecimal(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("parseDecimal(%q) should fail", tc.in)
		}
	}
}

func fullHeader() columnIndex {
	idx, _ := parseImportHeader([]string{"Name", "Category", "Cost", "Price", "Quantity", "DeletedAt"})
	return idx
}

func TestParseImportRowValid(t *testing.T) {
	row := parseImportRow(fullHeader(), []string{"Mouse Vertical", "mouse", "1500,50", "2990", "12", ""})
	if row == nil {
		t.Fatal("row should parse")
	}
	if row.Name != "Mouse Vertical" {
		t.Errorf("Name = %q", row.Name)
	}
	if row.Category != "Mouse" {
		t.Errorf("Category = %q, want canonical 'Mouse'", row.Category)
	}
	if row.Cost != 1500.5 || row.Price != 2990 || row.Quantity != 12 {
		t.Errorf("parsed numbers = %v %v %v", row.Cost, row.Price, row.Quantity)
	}
}

func TestParseImportRowSkips(t *testing.T) {
	idx := fullHeader()
	cases := []struct {
		name  string
		cells []string
	}{
		{"soft-deleted", []string{"Mouse", "Mouse", "100", "200", "5", "2024-05-01"}},
		{"missing name", []string{"  ", "Mouse", "100", "200", "5", ""}},
		{"bad cost", []string{"Mouse", "Mouse", "n/a", "200", "5", ""}},
		{"bad price", []string{"Mouse", "Mouse", "100", "-", "5", ""}},
		{"bad quantity", []string{"Mouse", "Mouse", "100", "200", "cinco", ""}},
		{"negative cost", []string{"Mouse", "Mouse", "-100", "200", "5", ""}},
		{"negative price", []string{"Mouse", "Mouse", "100", "-200", "5", ""}},
		{"negative quantity", []string{"Mouse", "Mouse", "100", "200", "-5", ""}},
	}
	for _, tc := range cases {
		if parseImportRow(idx, tc.cells) != nil {
			t.Errorf("%s: row should be skipped", tc.name)
		}
	}
}

func TestParseImportRowUnknownCategoryKept(t *testing.T) {
	row := parseImportRow(fullHeader(), []string{"Cable HDMI", " Cables ", "500", "900", "3", ""})
	if row == nil {
		t.Fatal("row should parse")
	}
	if row.Category != "Cables" {
		t.Errorf("Category = %q, want raw trimmed 'Cables'", row.Category)
	}
}

func TestParseImportRowEmptyCategoryDefaults(t *testing.T) {
	row := parseImportRow(fullHeader(), []string{"Misterioso", "", "10", "20", "1", ""})
	if row == nil {
		t.Fatal("row should parse")
	}
	if row.Category != "Otros" {
		t.Errorf("Category = %q, want default 'Otros'", row.Category)
	}
}

func TestParseImportRowShortRow(t *testing.T) {
	// trailing cells absent entirely; DeletedAt and Quantity out of range
	if parseImportRow(fullHeader(), []string{"Mouse", "Mouse", "100"}) != nil {
		t.Error("row with missing numeric cells should be skipped")
	}
}

func newTestImportService(pr *fakeProductRepo, mr *fakeMovementRepo) (*importService, *txRecorder) {
	rec := &txRecorder{}
	return &importService{productRepo: pr, movementRepo: mr, beginTx: rec.begin}, rec
}

func TestImportFromCSVIdempotent(t *testing.T) {
	pr := newFakeProductRepo()
	mr := &fakeMovementRepo{}
	svc, rec := newTestImportService(pr, mr)

	data := "Name,Category,Cost,Price,Quantity\r\n" +
		"Mouse Vertical,Mouse,1500,2990,12\r\n" +
		"Funda Teclado,Otros,500,900,0\r\n"

	first, err := svc.ImportFromCSV(strings.NewReader(data), "ana@taller.com")
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	if first.Created != 2 || first.Updated != 0 || first.Skipped != 0 {
		t.Errorf("first import = %+v, want 2 created", first)
	}
	// only the non-zero quantity row gets an inbound movement
	if first.Movements != 1 {
		t.Errorf("first import movements = %d, want 1", first.Movements)
	}

	second, err := svc.ImportFromCSV(strings.NewReader(data), "ana@taller.com")
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if second.Created != 0 || second.Updated != 2 || second.Movements != 0 {
		t.Errorf("second import = %+v, want 0 created, 2 updated, 0 movements", second)
	}
	if len(mr.entries) != 1 {
		t.Errorf("ledger got %d entries after re-import, want still 1", len(mr.entries))
	}
	if rec.commits() != 2 {
		t.Errorf("commits = %d, want one per import", rec.commits())
	}
}

func TestImportFromCSVSkipsNegativeQuantityRow(t *testing.T) {
	pr := newFakeProductRepo()
	mr := &fakeMovementRepo{}
	svc, _ := newTestImportService(pr, mr)

	data := "Name,Category,Cost,Price,Quantity\r\n" +
		"Mouse Sano,Mouse,100,200,5\r\n" +
		"Mouse Roto,Mouse,100,200,-5\r\n"

	result, err := svc.ImportFromCSV(strings.NewReader(data), "ana@taller.com")
	if err != nil {
		t.Fatalf("import must not fail on a negative row: %v", err)
	}
	if result.Created != 1 || result.Skipped != 1 {
		t.Errorf("result = %+v, want 1 created, 1 skipped", result)
	}
	if _, err := pr.GetByNameFold(nil, "Mouse Roto"); err == nil {
		t.Error("negative-quantity row must not create a product")
	}
	if len(mr.entries) != 1 {
		t.Errorf("ledger got %d entries, want 1 for the valid row only", len(mr.entries))
	}
}

func TestTemplateCSVRoundTrip(t *testing.T) {
	svc := &importService{}
	data := svc.TemplateCSV()

	if !bytes.HasPrefix(data, []byte("\ufeff")) {
		t.Error("template must start with a UTF-8 BOM")
	}
	if !bytes.Contains(data, []byte("\r\n")) {
		t.Error("template must use CRLF line endings")
	}

	rows, err := csvscan.ScanAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("scanning template: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("template should have header + 1 example row, got %d rows", len(rows))
	}

	idx, err := parseImportHeader(rows[0])
	if err != nil {
		t.Fatalf("template header invalid: %v", err)
	}
	row := parseImportRow(idx, rows[1])
	if row == nil {
		t.Fatal("template example row should import")
	}
	if row.Name != "Auriculares Bluetooth" || row.Category != "Auriculares" {
		t.Errorf("unexpected example row: %+v", row)
	}
	if row.Cost != 8000 || row.Price != 12990 || row.Quantity != 10 {
		t.Errorf("unexpected example numbers: %+v", row)
	}
}
