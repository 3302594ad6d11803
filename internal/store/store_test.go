package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"duit/internal/core"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	return New(dir, "History"), dir
}

func TestLoadExpensesFreshStart(t *testing.T) {
	s, dir := newTestStore(t)

	// Missing file
	cats, err := s.LoadExpenses()
	if err != nil {
		t.Fatalf("missing file should load empty, got %v", err)
	}
	if len(cats) != 0 {
		t.Fatalf("expected no categories, got %d", len(cats))
	}

	// Zero-byte file
	if err := os.WriteFile(filepath.Join(dir, "current_expenses.json"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	cats, err = s.LoadExpenses()
	if err != nil || len(cats) != 0 {
		t.Fatalf("zero-byte file should load empty, got %d categories (err=%v)", len(cats), err)
	}
}

func TestLoadExpensesBadDateIsFatal(t *testing.T) {
	s, dir := newTestStore(t)
	raw := `{"Rent": [{"description": "x", "payment_date": "99-99-2025", "value": 10.00}]}`
	if err := os.WriteFile(filepath.Join(dir, "current_expenses.json"), []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadExpenses(); err == nil {
		t.Fatalf("expected fatal error for unparseable date")
	}
}

func TestScalarFilesDefaultToZero(t *testing.T) {
	s, dir := newTestStore(t)

	if b := s.LoadBalance(); !b.IsZero() {
		t.Fatalf("missing balance file should default to zero, got %d", b.Cents)
	}
	if err := os.WriteFile(filepath.Join(dir, "current_savings.json"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if sv := s.LoadSavings(); !sv.IsZero() {
		t.Fatalf("malformed savings file should default to zero, got %d", sv.Cents)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	cats := map[string][]core.Entry{
		"Rent": {
			{Description: "Nov rent", PaymentDate: core.NewDate(2025, 11, 1), Value: core.Money{Cents: 120000}},
		},
		"Groceries": {
			{Description: "weekly", PaymentDate: core.NewDate(2025, 11, 3), Value: core.Money{Cents: 15075}},
			{Description: "top-up", PaymentDate: core.NewDate(2025, 11, 10), Value: core.Money{Cents: 4200}},
		},
	}
	if err := s.SaveExpenses(cats); err != nil {
		t.Fatalf("save expenses: %v", err)
	}
	if err := s.SaveBalance(core.Money{Cents: 380000}); err != nil {
		t.Fatalf("save balance: %v", err)
	}
	if err := s.SaveSavings(core.Money{Cents: 20000}); err != nil {
		t.Fatalf("save savings: %v", err)
	}

	back, err := s.LoadExpenses()
	if err != nil {
		t.Fatalf("load expenses: %v", err)
	}
	if len(back) != 2 || len(back["Groceries"]) != 2 {
		t.Fatalf("unexpected reload shape: %+v", back)
	}
	if back["Rent"][0].Value.Cents != 120000 {
		t.Fatalf("rent entry value lost: %d", back["Rent"][0].Value.Cents)
	}
	if b := s.LoadBalance(); b.Cents != 380000 {
		t.Fatalf("balance round trip: %d", b.Cents)
	}
	if sv := s.LoadSavings(); sv.Cents != 20000 {
		t.Fatalf("savings round trip: %d", sv.Cents)
	}
}

func TestSaveExpensesFormat(t *testing.T) {
	s, dir := newTestStore(t)
	cats := map[string][]core.Entry{
		"Rent": {{Description: "Nov rent", PaymentDate: core.NewDate(2025, 11, 1), Value: core.Money{Cents: 120000}}},
	}
	if err := s.SaveExpenses(cats); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "current_expenses.json"))
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "    \"Rent\"") {
		t.Fatalf("expected 4-space indent, got:\n%s", text)
	}
	if !strings.Contains(text, `"payment_date": "01-11-2025"`) {
		t.Fatalf("expected DD-MM-YYYY date, got:\n%s", text)
	}
	if !strings.Contains(text, `"value": 1200.00`) {
		t.Fatalf("expected plain number value, got:\n%s", text)
	}
	if strings.Contains(text, "total") {
		t.Fatalf("totals must not be persisted:\n%s", text)
	}
}

func TestArchiveCurrentAndList(t *testing.T) {
	s, dir := newTestStore(t)
	cats := map[string][]core.Entry{
		"Rent": {{Description: "Nov rent", PaymentDate: core.NewDate(2025, 11, 15), Value: core.Money{Cents: 120000}}},
	}
	if err := s.SaveExpenses(cats); err != nil {
		t.Fatal(err)
	}

	meta := ArchiveMeta{
		Balance: core.Money{Cents: 380000},
		Savings: core.Money{Cents: 20000},
		Total:   core.Money{Cents: 120000},
	}
	name, err := s.ArchiveCurrent("November 2025", meta)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if name != "November 2025" {
		t.Fatalf("expected plain name, got %q", name)
	}
	if _, err := os.Stat(filepath.Join(dir, "History", "November 2025.json")); err != nil {
		t.Fatalf("archive file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "current_expenses.json")); !os.IsNotExist(err) {
		t.Fatalf("active file should have been moved, stat err=%v", err)
	}

	names, err := s.ListArchives()
	if err != nil {
		t.Fatalf("list archives: %v", err)
	}
	if len(names) != 1 || names[0] != "November 2025" {
		t.Fatalf("expected [November 2025], got %v", names)
	}

	back, err := s.LoadArchive("November 2025")
	if err != nil {
		t.Fatalf("load archive: %v", err)
	}
	if back["Rent"][0].Value.Cents != 120000 {
		t.Fatalf("archive contents differ: %+v", back)
	}

	gotMeta, ok := s.LoadArchiveMeta("November 2025")
	if !ok || gotMeta != meta {
		t.Fatalf("expected snapshot %+v, got %+v (ok=%v)", meta, gotMeta, ok)
	}
}

func TestArchiveCollisionGetsSuffix(t *testing.T) {
	s, _ := newTestStore(t)
	cats := map[string][]core.Entry{
		"Rent": {{Description: "x", PaymentDate: core.NewDate(2025, 11, 1), Value: core.Money{Cents: 100}}},
	}

	if err := s.SaveExpenses(cats); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ArchiveCurrent("November 2025", ArchiveMeta{}); err != nil {
		t.Fatal(err)
	}

	if err := s.SaveExpenses(cats); err != nil {
		t.Fatal(err)
	}
	name, err := s.ArchiveCurrent("November 2025", ArchiveMeta{})
	if err != nil {
		t.Fatal(err)
	}
	if name != "November 2025 (2)" {
		t.Fatalf("expected suffixed name, got %q", name)
	}

	names, err := s.ListArchives()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("expected two archives, got %v", names)
	}
}

func TestListArchivesNormalisesUnderscores(t *testing.T) {
	s, dir := newTestStore(t)
	histDir := filepath.Join(dir, "History")
	if err := os.MkdirAll(histDir, 0755); err != nil {
		t.Fatal(err)
	}
	// Underscored names are a historical artifact of older archives.
	if err := os.WriteFile(filepath.Join(histDir, "October_2025.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	names, err := s.ListArchives()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "October 2025" {
		t.Fatalf("expected [October 2025], got %v", names)
	}
}

func TestListArchivesSkipsSidecars(t *testing.T) {
	s, dir := newTestStore(t)
	histDir := filepath.Join(dir, "History")
	if err := os.MkdirAll(histDir, 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"November 2025.json":      "{}",
		"November 2025.meta.json": `{"Balance": 1.00, "Savings": 0.00, "Total": 0.00}`,
		"notes.txt":               "ignore me",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(histDir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	names, err := s.ListArchives()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "November 2025" {
		t.Fatalf("expected only the archive, got %v", names)
	}
}

func TestArchiveMetaWireFormat(t *testing.T) {
	data, err := json.Marshal(ArchiveMeta{Balance: core.Money{Cents: 100}, Savings: core.Money{Cents: 50}, Total: core.Money{Cents: 25}})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"Balance":1.00,"Savings":0.50,"Total":0.25}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}
