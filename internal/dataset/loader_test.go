package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDataset(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_BasicFile(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir, "groceries.csv", `TID,Items
1,bread,milk
2,bread,diapers,beer
3,milk
`)

	ds, err := Load(path, ",")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if ds.Name != "groceries" {
		t.Errorf("expected name 'groceries', got %q", ds.Name)
	}
	if len(ds.Transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(ds.Transactions))
	}
	// Items are sorted into canonical form.
	want := Transaction{"bread", "milk"}
	if len(ds.Transactions[0]) != 2 || ds.Transactions[0][0] != want[0] || ds.Transactions[0][1] != want[1] {
		t.Errorf("expected %v, got %v", want, ds.Transactions[0])
	}
}

func TestLoad_ItemsColumnMayContainDelimiter(t *testing.T) {
	// The line is split once on the first comma; everything after is
	// the item list.
	dir := t.TempDir()
	path := writeDataset(t, dir, "tx.csv", `TID,Items
100,a,b,c,d
`)

	ds, err := Load(path, ",")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(ds.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(ds.Transactions))
	}
	if len(ds.Transactions[0]) != 4 {
		t.Errorf("expected 4 items, got %v", ds.Transactions[0])
	}
}

func TestLoad_SkipsHeaderBlankAndMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir, "messy.csv", `TID,Items
1,apple

malformed-line-without-comma
2,  banana , apple
3,
`)

	ds, err := Load(path, ",")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	// Line "3," has an empty item list and is dropped too.
	if len(ds.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d: %v", len(ds.Transactions), ds.Transactions)
	}
	// Whitespace around items is trimmed.
	if ds.Transactions[1][0] != "apple" || ds.Transactions[1][1] != "banana" {
		t.Errorf("expected trimmed sorted items, got %v", ds.Transactions[1])
	}
}

func TestLoad_DuplicateItemsCollapse(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir, "dup.csv", `TID,Items
1,milk,milk,bread
`)

	ds, err := Load(path, ",")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(ds.Transactions[0]) != 2 {
		t.Errorf("duplicates must collapse, got %v", ds.Transactions[0])
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv"), ","); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}

func TestUniverse_SortedAndDistinct(t *testing.T) {
	txns := []Transaction{
		{"milk", "bread"},
		{"beer", "bread"},
	}
	universe := Universe(txns)
	want := []string{"beer", "bread", "milk"}
	if len(universe) != len(want) {
		t.Fatalf("expected %v, got %v", want, universe)
	}
	for i := range want {
		if universe[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, universe)
		}
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "retail.csv", "TID,Items\n1,a\n")
	writeDataset(t, dir, "groceries.csv", "TID,Items\n1,a,b\n2,b\n")
	writeDataset(t, dir, "notes.txt", "not a dataset")
	if err := os.Mkdir(filepath.Join(dir, "sub.csv"), 0755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	infos, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(infos))
	}
	// Sorted by name.
	if infos[0].Name != "groceries" || infos[1].Name != "retail" {
		t.Errorf("expected sorted names, got %v, %v", infos[0].Name, infos[1].Name)
	}
}

func TestDiscover_MissingDirIsEmpty(t *testing.T) {
	infos, err := Discover(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Discover() should treat a missing dir as empty, got: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("expected no datasets, got %v", infos)
	}
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "groceries.csv", "TID,Items\n1,a,b\n2,b,c\n")

	infos, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}
	info, err := Describe(infos[0], ",")
	if err != nil {
		t.Fatalf("Describe() failed: %v", err)
	}
	if info.TransactionCount != 2 {
		t.Errorf("expected 2 transactions, got %d", info.TransactionCount)
	}
	if info.ItemCount != 3 {
		t.Errorf("expected 3 items, got %d", info.ItemCount)
	}
}
