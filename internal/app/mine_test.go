package app

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDataset(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	return path
}

func TestPromptThreshold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{
			name:  "valid value accepted",
			input: "0.25\n",
			want:  0.25,
		},
		{
			name:  "empty takes default",
			input: "\n",
			want:  0.3,
		},
		{
			name:  "retries until valid",
			input: "abc\n1.5\n0\n0.4\n",
			want:  0.4,
		},
		{
			name:  "boundary one accepted",
			input: "1\n",
			want:  1.0,
		},
		{
			name:  "exhausted input takes default",
			input: "",
			want:  0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := bufio.NewReader(strings.NewReader(tt.input))
			var out bytes.Buffer

			got := promptThreshold(in, &out, "minimum support", 0.3)
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if !strings.Contains(out.String(), "minimum support") {
				t.Error("expected the prompt to name the threshold")
			}
		})
	}
}

func TestPromptDataset(t *testing.T) {
	dataDir := t.TempDir()
	writeDataset(t, dataDir, "alpha.csv", "TID,Items\n1,A\n")
	writeDataset(t, dataDir, "beta.csv", "TID,Items\n1,B\n")

	t.Run("menu selection", func(t *testing.T) {
		in := bufio.NewReader(strings.NewReader("2\n"))
		var out bytes.Buffer

		path, err := promptDataset(in, &out, dataDir)
		if err != nil {
			t.Fatalf("promptDataset() failed: %v", err)
		}
		if filepath.Base(path) != "beta.csv" {
			t.Errorf("expected beta.csv, got %s", path)
		}
		if !strings.Contains(out.String(), "1. alpha") || !strings.Contains(out.String(), "2. beta") {
			t.Errorf("expected a numbered menu, got:\n%s", out.String())
		}
	})

	t.Run("out of range then valid", func(t *testing.T) {
		in := bufio.NewReader(strings.NewReader("9\n1\n"))
		var out bytes.Buffer

		path, err := promptDataset(in, &out, dataDir)
		if err != nil {
			t.Fatalf("promptDataset() failed: %v", err)
		}
		if filepath.Base(path) != "alpha.csv" {
			t.Errorf("expected alpha.csv, got %s", path)
		}
	})

	t.Run("direct path accepted", func(t *testing.T) {
		direct := writeDataset(t, t.TempDir(), "direct.csv", "TID,Items\n1,C\n")
		in := bufio.NewReader(strings.NewReader(direct + "\n"))
		var out bytes.Buffer

		path, err := promptDataset(in, &out, dataDir)
		if err != nil {
			t.Fatalf("promptDataset() failed: %v", err)
		}
		if path != direct {
			t.Errorf("expected %s, got %s", direct, path)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		in := bufio.NewReader(strings.NewReader(""))
		var out bytes.Buffer

		if _, err := promptDataset(in, &out, t.TempDir()); err == nil {
			t.Error("expected an error when no datasets exist")
		}
	})
}

func TestRunMine_EndToEnd(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()
	path := writeDataset(t, dataDir, "baskets.csv", "TID,Items\n1,A,B\n2,A,B,C\n3,A\n4,B,C\n")

	oldDB, oldDataset, oldOut, oldQuiet := dbPath, mineDataset, mineOutDir, mineQuiet
	dbPath = filepath.Join(t.TempDir(), "test.db")
	mineDataset = path
	mineOutDir = outDir
	mineQuiet = true
	defer func() {
		dbPath, mineDataset, mineOutDir, mineQuiet = oldDB, oldDataset, oldOut, oldQuiet
	}()

	if err := runMine(mineCmd, nil); err != nil {
		t.Fatalf("runMine() failed: %v", err)
	}

	// The run is recorded with results for every algorithm.
	st, err := openStore()
	if err != nil {
		t.Fatalf("openStore() failed: %v", err)
	}
	defer st.Close()

	runs, err := st.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	if runs[0].Dataset != "baskets" || runs[0].TransactionCount != 4 {
		t.Errorf("unexpected run: %+v", runs[0])
	}

	algorithms, err := st.RunAlgorithms(runs[0].ID)
	if err != nil {
		t.Fatalf("RunAlgorithms() failed: %v", err)
	}
	if len(algorithms) != 3 {
		t.Errorf("expected 3 algorithms recorded, got %v", algorithms)
	}

	// CSV exports landed under <outdir>/<dataset>/.
	for _, rel := range []string{
		filepath.Join("baskets", "bruteforce", "frequent_itemsets.csv"),
		filepath.Join("baskets", "apriori", "association_rules.csv"),
		filepath.Join("baskets", "timings.csv"),
	} {
		if _, err := os.Stat(filepath.Join(outDir, rel)); err != nil {
			t.Errorf("expected export %s: %v", rel, err)
		}
	}
}

func TestRunMine_SingleAlgorithm(t *testing.T) {
	dataDir := t.TempDir()
	path := writeDataset(t, dataDir, "small.csv", "TID,Items\n1,A,B\n2,A\n")

	oldDB, oldDataset, oldOut, oldQuiet, oldAlgos := dbPath, mineDataset, mineOutDir, mineQuiet, mineAlgorithms
	dbPath = filepath.Join(t.TempDir(), "test.db")
	mineDataset = path
	mineOutDir = t.TempDir()
	mineQuiet = true
	mineAlgorithms = "apriori"
	defer func() {
		dbPath, mineDataset, mineOutDir, mineQuiet, mineAlgorithms = oldDB, oldDataset, oldOut, oldQuiet, oldAlgos
	}()

	if err := runMine(mineCmd, nil); err != nil {
		t.Fatalf("runMine() failed: %v", err)
	}

	st, err := openStore()
	if err != nil {
		t.Fatalf("openStore() failed: %v", err)
	}
	defer st.Close()

	runs, err := st.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	algorithms, err := st.RunAlgorithms(runs[0].ID)
	if err != nil {
		t.Fatalf("RunAlgorithms() failed: %v", err)
	}
	if len(algorithms) != 1 || algorithms[0] != "apriori" {
		t.Errorf("expected only apriori recorded, got %v", algorithms)
	}
}

func TestRunMine_FailedRunNotRecorded(t *testing.T) {
	dataDir := t.TempDir()
	path := writeDataset(t, dataDir, "baskets.csv", "TID,Items\n1,A,B\n2,A\n")

	// An output "directory" that is actually a file makes the CSV
	// export fail after the run row is inserted.
	blocked := filepath.Join(t.TempDir(), "outputs")
	if err := os.WriteFile(blocked, []byte("not a directory"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	oldDB, oldDataset, oldOut, oldQuiet := dbPath, mineDataset, mineOutDir, mineQuiet
	dbPath = filepath.Join(t.TempDir(), "test.db")
	mineDataset = path
	mineOutDir = blocked
	mineQuiet = true
	defer func() {
		dbPath, mineDataset, mineOutDir, mineQuiet = oldDB, oldDataset, oldOut, oldQuiet
	}()

	if err := runMine(mineCmd, nil); err == nil {
		t.Fatal("expected the export failure to surface")
	}

	st, err := openStore()
	if err != nil {
		t.Fatalf("openStore() failed: %v", err)
	}
	defer st.Close()

	runs, err := st.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected the aborted run to be removed, got %d runs", len(runs))
	}
}

func TestRunMine_MissingDataset(t *testing.T) {
	oldDB, oldDataset := dbPath, mineDataset
	dbPath = filepath.Join(t.TempDir(), "test.db")
	mineDataset = filepath.Join(t.TempDir(), "missing.csv")
	defer func() { dbPath, mineDataset = oldDB, oldDataset }()

	if err := runMine(mineCmd, nil); err == nil {
		t.Error("expected an error for a missing dataset file")
	}
}

func TestRunMine_UnknownAlgorithm(t *testing.T) {
	oldAlgos := mineAlgorithms
	mineAlgorithms = "eclat"
	defer func() { mineAlgorithms = oldAlgos }()

	if err := runMine(mineCmd, nil); err == nil {
		t.Error("expected an error for an unknown algorithm")
	}
}
