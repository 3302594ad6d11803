// Package store is the persistence layer: three JSON files in the data
// directory plus an archive directory of frozen past months. It performs
// pure I/O; all business rules live in the ledger.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"duit/internal/core"
)

const (
	expensesFile = "current_expenses.json"
	balanceFile  = "current_balance.json"
	savingsFile  = "current_savings.json"

	jsonExt = ".json"
	metaExt = ".meta.json"
)

// FileStore reads and writes the ledger state files. Writes are synchronous
// and best-effort: a failure is returned to the caller, nothing is retried.
type FileStore struct {
	dataDir    string
	historyDir string
}

// ArchiveMeta is the per-archive snapshot captured at rollover time. It is
// written beside the archive as a .meta.json sidecar; readers tolerate its
// absence because archives predating it carry none.
type ArchiveMeta struct {
	Balance core.Money `json:"Balance"`
	Savings core.Money `json:"Savings"`
	Total   core.Money `json:"Total"`
}

type balancePayload struct {
	Balance core.Money `json:"Balance"`
}

type savingsPayload struct {
	Savings core.Money `json:"Savings"`
}

// New creates a FileStore rooted at dataDir. historyDir is resolved relative
// to dataDir unless absolute.
func New(dataDir, historyDir string) *FileStore {
	if !filepath.IsAbs(historyDir) {
		historyDir = filepath.Join(dataDir, historyDir)
	}
	return &FileStore{dataDir: dataDir, historyDir: historyDir}
}

// LoadExpenses reads the active month's categories. A missing or zero-byte
// file means an empty month. A malformed file or an unparseable payment date
// is a fatal load error: the file is considered corrupt.
func (s *FileStore) LoadExpenses() (map[string][]core.Entry, error) {
	path := filepath.Join(s.dataDir, expensesFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && len(data) == 0) {
		return map[string][]core.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read expenses file: %w", err)
	}
	var out map[string][]core.Entry
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", expensesFile, err)
	}
	if out == nil {
		out = map[string][]core.Entry{}
	}
	return out, nil
}

// LoadBalance reads the balance counter. A missing or malformed file
// degrades to zero with a logged diagnostic so a fresh install succeeds.
func (s *FileStore) LoadBalance() core.Money {
	var payload balancePayload
	if err := s.readJSON(filepath.Join(s.dataDir, balanceFile), &payload); err != nil {
		slog.Warn("Failed to load balance, defaulting to zero", "file", balanceFile, "error", err)
		return core.Money{}
	}
	return payload.Balance
}

// LoadSavings reads the savings counter, defaulting to zero like LoadBalance.
func (s *FileStore) LoadSavings() core.Money {
	var payload savingsPayload
	if err := s.readJSON(filepath.Join(s.dataDir, savingsFile), &payload); err != nil {
		slog.Warn("Failed to load savings, defaulting to zero", "file", savingsFile, "error", err)
		return core.Money{}
	}
	return payload.Savings
}

// SaveExpenses writes the categories map. Totals are never written; they are
// recomputed from the raw entry lists on every load.
func (s *FileStore) SaveExpenses(categories map[string][]core.Entry) error {
	if categories == nil {
		categories = map[string][]core.Entry{}
	}
	if err := s.writeJSON(filepath.Join(s.dataDir, expensesFile), categories); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	return nil
}

// SaveBalance writes the balance counter.
func (s *FileStore) SaveBalance(balance core.Money) error {
	if err := s.writeJSON(filepath.Join(s.dataDir, balanceFile), balancePayload{Balance: balance}); err != nil {
		return fmt.Errorf("save balance: %w", err)
	}
	return nil
}

// SaveSavings writes the savings counter.
func (s *FileStore) SaveSavings(savings core.Money) error {
	if err := s.writeJSON(filepath.Join(s.dataDir, savingsFile), savingsPayload{Savings: savings}); err != nil {
		return fmt.Errorf("save savings: %w", err)
	}
	return nil
}

// ListArchives returns the archived month names, newest or oldest in no
// particular order. Names are the file base names stripped of .json with
// underscores converted to spaces; .meta.json sidecars are skipped.
func (s *FileStore) ListArchives() ([]string, error) {
	entries, err := os.ReadDir(s.historyDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasSuffix(name, metaExt) || !strings.HasSuffix(name, jsonExt) {
			continue
		}
		base := strings.TrimSuffix(name, jsonExt)
		names = append(names, strings.ReplaceAll(base, "_", " "))
	}
	return names, nil
}

// LoadArchive reads one archived month by its listed name. The archive shape
// is identical to the live expenses file.
func (s *FileStore) LoadArchive(name string) (map[string][]core.Entry, error) {
	var out map[string][]core.Entry
	if err := s.readJSON(filepath.Join(s.historyDir, name+jsonExt), &out); err != nil {
		return nil, fmt.Errorf("load archive %q: %w", name, err)
	}
	if out == nil {
		out = map[string][]core.Entry{}
	}
	return out, nil
}

// LoadArchiveMeta reads the snapshot sidecar for an archive. ok is false when
// the archive predates sidecars or the sidecar is unreadable.
func (s *FileStore) LoadArchiveMeta(name string) (ArchiveMeta, bool) {
	var meta ArchiveMeta
	path := filepath.Join(s.historyDir, name+metaExt)
	if err := s.readJSON(path, &meta); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Failed to load archive snapshot", "archive", name, "error", err)
		}
		return ArchiveMeta{}, false
	}
	return meta, true
}

// ArchiveCurrent retires the active expenses file into the history directory
// under the given month name and writes the snapshot sidecar beside it. When
// an archive of that name already exists the name gets a numeric suffix
// rather than overwriting history. Returns the name actually used.
func (s *FileStore) ArchiveCurrent(name string, meta ArchiveMeta) (string, error) {
	if err := os.MkdirAll(s.historyDir, 0755); err != nil {
		return "", fmt.Errorf("create history directory: %w", err)
	}

	final := name
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(s.historyDir, final+jsonExt)); errors.Is(err, fs.ErrNotExist) {
			break
		}
		final = fmt.Sprintf("%s (%d)", name, n)
	}

	src := filepath.Join(s.dataDir, expensesFile)
	dst := filepath.Join(s.historyDir, final+jsonExt)
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("archive expenses file: %w", err)
	}
	if err := s.writeJSON(filepath.Join(s.historyDir, final+metaExt), meta); err != nil {
		// The archive itself is in place; a missing sidecar only degrades
		// the dashboard.
		slog.Warn("Failed to write archive snapshot", "archive", final, "error", err)
	}
	slog.Info("Archived month", "archive", final)
	return final, nil
}

func (s *FileStore) readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *FileStore) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
