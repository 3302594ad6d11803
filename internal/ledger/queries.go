package ledger

import (
	"fmt"
	"sort"
	"time"

	"duit/internal/core"
	"duit/internal/log"
)

// Categories returns the live categories sorted by name, with up-to-date
// totals. The slices are copies; callers cannot disturb ledger state.
func (l *Ledger) Categories() []core.Category {
	out := make([]core.Category, 0, len(l.categories))
	for _, c := range l.categories {
		out = append(out, copyCategory(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Category returns a single live category by name.
func (l *Ledger) Category(name string) (core.Category, bool) {
	c, ok := l.categories[name]
	if !ok {
		return core.Category{}, false
	}
	return copyCategory(c), true
}

// Balance returns the running cash balance.
func (l *Ledger) Balance() core.Money {
	return l.balance
}

// Savings returns the savings counter.
func (l *Ledger) Savings() core.Money {
	return l.savings
}

// TotalExpenses sums all live category totals.
func (l *Ledger) TotalExpenses() core.Money {
	var sum core.Money
	for _, c := range l.categories {
		sum = sum.Add(c.Total)
	}
	return sum
}

// ArchivedMonths lists the archive names oldest first. Names that do not
// parse as "<Month Name> <Year>" sort after the dated ones, alphabetically.
func (l *Ledger) ArchivedMonths() ([]string, error) {
	names, err := l.store.ListArchives()
	if err != nil {
		return nil, fmt.Errorf("list archived months: %w", err)
	}
	sort.Slice(names, func(i, j int) bool {
		ti, oki := parseArchiveName(names[i])
		tj, okj := parseArchiveName(names[j])
		switch {
		case oki && okj:
			return ti.Before(tj)
		case oki != okj:
			return oki
		default:
			return names[i] < names[j]
		}
	})
	return names, nil
}

// LoadArchive returns a frozen month in the same shape as Categories().
// Totals are recomputed on load; recently viewed archives come from the LRU
// cache since archives never change.
func (l *Ledger) LoadArchive(name string) ([]core.Category, error) {
	if cached, ok := l.archives.Get(name); ok {
		return cached, nil
	}
	raw, err := l.store.LoadArchive(name)
	if err != nil {
		return nil, err
	}
	out := make([]core.Category, 0, len(raw))
	for catName, entries := range raw {
		c := core.Category{Name: catName, Entries: entries}
		c.SortEntries()
		c.Recompute()
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	l.archives.Set(name, out)
	return out, nil
}

// HistoryDataset builds the dashboard series: one point per archived month
// in chronological order, then the current month. Archived balance and
// savings come from the rollover snapshots; archives without one contribute
// only their expense total. Unreadable archives are skipped with a logged
// diagnostic so one corrupt file cannot blank the dashboard.
func (l *Ledger) HistoryDataset() []core.HistoryPoint {
	names, err := l.ArchivedMonths()
	if err != nil {
		l.logger.Warn("Failed to list archives for dashboard", log.FieldError, err)
		names = nil
	}

	points := make([]core.HistoryPoint, 0, len(names)+1)
	for _, name := range names {
		cats, err := l.LoadArchive(name)
		if err != nil {
			l.logger.Warn("Skipping unreadable archive", log.FieldArchive, name, log.FieldError, err)
			continue
		}
		var total core.Money
		for _, c := range cats {
			total = total.Add(c.Total)
		}
		point := core.HistoryPoint{Date: monthLabel(name), Total: total}
		if meta, ok := l.store.LoadArchiveMeta(name); ok {
			point.Balance = meta.Balance
			point.Savings = meta.Savings
		}
		points = append(points, point)
	}

	points = append(points, core.HistoryPoint{
		Date:    l.now().Format(core.MonthLabel),
		Balance: l.balance,
		Total:   l.TotalExpenses(),
		Savings: l.savings,
	})
	return points
}

func copyCategory(c *core.Category) core.Category {
	entries := make([]core.Entry, len(c.Entries))
	copy(entries, c.Entries)
	return core.Category{Name: c.Name, Entries: entries, Total: c.Total}
}

// parseArchiveName parses "<Month Name> <Year>", tolerating the numeric
// collision suffix appended by the store.
func parseArchiveName(name string) (time.Time, bool) {
	if t, err := time.Parse(core.ArchiveLabel, name); err == nil {
		return t, true
	}
	// "November 2025 (2)" → parse the leading part.
	var month string
	var year, n int
	if _, err := fmt.Sscanf(name, "%s %d (%d)", &month, &year, &n); err == nil {
		if t, err := time.Parse(core.ArchiveLabel, fmt.Sprintf("%s %d", month, year)); err == nil {
			return t.Add(time.Duration(n) * time.Second), true
		}
	}
	return time.Time{}, false
}

// monthLabel shortens an archive name to the dashboard label ("Nov 2025").
// Names that do not parse are shown as-is.
func monthLabel(name string) string {
	if t, ok := parseArchiveName(name); ok {
		return t.Format(core.MonthLabel)
	}
	return name
}
