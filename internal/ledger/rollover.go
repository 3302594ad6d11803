package ledger

import (
	"fmt"
	"time"

	"duit/internal/core"
	"duit/internal/log"
	"duit/internal/store"
)

// rollover retires the active month when its data belongs to a past month.
// It runs once at construction and is idempotent: after a rollover there are
// no categories left, so a second run returns immediately.
//
// The archive is named after the month of the earliest entry, not after
// "last month", so a ledger untouched for several months still lands in the
// right file. Balance and savings are carried over, not reset.
func (l *Ledger) rollover() error {
	earliest, ok := l.earliestEntryDate()
	if !ok {
		return nil
	}

	now := l.now()
	if !monthsBefore(earliest, now) {
		return nil
	}

	// Flush state as of the retiring month before touching any file.
	if err := l.persist(); err != nil {
		return err
	}

	name := time.Date(earliest.Year(), earliest.Month(), 1, 0, 0, 0, 0, time.UTC).Format(core.ArchiveLabel)
	meta := store.ArchiveMeta{
		Balance: l.balance,
		Savings: l.savings,
		Total:   l.TotalExpenses(),
	}
	archived, err := l.store.ArchiveCurrent(name, meta)
	if err != nil {
		return err
	}

	l.categories = map[string]*core.Category{}
	if err := l.store.SaveExpenses(nil); err != nil {
		return fmt.Errorf("reset expenses after archive: %w", err)
	}

	l.logger.Info("Month rolled over",
		log.FieldOperation, log.OpRollover,
		log.FieldArchive, archived,
		log.FieldMonth, int(earliest.Month()),
		log.FieldYear, earliest.Year())
	return nil
}

// earliestEntryDate returns the minimum payment date across all non-empty
// categories. ok is false when nothing is dated.
func (l *Ledger) earliestEntryDate() (core.Date, bool) {
	var earliest core.Date
	found := false
	for _, c := range l.categories {
		d, ok := c.EarliestDate()
		if !ok {
			continue
		}
		if !found || d.Before(earliest) {
			earliest = d
			found = true
		}
	}
	return earliest, found
}

// monthsBefore reports whether d falls in a month strictly before t's month.
func monthsBefore(d core.Date, t time.Time) bool {
	return d.Year()*12+int(d.Month()) < t.Year()*12+int(t.Month())
}
