// Package ledger is the authoritative in-memory model of the active month:
// categories of dated entries, the running balance and the savings counter.
// Every mutation re-establishes the derived totals, adjusts the balance by
// the opposite delta and persists before returning. The UI drives it through
// the mutation methods and observes it through the read accessors; it never
// touches the files directly.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"duit/internal/cache"
	"duit/internal/core"
	"duit/internal/log"
	"duit/internal/store"
)

var (
	ErrNoSuchCategory  = errors.New("no such category")
	ErrIndexOutOfRange = errors.New("entry index out of range")
)

const (
	defaultArchiveCacheSize = 12
	defaultArchiveCacheTTL  = 15 * time.Minute
)

// Options tunes ledger construction. The zero value gives sane defaults;
// Now exists so tests can pin the rollover clock.
type Options struct {
	ArchiveCacheSize int
	ArchiveCacheTTL  time.Duration
	Now              func() time.Time
	Logger           *log.Logger
}

// Ledger is the single live instance serving the UI. Mutations complete
// synchronously in event order, so no locking is needed.
type Ledger struct {
	store  *store.FileStore
	logger *log.Logger

	categories map[string]*core.Category
	balance    core.Money
	savings    core.Money

	archives *cache.LRU[[]core.Category]
	now      func() time.Time
}

// New loads the persisted state and runs the month-rollover detector.
// An unreadable expenses file is fatal; missing balance or savings files
// degrade to zero inside the store.
func New(st *store.FileStore, opts Options) (*Ledger, error) {
	if opts.ArchiveCacheSize <= 0 {
		opts.ArchiveCacheSize = defaultArchiveCacheSize
	}
	if opts.ArchiveCacheTTL <= 0 {
		opts.ArchiveCacheTTL = defaultArchiveCacheTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentLedger)
	}

	l := &Ledger{
		store:    st,
		logger:   opts.Logger,
		balance:  st.LoadBalance(),
		savings:  st.LoadSavings(),
		archives: cache.NewLRU[[]core.Category](opts.ArchiveCacheSize, opts.ArchiveCacheTTL),
		now:      opts.Now,
	}

	raw, err := st.LoadExpenses()
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	l.categories = make(map[string]*core.Category, len(raw))
	for name, entries := range raw {
		c := &core.Category{Name: name, Entries: entries}
		c.SortEntries()
		c.Recompute()
		l.categories[name] = c
	}

	if err := l.rollover(); err != nil {
		return nil, fmt.Errorf("month rollover: %w", err)
	}

	l.logger.Info("Ledger ready",
		log.FieldBalanceCents, l.balance.Cents,
		log.FieldSavingsCents, l.savings.Cents,
		"categories", len(l.categories))
	return l, nil
}

// AddExpense records a new entry under the named category, creating the
// category on first use. The balance drops by the amount; the reserved
// Savings category additionally mirrors into the savings counter.
func (l *Ledger) AddExpense(name, description string, date core.Date, amount core.Money) error {
	return l.addEntry(name, core.Entry{Description: description, PaymentDate: date, Value: amount}, true)
}

// AddEntry appends an entry to an existing category. Unlike AddExpense it is
// a domain error if the category does not exist.
func (l *Ledger) AddEntry(name string, e core.Entry) error {
	return l.addEntry(name, e, false)
}

func (l *Ledger) addEntry(name string, e core.Entry, create bool) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := e.Validate(); err != nil {
		return err
	}
	c, ok := l.categories[name]
	if !ok {
		if !create {
			return fmt.Errorf("add entry to %q: %w", name, ErrNoSuchCategory)
		}
		c = &core.Category{Name: name}
		l.categories[name] = c
	}

	c.Entries = append(c.Entries, e)
	c.SortEntries()
	c.Recompute()

	l.balance = l.balance.Sub(e.Value)
	l.mirrorSavings(name)

	l.logger.Info("Entry added",
		log.FieldCategory, name,
		log.FieldEntryDesc, e.Description,
		log.FieldAmountCents, e.Value.Cents,
		log.FieldBalanceCents, l.balance.Cents)
	return l.persist()
}

// UpdateEntryAt replaces the entry at index, repricing the balance: the old
// category total is credited back before the new total is charged.
func (l *Ledger) UpdateEntryAt(name string, index int, e core.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	c, ok := l.categories[name]
	if !ok {
		return fmt.Errorf("update entry in %q: %w", name, ErrNoSuchCategory)
	}
	if index < 0 || index >= len(c.Entries) {
		return fmt.Errorf("update entry %d of %q: %w", index, name, ErrIndexOutOfRange)
	}

	l.balance = l.balance.Add(c.Total)
	c.Entries[index] = e
	c.SortEntries()
	c.Recompute()
	l.balance = l.balance.Sub(c.Total)
	l.mirrorSavings(name)

	l.logger.Info("Entry updated",
		log.FieldCategory, name,
		log.FieldEntryIndex, index,
		log.FieldAmountCents, e.Value.Cents,
		log.FieldBalanceCents, l.balance.Cents)
	return l.persist()
}

// DeleteEntryAt removes a single entry from a category. Removing the last
// entry keeps the now-empty category; delete it explicitly to drop it.
func (l *Ledger) DeleteEntryAt(name string, index int) error {
	c, ok := l.categories[name]
	if !ok {
		return fmt.Errorf("delete entry from %q: %w", name, ErrNoSuchCategory)
	}
	if index < 0 || index >= len(c.Entries) {
		return fmt.Errorf("delete entry %d of %q: %w", index, name, ErrIndexOutOfRange)
	}

	removed := c.Entries[index].Value
	c.Entries = append(c.Entries[:index], c.Entries[index+1:]...)
	c.Recompute()
	l.balance = l.balance.Add(removed)
	l.mirrorSavings(name)

	l.logger.Info("Entry deleted",
		log.FieldCategory, name,
		log.FieldEntryIndex, index,
		log.FieldBalanceCents, l.balance.Cents)
	return l.persist()
}

// DeleteCategory removes the whole category and credits its total back to
// the balance. Deleting Savings drops the mirrored amount from the counter.
func (l *Ledger) DeleteCategory(name string) error {
	c, ok := l.categories[name]
	if !ok {
		return fmt.Errorf("delete category %q: %w", name, ErrNoSuchCategory)
	}
	total := c.Total
	delete(l.categories, name)

	l.balance = l.balance.Add(total)
	if name == core.SavingsCategory {
		l.savings = l.savings.Sub(total)
	}

	l.logger.Info("Category deleted",
		log.FieldCategory, name,
		log.FieldAmountCents, total.Cents,
		log.FieldBalanceCents, l.balance.Cents)
	return l.persist()
}

// Deposit adds cash to the balance. Only the balance file is rewritten.
func (l *Ledger) Deposit(amount core.Money) error {
	l.balance = l.balance.Add(amount)
	l.logger.Info("Balance deposit",
		log.FieldAmountCents, amount.Cents,
		log.FieldBalanceCents, l.balance.Cents)
	if err := l.store.SaveBalance(l.balance); err != nil {
		return fmt.Errorf("persist balance: %w", err)
	}
	return nil
}

// mirrorSavings re-derives the savings counter from the Savings category.
// While the category exists the counter is a pure mirror of its total; when
// the category is absent the counter keeps whatever it held.
func (l *Ledger) mirrorSavings(name string) {
	if name != core.SavingsCategory {
		return
	}
	if c, ok := l.categories[core.SavingsCategory]; ok {
		l.savings = c.Total
	}
}

// persist writes all three files. All writes are attempted even when an
// earlier one fails; in-memory state is never rolled back, so the user can
// retry the command.
func (l *Ledger) persist() error {
	errs := []error{
		l.store.SaveExpenses(l.expensesMap()),
		l.store.SaveBalance(l.balance),
		l.store.SaveSavings(l.savings),
	}
	if err := errors.Join(errs...); err != nil {
		l.logger.Error("Persist failed", log.FieldError, err)
		return fmt.Errorf("persist ledger: %w", err)
	}
	return nil
}

func (l *Ledger) expensesMap() map[string][]core.Entry {
	out := make(map[string][]core.Entry, len(l.categories))
	for name, c := range l.categories {
		out[name] = c.Entries
	}
	return out
}

func validateName(name string) error {
	if name == "" {
		return core.ErrEmptyCategory
	}
	return nil
}
