package core

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// SavingsCategory is the reserved category name. Entries added under it are
// mirrored into the standalone savings counter in addition to decreasing the
// balance like any other expense.
const SavingsCategory = "Savings"

// DateLayout is the wire format for payment dates: zero-padded day and month,
// four-digit year.
const DateLayout = "02-01-2006"

type (
	// Date is a calendar day. Only the year, month and day components are
	// meaningful; the time of day is always midnight UTC.
	Date struct {
		time.Time
	}

	// Entry is a single dated monetary line item inside a category.
	Entry struct {
		Description string `json:"description"`
		PaymentDate Date   `json:"payment_date"`
		Value       Money  `json:"value"`
	}

	// Category is a named bucket of entries for one month. Total is derived
	// from Entries and never persisted; call Recompute after changing them.
	Category struct {
		Name    string
		Entries []Entry
		Total   Money
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category name")
)

// ParseDate parses a DD-MM-YYYY string into a Date. The day and month must be
// zero-padded and the value must be a real calendar date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(DateLayout) {
		return Date{}, ErrInvalidDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String returns the wire format DD-MM-YYYY.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// Before reports whether d falls on an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// SameMonth reports whether d falls in the given month of the given year.
func (d Date) SameMonth(year int, month time.Month) bool {
	return d.Year() == year && d.Month() == month
}

// MarshalJSON encodes the date as a quoted DD-MM-YYYY string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON decodes a quoted DD-MM-YYYY string. Any other shape or an
// impossible calendar date is an error; persisted dates must be valid.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (e Entry) Validate() error {
	if err := e.PaymentDate.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

// SortEntries orders the entries ascending by payment date. The sort is
// stable so entries on the same day keep their insertion order.
func (c *Category) SortEntries() {
	sort.SliceStable(c.Entries, func(i, j int) bool {
		return c.Entries[i].PaymentDate.Before(c.Entries[j].PaymentDate)
	})
}

// Recompute refreshes the derived total from the entries.
func (c *Category) Recompute() {
	var sum Money
	for _, e := range c.Entries {
		sum = sum.Add(e.Value)
	}
	c.Total = sum
}

// EarliestDate returns the payment date of the first entry, assuming the
// entries are sorted. ok is false for an empty category.
func (c *Category) EarliestDate() (Date, bool) {
	if len(c.Entries) == 0 {
		return Date{}, false
	}
	return c.Entries[0].PaymentDate, true
}
