package core

// HistoryPoint is one month on the dashboard: the archive label ("Nov 2025")
// plus the balance, expense total and savings captured for that month.
type HistoryPoint struct {
	Date    string
	Balance Money
	Total   Money
	Savings Money
}

// MonthLabel is the display format for dashboard month labels.
const MonthLabel = "Jan 2006"

// ArchiveLabel is the format for archive file base names ("November 2025").
const ArchiveLabel = "January 2006"
