package store

import "time"

const isoDate = "2006-01-02"

// SaleFilter restricts sales to an ISO-8601 date range. Empty bounds are open.
type SaleFilter struct {
	StartDate string
	EndDate   string
}

// Upper returns the upper bound and whether it is inclusive.
// A bare YYYY-MM-DD end date covers that whole day, so it becomes an
// exclusive bound on the following day.
func (f SaleFilter) Upper() (bound string, inclusive bool) {
	if f.EndDate == "" {
		return "", true
	}
	if len(f.EndDate) == len(isoDate) {
		if day, err := time.Parse(isoDate, f.EndDate); err == nil {
			return day.AddDate(0, 0, 1).Format(isoDate), false
		}
	}
	return f.EndDate, true
}

// Matches reports whether a sale date falls inside the filter, comparing ISO strings lexically
func (f SaleFilter) Matches(date string) bool {
	if f.StartDate != "" && date < f.StartDate {
		return false
	}
	bound, inclusive := f.Upper()
	if bound == "" {
		return true
	}
	if inclusive {
		return date <= bound
	}
	return date < bound
}
