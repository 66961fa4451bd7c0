package customers

import (
	"sort"
	"strings"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
)

// SortField names a sortable column of the admin customer list
type SortField string

const (
	SortByName       SortField = "name"
	SortByEmail      SortField = "email"
	SortByCreated    SortField = "created"
	SortByTotalSpent SortField = "total_spent"
	SortByOrderCount SortField = "order_count"
)

// IsValid checks if the sort field is known
func (f SortField) IsValid() bool {
	switch f {
	case SortByName, SortByEmail, SortByCreated, SortByTotalSpent, SortByOrderCount:
		return true
	default:
		return false
	}
}

// Stats summarises a customer list
type Stats struct {
	Total        int     `json:"total"`
	Guests       int     `json:"guests"`
	Registered   int     `json:"registered"`
	TotalRevenue int64   `json:"total_revenue"`
	AverageSpent float64 `json:"average_spent"`
}

// Filter keeps records whose name or email contains query, ignoring case,
// or whose phone contains it verbatim.
func Filter(records []domain.CustomerRecord, query string) []domain.CustomerRecord {
	if query == "" {
		return records
	}

	lower := strings.ToLower(query)
	out := make([]domain.CustomerRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), lower) ||
			strings.Contains(strings.ToLower(r.Email), lower) ||
			(r.Phone != "" && strings.Contains(r.Phone, query)) {
			out = append(out, r)
		}
	}
	return out
}

// Sort returns a copy of records ordered by field. Unknown fields leave the
// order untouched.
func Sort(records []domain.CustomerRecord, field SortField, descending bool) []domain.CustomerRecord {
	out := make([]domain.CustomerRecord, len(records))
	copy(out, records)

	less := lessFunc(field)
	if less == nil {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(field SortField) func(a, b domain.CustomerRecord) bool {
	switch field {
	case SortByName:
		return func(a, b domain.CustomerRecord) bool { return a.Name < b.Name }
	case SortByEmail:
		return func(a, b domain.CustomerRecord) bool { return a.Email < b.Email }
	case SortByCreated:
		return func(a, b domain.CustomerRecord) bool { return a.Created.Before(b.Created) }
	case SortByTotalSpent:
		return func(a, b domain.CustomerRecord) bool { return a.TotalSpent < b.TotalSpent }
	case SortByOrderCount:
		return func(a, b domain.CustomerRecord) bool { return a.OrderCount < b.OrderCount }
	default:
		return nil
	}
}

// Summarize counts guests and registered customers and their revenue.
func Summarize(records []domain.CustomerRecord) Stats {
	var stats Stats
	stats.Total = len(records)
	for _, r := range records {
		if r.IsGuest {
			stats.Guests++
		}
		stats.TotalRevenue += r.TotalSpent
	}
	stats.Registered = stats.Total - stats.Guests
	if stats.Total > 0 {
		stats.AverageSpent = float64(stats.TotalRevenue) / float64(stats.Total)
	}
	return stats
}
