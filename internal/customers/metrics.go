package customers

import "github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"

// AggregateMetrics fills TotalSpent, OrderCount and TotalRefunded on each
// registered customer from the charges linked to it. Only succeeded charges
// count as spend and orders; refunds are summed over every linked charge.
func AggregateMetrics(charges []domain.Charge, registered []domain.RegisteredCustomer) []domain.RegisteredCustomer {
	type totals struct {
		spent    int64
		orders   int
		refunded int64
	}

	byCustomer := make(map[string]*totals, len(registered))
	for _, c := range charges {
		if c.IsGuest() {
			continue
		}
		t, ok := byCustomer[c.CustomerID]
		if !ok {
			t = &totals{}
			byCustomer[c.CustomerID] = t
		}
		if c.Status == domain.ChargeStatusSucceeded {
			t.spent += c.Amount
			t.orders++
		}
		t.refunded += c.AmountRefunded
	}

	out := make([]domain.RegisteredCustomer, len(registered))
	for i, rc := range registered {
		if t, ok := byCustomer[rc.ID]; ok {
			rc.TotalSpent = t.spent
			rc.OrderCount = t.orders
			rc.TotalRefunded = t.refunded
		} else {
			rc.TotalSpent, rc.OrderCount, rc.TotalRefunded = 0, 0, 0
		}
		out[i] = rc
	}
	return out
}
