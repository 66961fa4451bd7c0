// Package customers builds the admin customer list from payment processor
// data. Buyers who checked out without an account are grouped into inferred
// guest identities and merged with registered customers.
package customers

import (
	"sort"
	"strings"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
)

const (
	defaultDisplayName = "Guest Customer"
	guestIDPrefix      = "guest_"
)

// guestKey picks the grouping key for a guest charge. Priority is
// email, phone, card fingerprint, then the charge itself so that charges
// with no identifying signal never merge.
func guestKey(c domain.Charge) string {
	switch {
	case c.BillingEmail != "":
		return "email:" + c.BillingEmail
	case c.BillingPhone != "":
		return "phone:" + c.BillingPhone
	case c.CardFingerprint != "":
		return "card:" + c.CardFingerprint
	default:
		return "charge:" + c.ID
	}
}

// guestID derives a stable identifier from a grouping key.
func guestID(key string) string {
	var b strings.Builder
	b.Grow(len(guestIDPrefix) + len(key))
	b.WriteString(guestIDPrefix)
	for _, r := range key {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// GroupGuests clusters charges without a linked customer. Groups are returned
// in the order their key was first seen.
func GroupGuests(charges []domain.Charge) []*domain.GuestGroup {
	index := make(map[string]*domain.GuestGroup)
	var groups []*domain.GuestGroup

	for _, c := range charges {
		if !c.IsGuest() {
			continue
		}

		key := guestKey(c)
		group, ok := index[key]
		if !ok {
			group = &domain.GuestGroup{
				ID:              guestID(key),
				Key:             key,
				Email:           c.BillingEmail,
				Phone:           c.BillingPhone,
				CardFingerprint: c.CardFingerprint,
				BillingName:     c.BillingName,
				Created:         c.Created,
			}
			index[key] = group
			groups = append(groups, group)
		}

		group.Charges = append(group.Charges, c)

		if group.BillingName == "" && c.BillingName != "" {
			group.BillingName = c.BillingName
		}
		if c.Status == domain.ChargeStatusSucceeded {
			group.TotalSpent += c.Amount
		}
		group.TotalRefunded += c.AmountRefunded
		if c.Created.Before(group.Created) {
			group.Created = c.Created
		}
	}

	return groups
}

// Resolve merges registered customers with guest groups inferred from
// charges into one list, newest first. Registered customers are expected to
// carry their metrics already (see AggregateMetrics).
func Resolve(charges []domain.Charge, registered []domain.RegisteredCustomer) []domain.CustomerRecord {
	groups := GroupGuests(charges)

	records := make([]domain.CustomerRecord, 0, len(registered)+len(groups))
	for _, rc := range registered {
		records = append(records, fromRegistered(rc))
	}
	for _, g := range groups {
		records = append(records, fromGuestGroup(g))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Created.After(records[j].Created)
	})

	return records
}

func fromRegistered(rc domain.RegisteredCustomer) domain.CustomerRecord {
	return domain.CustomerRecord{
		ID:                   rc.ID,
		Email:                rc.Email,
		Name:                 firstNonEmpty(rc.Name, rc.Email, defaultDisplayName),
		Phone:                rc.Phone,
		Created:              rc.Created,
		TotalSpent:           rc.TotalSpent,
		OrderCount:           rc.OrderCount,
		TotalRefunded:        rc.TotalRefunded,
		DefaultPaymentMethod: rc.DefaultPaymentMethod,
		Address:              rc.Address,
		IsGuest:              false,
	}
}

func fromGuestGroup(g *domain.GuestGroup) domain.CustomerRecord {
	return domain.CustomerRecord{
		ID:            g.ID,
		Email:         g.Email,
		Name:          guestDisplayName(g),
		Phone:         g.Phone,
		Created:       g.Created,
		TotalSpent:    g.TotalSpent,
		OrderCount:    succeededCount(g.Charges),
		TotalRefunded: g.TotalRefunded,
		IsGuest:       true,
	}
}

func guestDisplayName(g *domain.GuestGroup) string {
	switch {
	case g.BillingName != "":
		return g.BillingName
	case g.Email != "":
		local, _, _ := strings.Cut(g.Email, "@")
		return local
	case g.Phone != "":
		return "Guest (" + g.Phone + ")"
	default:
		return defaultDisplayName
	}
}

func succeededCount(charges []domain.Charge) int {
	n := 0
	for _, c := range charges {
		if c.Status == domain.ChargeStatusSucceeded {
			n++
		}
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
