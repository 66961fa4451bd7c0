package customers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func at(days int) time.Time {
	return base.AddDate(0, 0, days)
}

func findByID(t *testing.T, records []domain.CustomerRecord, id string) domain.CustomerRecord {
	t.Helper()
	for _, r := range records {
		if r.ID == id {
			return r
		}
	}
	require.Failf(t, "record not found", "id %s", id)
	return domain.CustomerRecord{}
}

func TestResolveEmptyInputs(t *testing.T) {
	records := Resolve(nil, nil)
	assert.Empty(t, records)
}

func TestResolvePartitionsLinkedCharges(t *testing.T) {
	charges := []domain.Charge{
		{ID: "ch_1", CustomerID: "cus_1", BillingEmail: "reg@example.com", Amount: 1000, Status: domain.ChargeStatusSucceeded, Created: at(1)},
		{ID: "ch_2", BillingEmail: "guest@example.com", Amount: 500, Status: domain.ChargeStatusSucceeded, Created: at(2)},
	}
	registered := []domain.RegisteredCustomer{
		{ID: "cus_1", Email: "reg@example.com", Name: "Reg", Created: at(0)},
	}

	groups := GroupGuests(charges)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Charges, 1)
	assert.Equal(t, "ch_2", groups[0].Charges[0].ID)

	records := Resolve(charges, registered)
	require.Len(t, records, 2)
	assert.False(t, findByID(t, records, "cus_1").IsGuest)
	assert.True(t, findByID(t, records, "guest_email_guest_example_com").IsGuest)
}

func TestResolveEmailBeatsPhone(t *testing.T) {
	charges := []domain.Charge{
		{ID: "ch_1", BillingEmail: "a@example.com", BillingPhone: "+61400000000", Created: at(1)},
		{ID: "ch_2", BillingEmail: "b@example.com", BillingPhone: "+61400000000", Created: at(2)},
	}

	groups := GroupGuests(charges)
	require.Len(t, groups, 2)
	assert.Equal(t, "email:a@example.com", groups[0].Key)
	assert.Equal(t, "email:b@example.com", groups[1].Key)
}

func TestResolveKeyPriority(t *testing.T) {
	charges := []domain.Charge{
		{ID: "ch_1", BillingPhone: "+61400000001", CardFingerprint: "fp_1", Created: at(1)},
		{ID: "ch_2", BillingPhone: "+61400000001", Created: at(2)},
		{ID: "ch_3", CardFingerprint: "fp_2", Created: at(3)},
		{ID: "ch_4", CardFingerprint: "fp_2", Created: at(4)},
	}

	groups := GroupGuests(charges)
	require.Len(t, groups, 2)
	assert.Equal(t, "phone:+61400000001", groups[0].Key)
	assert.Len(t, groups[0].Charges, 2)
	assert.Equal(t, "card:fp_2", groups[1].Key)
	assert.Len(t, groups[1].Charges, 2)
}

func TestResolveAnonymousChargesNeverMerge(t *testing.T) {
	charges := []domain.Charge{
		{ID: "ch_a", Amount: 100, Status: domain.ChargeStatusSucceeded, Created: at(1)},
		{ID: "ch_b", Amount: 200, Status: domain.ChargeStatusSucceeded, Created: at(2)},
	}

	groups := GroupGuests(charges)
	require.Len(t, groups, 2)
	assert.Equal(t, "guest_charge_ch_a", groups[0].ID)
	assert.Equal(t, "guest_charge_ch_b", groups[1].ID)
}

func TestResolveGroupTotals(t *testing.T) {
	charges := []domain.Charge{
		{ID: "ch_1", BillingEmail: "jo@example.com", Amount: 1000, AmountRefunded: 0, Status: domain.ChargeStatusSucceeded, Created: at(5)},
		{ID: "ch_2", BillingEmail: "jo@example.com", Amount: 2500, AmountRefunded: 500, Status: domain.ChargeStatusSucceeded, Created: at(2), BillingName: "Jo Citizen"},
		{ID: "ch_3", BillingEmail: "jo@example.com", Amount: 9999, AmountRefunded: 100, Status: domain.ChargeStatusFailed, Created: at(9), BillingName: "Someone Else"},
	}

	records := Resolve(charges, nil)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "guest_email_jo_example_com", r.ID)
	assert.Equal(t, int64(3500), r.TotalSpent)
	assert.Equal(t, int64(600), r.TotalRefunded)
	assert.Equal(t, 2, r.OrderCount)
	assert.Equal(t, at(2), r.Created)
	assert.Equal(t, "Jo Citizen", r.Name, "first non-empty billing name wins")
	assert.Equal(t, "jo@example.com", r.Email)
	assert.True(t, r.IsGuest)
}

func TestResolveGuestDisplayNameFallbacks(t *testing.T) {
	charges := []domain.Charge{
		{ID: "ch_1", BillingEmail: "jane@x.com", Created: at(1)},
		{ID: "ch_2", BillingPhone: "0400111222", Created: at(2)},
		{ID: "ch_3", Created: at(3)},
		{ID: "ch_4", BillingName: "Named Buyer", CardFingerprint: "fp", Created: at(4)},
	}

	records := Resolve(charges, nil)
	require.Len(t, records, 4)
	assert.Equal(t, "jane", findByID(t, records, "guest_email_jane_x_com").Name)
	assert.Equal(t, "Guest (0400111222)", findByID(t, records, "guest_phone_0400111222").Name)
	assert.Equal(t, "Guest Customer", findByID(t, records, "guest_charge_ch_3").Name)
	assert.Equal(t, "Named Buyer", findByID(t, records, "guest_card_fp").Name)
}

func TestResolveRegisteredDisplayNameFallbacks(t *testing.T) {
	registered := []domain.RegisteredCustomer{
		{ID: "cus_1", Name: "Account Name", Email: "a@example.com", Created: at(1)},
		{ID: "cus_2", Email: "b@example.com", Created: at(2)},
		{ID: "cus_3", Created: at(3)},
	}

	records := Resolve(nil, registered)
	require.Len(t, records, 3)
	assert.Equal(t, "Account Name", findByID(t, records, "cus_1").Name)
	assert.Equal(t, "b@example.com", findByID(t, records, "cus_2").Name)

	nameless := findByID(t, records, "cus_3")
	assert.Equal(t, "Guest Customer", nameless.Name)
	assert.False(t, nameless.IsGuest)
}

func TestResolveSortsNewestFirst(t *testing.T) {
	charges := []domain.Charge{
		{ID: "ch_old", BillingEmail: "old@example.com", Created: at(1)},
		{ID: "ch_new", BillingEmail: "new@example.com", Created: at(10)},
	}
	registered := []domain.RegisteredCustomer{
		{ID: "cus_mid", Email: "mid@example.com", Created: at(5)},
	}

	records := Resolve(charges, registered)
	require.Len(t, records, 3)
	assert.Equal(t, "guest_email_new_example_com", records[0].ID)
	assert.Equal(t, "cus_mid", records[1].ID)
	assert.Equal(t, "guest_email_old_example_com", records[2].ID)
}

func TestResolveIsDeterministic(t *testing.T) {
	charges := []domain.Charge{
		{ID: "ch_1", BillingEmail: "a@example.com", Created: at(1)},
		{ID: "ch_2", BillingPhone: "0400", Created: at(1)},
		{ID: "ch_3", CardFingerprint: "fp", Created: at(1)},
		{ID: "ch_4", Created: at(1)},
	}
	registered := []domain.RegisteredCustomer{
		{ID: "cus_1", Created: at(1)},
	}

	first := Resolve(charges, registered)
	second := Resolve(charges, registered)
	assert.Equal(t, first, second)
	assert.Len(t, first, 5)
}

func TestGuestID(t *testing.T) {
	assert.Equal(t, "guest_email_a_b_example_com", guestID("email:a.b@example.com"))
	assert.Equal(t, "guest_phone__61_400", guestID("phone:+61 400"))
}
