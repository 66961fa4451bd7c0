package payments

import (
	"time"

	"github.com/stripe/stripe-go/v78"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
)

func chargeFromStripe(c *stripe.Charge) domain.Charge {
	out := domain.Charge{
		ID:             c.ID,
		Amount:         c.Amount,
		AmountRefunded: c.AmountRefunded,
		Status:         domain.ChargeStatus(c.Status),
		Created:        time.Unix(c.Created, 0).UTC(),
	}
	if c.Customer != nil {
		out.CustomerID = c.Customer.ID
	}
	if c.PaymentIntent != nil {
		out.PaymentIntentID = c.PaymentIntent.ID
	}
	if c.BillingDetails != nil {
		out.BillingEmail = c.BillingDetails.Email
		out.BillingPhone = c.BillingDetails.Phone
		out.BillingName = c.BillingDetails.Name
	}
	if c.PaymentMethodDetails != nil && c.PaymentMethodDetails.Card != nil {
		out.CardFingerprint = c.PaymentMethodDetails.Card.Fingerprint
	}
	return out
}

func customerFromStripe(c *stripe.Customer) domain.RegisteredCustomer {
	out := domain.RegisteredCustomer{
		ID:      c.ID,
		Email:   c.Email,
		Name:    c.Name,
		Phone:   c.Phone,
		Created: time.Unix(c.Created, 0).UTC(),
		Address: addressFromStripe(c.Address),
	}
	if c.InvoiceSettings != nil && c.InvoiceSettings.DefaultPaymentMethod != nil {
		out.DefaultPaymentMethod = c.InvoiceSettings.DefaultPaymentMethod.ID
	}
	return out
}

func productFromStripe(p *stripe.Product, fallbackCurrency string) domain.Product {
	out := domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Images:      p.Images,
		Currency:    fallbackCurrency,
		Metadata:    p.Metadata,
	}
	if p.DefaultPrice != nil {
		out.Price = p.DefaultPrice.UnitAmount
		if p.DefaultPrice.Currency != "" {
			out.Currency = string(p.DefaultPrice.Currency)
		}
	}
	return out
}

func refundFromStripe(r *stripe.Refund) domain.Refund {
	out := domain.Refund{
		ID:       r.ID,
		Amount:   r.Amount,
		Currency: string(r.Currency),
		Status:   string(r.Status),
		Reason:   string(r.Reason),
		Created:  time.Unix(r.Created, 0).UTC(),
	}
	if r.Charge != nil {
		out.ChargeID = r.Charge.ID
	}
	if r.PaymentIntent != nil {
		out.PaymentIntentID = r.PaymentIntent.ID
		if r.PaymentIntent.Customer != nil {
			out.CustomerEmail = r.PaymentIntent.Customer.Email
		}
	}
	return out
}

// summaryFromSession prefers the collected shipping address and falls back
// to the customer's billing address.
func summaryFromSession(s *stripe.CheckoutSession) domain.CheckoutSummary {
	out := domain.CheckoutSummary{
		ID:            s.ID,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Metadata:      s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	if s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
		out.CustomerName = s.CustomerDetails.Name
		out.CustomerPhone = s.CustomerDetails.Phone
	}
	if s.ShippingDetails != nil {
		out.ShippingAddress = addressFromStripe(s.ShippingDetails.Address)
	}
	if out.ShippingAddress == nil && s.CustomerDetails != nil {
		out.ShippingAddress = addressFromStripe(s.CustomerDetails.Address)
	}
	return out
}

func addressFromStripe(a *stripe.Address) *domain.Address {
	if a == nil || (a.Line1 == "" && a.City == "" && a.PostalCode == "") {
		return nil
	}
	return &domain.Address{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}
