package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "order not found: cs_1", (&ErrNotFound{Resource: "order", ID: "cs_1"}).Error())
	assert.Equal(t, "unauthorized", (&ErrUnauthorized{}).Error())
	assert.Equal(t, "invalid API key", (&ErrUnauthorized{Message: "invalid API key"}).Error())
	assert.Equal(t,
		"invalid status transition from shipped to pending",
		(&ErrInvalidStateTransition{From: domain.OrderStatusShipped, To: domain.OrderStatusPending}).Error())
	assert.Equal(t, "items: at least one item is required", (&ErrValidation{Field: "items", Message: "at least one item is required"}).Error())
}

func TestErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("load order: %w", &ErrNotFound{Resource: "order", ID: "x"})

	var notFound *ErrNotFound
	assert.True(t, errors.As(wrapped, &notFound))
	assert.Equal(t, "x", notFound.ID)
}
