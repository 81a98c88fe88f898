package quotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packquote/internal/core/apperror"
	"packquote/internal/domain/pricing"
)

func TestNormalizeManualNumber(t *testing.T) {
	assert.Nil(t, NormalizeManualNumber(""))
	assert.Nil(t, NormalizeManualNumber("   "))
	assert.Nil(t, NormalizeManualNumber("\t\n"))

	got := NormalizeManualNumber("  PO-123 ")
	require.NotNil(t, got)
	assert.Equal(t, "PO-123", *got)
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusSent, StatusCanceled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("DRAFT").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusCanceled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusApproved.Terminal())
	assert.False(t, StatusSent.Terminal())
}

func TestQuotationValidate(t *testing.T) {
	valid := func() *Quotation {
		return &Quotation{
			ClientID: "c1",
			Entity:   pricing.EntityA,
			Status:   StatusPending,
			Items:    []Item{{ProductID: "p1", Quantity: 1}},
		}
	}

	require.NoError(t, valid().Validate())

	q := valid()
	q.ClientID = ""
	assertValidationErr(t, q.Validate())

	q = valid()
	q.Entity = "ENTITY_X"
	assertValidationErr(t, q.Validate())

	q = valid()
	q.Status = "DRAFT"
	assertValidationErr(t, q.Validate())

	q = valid()
	q.Items = nil
	assertValidationErr(t, q.Validate())

	q = valid()
	q.Items[0].ProductID = ""
	assertValidationErr(t, q.Validate())

	q = valid()
	q.Items[0].Quantity = 0
	assertValidationErr(t, q.Validate())
}

func assertValidationErr(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
