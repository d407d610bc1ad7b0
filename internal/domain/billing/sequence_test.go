package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "INV-000123", FormatNumber(SequenceKindInvoice, 123))
	assert.Equal(t, "RCT-000001", FormatNumber(SequenceKindReceipt, 1))
	assert.Equal(t, "INV-1000000", FormatNumber(SequenceKindInvoice, 1000000))
}

func TestSequenceKind(t *testing.T) {
	assert.True(t, SequenceKindInvoice.IsValid())
	assert.True(t, SequenceKindReceipt.IsValid())
	assert.False(t, SequenceKind("order").IsValid())

	assert.Equal(t, "INV", SequenceKindInvoice.Prefix())
	assert.Equal(t, "RCT", SequenceKindReceipt.Prefix())
}
