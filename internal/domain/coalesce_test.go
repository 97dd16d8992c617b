package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Equal(t, "", CoalesceStr("", ""))
	assert.Equal(t, "", CoalesceStr())
}

func TestDecimalFromPtrWithDefault(t *testing.T) {
	fallback := decimal.NewFromInt(7)
	zero := decimal.Zero
	five := decimal.NewFromInt(5)

	assert.True(t, DecimalFromPtrWithDefault(fallback).Equal(fallback))
	assert.True(t, DecimalFromPtrWithDefault(fallback, nil, &five).Equal(five))
	// An explicit zero is a value, not a missing one.
	assert.True(t, DecimalFromPtrWithDefault(fallback, &zero).IsZero())
}
