package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fenrir/internal/model"
)

func TestParse_ValidAddOrder(t *testing.T) {
	req, perr := Parse("0,1111,1,15,11")
	require.Nil(t, perr)
	assert.Equal(t, model.AddOrder{
		Id:       1111,
		Side:     model.Sell,
		Quantity: 15,
		Price:    11,
	}, req)
}

func TestParse_ValidAddOrder_FractionalPrice(t *testing.T) {
	req, perr := Parse("0,1,0,9,15.5")
	require.Nil(t, perr)
	add := req.(model.AddOrder)
	assert.Equal(t, model.Price(15.5), add.Price)
}

func TestParse_ValidCancelOrder(t *testing.T) {
	req, perr := Parse("1,999")
	require.Nil(t, perr)
	assert.Equal(t, model.CancelOrder{Id: 999}, req)
}

func TestParse_RejectsUnknownMessageType(t *testing.T) {
	_, perr := Parse("9,1,0,1,1")
	require.NotNil(t, perr)
	assert.Contains(t, perr.Error(), "Bad message")
}

func TestParse_RejectsTrailingGarbage(t *testing.T) {
	_, perr := Parse("0,1,0,1,1,")
	require.NotNil(t, perr)
}

func TestParse_RejectsUnknownSide(t *testing.T) {
	_, perr := Parse("0,1,2,1,1")
	require.NotNil(t, perr)
	assert.Equal(t, "invalid side", perr.Reason)
}

func TestParse_RejectsNegativeInteger(t *testing.T) {
	_, perr := Parse("0,-1,0,1,1")
	require.NotNil(t, perr)
	assert.Equal(t, "invalid order id", perr.Reason)
}

func TestParse_RejectsLeadingPlusOnInteger(t *testing.T) {
	_, perr := Parse("0,+1,0,1,1")
	require.NotNil(t, perr)
}

func TestParse_RejectsInteriorSpace(t *testing.T) {
	_, perr := Parse("0, 1,0,1,1")
	require.NotNil(t, perr)
}

func TestParse_RejectsTrailingSpace(t *testing.T) {
	_, perr := Parse("1,999 ")
	require.NotNil(t, perr)
}

func TestParse_RejectsEmptyField(t *testing.T) {
	_, perr := Parse("0,,0,1,1")
	require.NotNil(t, perr)
}

func TestParse_RejectsUnparseableNumeric(t *testing.T) {
	_, perr := Parse("0,1,0,1,abc")
	require.NotNil(t, perr)
	assert.Equal(t, "invalid price", perr.Reason)
}

func TestParse_RejectsNonPositiveQuantity(t *testing.T) {
	_, perr := Parse("0,1,0,0,1")
	require.NotNil(t, perr)
	assert.Equal(t, "quantity must be positive", perr.Reason)
}

func TestParse_RejectsNonPositivePrice(t *testing.T) {
	_, perr := Parse("0,1,0,1,0")
	require.NotNil(t, perr)
	assert.Equal(t, "price must be positive", perr.Reason)
}

func TestParse_RejectsNegativePrice(t *testing.T) {
	_, perr := Parse("0,1,0,1,-5")
	require.NotNil(t, perr)
	assert.Equal(t, "price must be positive", perr.Reason)
}

func TestParse_RejectsInfinityAndNaN(t *testing.T) {
	for _, field := range []string{"Inf", "+Inf", "-Inf", "NaN"} {
		_, perr := Parse("0,1,0,1," + field)
		require.NotNilf(t, perr, "expected rejection of price %q", field)
	}
}

func TestParse_DiagnosticFormat(t *testing.T) {
	_, perr := Parse("garbage-line")
	require.NotNil(t, perr)
	assert.True(t, strings.HasPrefix(perr.Error(), "Bad message: "))
	assert.Contains(t, perr.Error(), "garbage-line")
}

func TestParse_TruncatesOffendingInputTo50Chars(t *testing.T) {
	long := strings.Repeat("9", 80)
	_, perr := Parse("0," + long + ",0,1,1,extra")
	require.NotNil(t, perr)

	const prefix = "Bad message: wrong number of fields for add order : "
	require.True(t, strings.HasPrefix(perr.Error(), prefix))
	truncated := strings.TrimPrefix(perr.Error(), prefix)
	assert.LessOrEqual(t, len(truncated), 50)
}
