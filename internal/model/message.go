package model

import "strconv"

// Request is the tagged union of input message kinds the parser produces
// and the order book consumes: AddOrder and CancelOrder.
type Request interface {
	isRequest()
}

// AddOrder requests that a new limit order enter the book.
type AddOrder struct {
	Id       OrderId
	Side     Side
	Quantity Quantity
	Price    Price
}

func (AddOrder) isRequest() {}

// CancelOrder requests removal of a resting order by id.
type CancelOrder struct {
	Id OrderId
}

func (CancelOrder) isRequest() {}

// Event is the tagged union of output message kinds the order book emits:
// Trade, FullyFilled and PartiallyFilled.
type Event interface {
	isEvent()
	// WireLine renders the event using the §6 output wire format, one line,
	// no trailing newline.
	WireLine() string
}

// Trade records a single maker/taker match. Price is always the resting
// (maker) order's price, never the incoming (taker) order's.
type Trade struct {
	Quantity Quantity
	Price    Price
}

func (Trade) isEvent() {}

func (t Trade) WireLine() string {
	return "2," + formatQuantity(t.Quantity) + "," + formatPrice(t.Price)
}

// FullyFilled announces that the named order's residual quantity has just
// reached zero.
type FullyFilled struct {
	Id OrderId
}

func (FullyFilled) isEvent() {}

func (f FullyFilled) WireLine() string {
	return "3," + formatOrderId(f.Id)
}

// PartiallyFilled announces that the named order traded but still has a
// strictly positive residual quantity.
type PartiallyFilled struct {
	Id        OrderId
	Remaining Quantity
}

func (PartiallyFilled) isEvent() {}

func (p PartiallyFilled) WireLine() string {
	return "4," + formatOrderId(p.Id) + "," + formatQuantity(p.Remaining)
}

func formatOrderId(id OrderId) string {
	return strconv.FormatUint(uint64(id), 10)
}

func formatQuantity(q Quantity) string {
	return strconv.FormatUint(uint64(q), 10)
}

// formatPrice renders a Price the way the source's default double-to-text
// conversion does: "11" for 11.0, "15.5" preserved, no trailing zeros.
func formatPrice(p Price) string {
	return strconv.FormatFloat(float64(p), 'g', 6, 64)
}
