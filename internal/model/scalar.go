// Package model defines the wire-level tagged unions of the matching core:
// the two input request kinds and the three output event kinds, plus the
// scalar types shared between them.
package model

import "fmt"

// OrderId is the client-supplied identity of an order. Uniqueness across all
// currently-resting orders is enforced by the order book, not by this type.
type OrderId uint64

// Quantity is a resting or incoming order's size. It is strictly positive
// for every order at rest; an order whose quantity reaches zero is removed.
type Quantity uint64

// Price is a finite positive real number, carried as the source's IEEE-754
// double. See DESIGN.md for the float-keying tradeoff this inherits.
type Price float64

// Side distinguishes a buy (bid) order from a sell (ask) order.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
}

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}
