// Package matching implements the order book: the cross-indexed container
// described in spec §3 and the price-time matching algorithm described in
// spec §4.3. It has no knowledge of the wire format or of how requests
// arrive; it consumes model.Request values and emits model.Event values
// through the sinks passed to Process.
package matching

import (
	"fmt"

	"github.com/tidwall/btree"

	"fenrir/internal/model"
)

// priceLevels is an ordered map from price to price level. The comparator
// fixes traversal direction: ascending for asks (best ask first), descending
// for bids (best bid first). Matching is expressed side-agnostically by
// parameterizing the comparator rather than writing two copies of the book.
type priceLevels = btree.BTreeG[*level]

// locator resolves an OrderId to its exact position: which side, and which
// arena slot. The owning level is recovered via the price index, since (I4)
// guarantees a price lives on at most one side at a time.
type locator struct {
	side model.Side
	slot slot
}

// OrderBook is the matching engine's core data structure: three indices
// (ask, bid, id) maintained in lockstep, backed by a single order arena.
// A zero-value OrderBook is not usable; construct one with NewOrderBook.
type OrderBook struct {
	arena arena

	asks *priceLevels
	bids *priceLevels

	ids        map[model.OrderId]locator
	priceIndex map[model.Price]*level
}

// NewOrderBook constructs an empty order book for a single symbol.
func NewOrderBook() *OrderBook {
	return &OrderBook{
		asks:       btree.NewBTreeG(func(a, b *level) bool { return a.price < b.price }),
		bids:       btree.NewBTreeG(func(a, b *level) bool { return a.price > b.price }),
		ids:        make(map[model.OrderId]locator),
		priceIndex: make(map[model.Price]*level),
	}
}

func (b *OrderBook) sideIndex(side model.Side) *priceLevels {
	if side == model.Buy {
		return b.bids
	}
	return b.asks
}

// Process dispatches a single request, synchronously emitting zero or more
// events to events and zero or more diagnostics to diags. It is the book's
// entire public contract; every mutation of book state happens here.
func (b *OrderBook) Process(req model.Request, events model.EventSink, diags model.DiagnosticSink) {
	switch r := req.(type) {
	case model.AddOrder:
		b.processAdd(r, events, diags)
	case model.CancelOrder:
		b.processCancel(r, diags)
	default:
		panic(fmt.Sprintf("matching: unrecognized request type %T", req))
	}
}

// RestingOrderCount returns the number of orders currently resting in the
// book, i.e. the size of the id index. Used to check (P1).
func (b *OrderBook) RestingOrderCount() int {
	return len(b.ids)
}

// BestBid returns the highest resting buy price, if any.
func (b *OrderBook) BestBid() (model.Price, bool) {
	lvl, ok := b.bids.Min()
	if !ok {
		return 0, false
	}
	return lvl.price, true
}

// BestAsk returns the lowest resting sell price, if any.
func (b *OrderBook) BestAsk() (model.Price, bool) {
	lvl, ok := b.asks.Min()
	if !ok {
		return 0, false
	}
	return lvl.price, true
}

func (b *OrderBook) processAdd(r model.AddOrder, events model.EventSink, diags model.DiagnosticSink) {
	if _, exists := b.ids[r.Id]; exists {
		diags.Diagnose(fmt.Sprintf("Unable to process: Order id is being repeated: %d", r.Id))
		return
	}

	remaining := r.Quantity
	opposite := b.sideIndex(r.Side.Opposite())
	crosses := func(restingPrice model.Price) bool {
		if r.Side == model.Buy {
			return restingPrice <= r.Price
		}
		return restingPrice >= r.Price
	}

	for remaining > 0 {
		lvl, ok := opposite.Min()
		if !ok || !crosses(lvl.price) {
			break
		}

		for remaining > 0 && !lvl.empty() {
			restSlot := lvl.head
			rest := b.arena.get(restSlot)

			traded := min(remaining, rest.qty)
			events.Emit(model.Trade{Quantity: traded, Price: rest.price})

			if traded == remaining {
				events.Emit(model.FullyFilled{Id: r.Id})
				remaining = 0
			} else {
				remaining -= traded
				events.Emit(model.PartiallyFilled{Id: r.Id, Remaining: remaining})
			}

			rest.qty -= traded
			if rest.qty == 0 {
				events.Emit(model.FullyFilled{Id: rest.id})
				delete(b.ids, rest.id)
				lvl.remove(&b.arena, restSlot)
				b.arena.release(restSlot)
			} else {
				events.Emit(model.PartiallyFilled{Id: rest.id, Remaining: rest.qty})
			}
		}

		if lvl.empty() {
			opposite.Delete(lvl)
			delete(b.priceIndex, lvl.price)
		}
	}

	if remaining > 0 {
		b.rest(r.Id, r.Side, r.Price, remaining)
	}
}

// rest inserts an order with residual quantity qty into its own side,
// appending to an existing level in O(1) via the price index, or creating a
// new level in the side's ordered index otherwise.
func (b *OrderBook) rest(id model.OrderId, side model.Side, price model.Price, qty model.Quantity) {
	lvl, ok := b.priceIndex[price]
	if !ok {
		lvl = newLevel(price, side)
		b.sideIndex(side).Set(lvl)
		b.priceIndex[price] = lvl
	}

	s := b.arena.alloc(orderRecord{id: id, side: side, price: price, qty: qty, prev: nilSlot, next: nilSlot})
	lvl.pushBack(&b.arena, s)
	b.ids[id] = locator{side: side, slot: s}
}

func (b *OrderBook) processCancel(r model.CancelOrder, diags model.DiagnosticSink) {
	loc, ok := b.ids[r.Id]
	if !ok {
		diags.Diagnose(fmt.Sprintf("No such order with id: %d", r.Id))
		return
	}

	rec := b.arena.get(loc.slot)
	lvl := b.priceIndex[rec.price]
	lvl.remove(&b.arena, loc.slot)
	b.arena.release(loc.slot)
	delete(b.ids, r.Id)

	if lvl.empty() {
		b.sideIndex(loc.side).Delete(lvl)
		delete(b.priceIndex, lvl.price)
	}
}
