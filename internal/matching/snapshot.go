package matching

import "fenrir/internal/model"

// OrderSnapshot is one resting order as reported by Snapshot, in FIFO order
// within its level.
type OrderSnapshot struct {
	Id       model.OrderId
	Quantity model.Quantity
}

// LevelSnapshot is one price level as reported by Snapshot.
type LevelSnapshot struct {
	Price  model.Price
	Orders []OrderSnapshot
}

// BookSnapshot is a read-only, point-in-time view of the book's resting
// orders, best price first on each side. It carries no quantities beyond
// per-order residuals and emits nothing to the output sink: it is a
// diagnostic, not one of the four §6 event kinds.
type BookSnapshot struct {
	Bids []LevelSnapshot
	Asks []LevelSnapshot
}

// Snapshot returns the current state of both sides of the book. It mutates
// nothing and is safe to call at any point between Process calls.
func (b *OrderBook) Snapshot() BookSnapshot {
	return BookSnapshot{
		Bids: b.sideSnapshot(b.bids),
		Asks: b.sideSnapshot(b.asks),
	}
}

func (b *OrderBook) sideSnapshot(idx *priceLevels) []LevelSnapshot {
	var levels []LevelSnapshot
	idx.Scan(func(lvl *level) bool {
		orders := make([]OrderSnapshot, 0, lvl.length)
		for s := lvl.head; s != nilSlot; {
			rec := b.arena.get(s)
			orders = append(orders, OrderSnapshot{Id: rec.id, Quantity: rec.qty})
			s = rec.next
		}
		levels = append(levels, LevelSnapshot{Price: lvl.price, Orders: orders})
		return true
	})
	return levels
}
