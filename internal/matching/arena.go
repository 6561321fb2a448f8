package matching

import "fenrir/internal/model"

// slot is a stable index into an arena's backing slice. Unlike a pointer or
// an iterator into a linked list, a slot survives reslicing and reuse: the
// aliasing hazard the source's iterator-based design invites (see
// DESIGN.md) cannot arise because nothing but the arena ever dereferences
// one directly.
type slot = int32

// nilSlot terminates an intrusive list; no valid record ever occupies it.
const nilSlot slot = -1

// orderRecord is the arena-resident representation of a resting order. The
// Id/Side/Price fields are immutable once allocated; Qty is the only field
// a matching pass mutates. prev/next thread the record into its price
// level's intrusive doubly-linked FIFO list.
type orderRecord struct {
	id    model.OrderId
	side  model.Side
	price model.Price
	qty   model.Quantity
	prev  slot
	next  slot
}

// arena is a stable slot-allocator for orderRecord. Freed slots are reused,
// so the backing slice never outgrows the high-water mark of concurrently
// resting orders.
type arena struct {
	records []orderRecord
	free    []slot
}

func (a *arena) alloc(rec orderRecord) slot {
	if n := len(a.free); n > 0 {
		s := a.free[n-1]
		a.free = a.free[:n-1]
		a.records[s] = rec
		return s
	}
	a.records = append(a.records, rec)
	return slot(len(a.records) - 1)
}

func (a *arena) release(s slot) {
	a.free = append(a.free, s)
}

func (a *arena) get(s slot) *orderRecord {
	return &a.records[s]
}
