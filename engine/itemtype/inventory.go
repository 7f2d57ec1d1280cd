package itemtype

import "sort"

// Inventory is an item-type-keyed item count. It is a plain map rather
// than the original's richer struct (which carried an unused, never
// fully-specified ore-accumulator side channel) because spec.md's
// Inventory operation set — Get/Insert/Remove/Entry-like mutation/Iter/
// Keys/CountableSize/IsEmpty — is exactly covered by a map plus the
// deterministic-order helpers below.
type Inventory map[ItemType]int

// NewInventory returns an empty inventory.
func NewInventory() Inventory { return Inventory{} }

// Get returns the count for ty, or 0 if absent.
func (inv Inventory) Get(ty ItemType) int { return inv[ty] }

// Add increments ty's count by n (n may be negative; the count never
// drops below zero — callers are expected to check availability first).
func (inv Inventory) Add(ty ItemType, n int) {
	v := inv[ty] + n
	if v <= 0 {
		delete(inv, ty)
		return
	}
	inv[ty] = v
}

// Remove deletes ty and returns its prior count.
func (inv Inventory) Remove(ty ItemType) int {
	v := inv[ty]
	delete(inv, ty)
	return v
}

// Set overwrites ty's count, matching the original's raw `insert`.
func (inv Inventory) Set(ty ItemType, n int) {
	if n <= 0 {
		delete(inv, ty)
		return
	}
	inv[ty] = n
}

// IsEmpty reports whether the inventory holds no items.
func (inv Inventory) IsEmpty() bool { return len(inv) == 0 }

// CountableSize returns the sum of every item count.
func (inv Inventory) CountableSize() int {
	total := 0
	for _, v := range inv {
		total += v
	}
	return total
}

// Keys returns the inventory's item types in canonical (declaration)
// order, so iteration and serialization are deterministic regardless of
// Go's randomized map order.
func (inv Inventory) Keys() []ItemType {
	keys := make([]ItemType, 0, len(inv))
	for k := range inv {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Iter calls fn for every (item, count) pair in canonical order.
func (inv Inventory) Iter(fn func(ItemType, int)) {
	for _, k := range inv.Keys() {
		fn(k, inv[k])
	}
}

// Clone returns an independent copy.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}

// Merge adds every entry of other into inv.
func (inv Inventory) Merge(other Inventory) {
	for k, v := range other {
		inv.Add(k, v)
	}
}
