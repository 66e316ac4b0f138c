package store

import (
	"encoding/json"
	"sync"
)

// CartKey is the cart's storage key. The schema under it is a plain list of
// CartItem records; it is not compatible with quantity-tracking carts.
const CartKey = "armoury_cart_v1"

// CartItem is one selected artifact. Price stays the display string; it is
// parsed on demand at checkout.
type CartItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	ObjectKey string `json:"objectKey"`
}

// Cart is the keyed collection of selected items. Antiques are one of a kind:
// an item identifier is unique per cart and re-adding it is a no-op. Every
// mutation synchronously re-serializes the full list. HTTP handlers hit the
// cart from concurrent goroutines, so every access takes the mutex.
type Cart struct {
	ls *LocalStore

	mu    sync.Mutex
	items []CartItem
}

// NewCart loads the persisted cart. A missing or malformed blob is an empty
// cart, never an error.
func NewCart(ls *LocalStore) *Cart {
	c := &Cart{ls: ls}
	raw := ls.Get(CartKey)
	if raw == nil {
		return c
	}
	if err := json.Unmarshal(raw, &c.items); err != nil {
		if ls.log != nil {
			ls.log.WithError(err).Warn("discarding malformed cart blob")
		}
		c.items = nil
	}
	return c
}

func (c *Cart) save() error {
	data, err := json.Marshal(c.items)
	if err != nil {
		return err
	}
	return c.ls.Set(CartKey, data)
}

// Add appends the item unless its identifier is already present.
func (c *Cart) Add(item CartItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.ID == item.ID {
			return nil
		}
	}
	c.items = append(c.items, item)
	return c.save()
}

// Remove drops the item with the given identifier; absent id is a no-op.
func (c *Cart) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, it := range c.items {
		if it.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return c.save()
		}
	}
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return c.save()
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
