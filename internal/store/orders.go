package store

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// OrdersKey is the order list's storage key, independent of the cart blob.
const OrdersKey = "armoury_orders_v1"

// Status is an order's lifecycle state. Mutated only from the admin view.
type Status string

const (
	StatusNew       Status = "new"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is one of the three known states.
func ValidStatus(s Status) bool {
	return s == StatusNew || s == StatusConfirmed || s == StatusCancelled
}

// Customer is the checkout contact block, stored verbatim on the order.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Comment string `json:"comment"`
}

// Order is a submitted checkout. Items are a snapshot copy, decoupled from
// the live cart; later cart mutation cannot alter it. PaymentMethod is always
// "cod": settlement at delivery, no online payment integration.
type Order struct {
	ID            string     `json:"id"`
	CreatedAt     time.Time  `json:"createdAt"`
	PaymentMethod string     `json:"paymentMethod"`
	Customer      Customer   `json:"customer"`
	Items         []CartItem `json:"items"`
	TotalEur      float64    `json:"totalEur"`
	Status        Status     `json:"status"`
}

// ErrOrderNotFound is returned by admin mutations on an unknown order id.
var ErrOrderNotFound = errors.New("order not found")

// Orders is the persisted order list, most recent first. Orders are never
// expired or archived; only explicit admin actions mutate or delete them.
// Checkout and the admin handlers run on concurrent goroutines, so every
// access takes the mutex.
type Orders struct {
	ls *LocalStore

	mu   sync.Mutex
	list []Order
}

// NewOrders loads the persisted list; missing or malformed blobs read as empty.
func NewOrders(ls *LocalStore) *Orders {
	o := &Orders{ls: ls}
	raw := ls.Get(OrdersKey)
	if raw == nil {
		return o
	}
	if err := json.Unmarshal(raw, &o.list); err != nil {
		if ls.log != nil {
			ls.log.WithError(err).Warn("discarding malformed orders blob")
		}
		o.list = nil
	}
	return o
}

func (o *Orders) save() error {
	data, err := json.Marshal(o.list)
	if err != nil {
		return err
	}
	return o.ls.Set(OrdersKey, data)
}

// Submit prepends the order and persists. The caller clears the cart only
// after Submit returns without error.
func (o *Orders) Submit(order Order) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.list = append([]Order{order}, o.list...)
	if err := o.save(); err != nil {
		o.list = o.list[1:]
		return err
	}
	return nil
}

// List returns a copy, most recent first.
func (o *Orders) List() []Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Order, len(o.list))
	copy(out, o.list)
	return out
}

// Get returns the order with the given id.
func (o *Orders) Get(id string) (Order, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, ord := range o.list {
		if ord.ID == id {
			return ord, true
		}
	}
	return Order{}, false
}

// SetStatus moves an order to a new lifecycle state.
func (o *Orders) SetStatus(id string, status Status) error {
	if !ValidStatus(status) {
		return errors.Errorf("unknown order status %q", status)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := range o.list {
		if o.list[i].ID == id {
			o.list[i].Status = status
			return o.save()
		}
	}
	return errors.Wrap(ErrOrderNotFound, id)
}

// Delete removes an order permanently.
func (o *Orders) Delete(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := range o.list {
		if o.list[i].ID == id {
			o.list = append(o.list[:i], o.list[i+1:]...)
			return o.save()
		}
	}
	return errors.Wrap(ErrOrderNotFound, id)
}

// Stats counts orders per status.
func (o *Orders) Stats() map[Status]int {
	o.mu.Lock()
	defer o.mu.Unlock()
	stats := map[Status]int{StatusNew: 0, StatusConfirmed: 0, StatusCancelled: 0}
	for _, ord := range o.list {
		stats[ord.Status]++
	}
	return stats
}
