// Package checkout validates the order form, totals the cart, and turns it
// into a submitted order.
package checkout

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"armoury-showroom/internal/store"
)

// ValidationError is a human-readable rejection surfaced inline to the user.
// Submission is blocked; no partial order is created.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ParsePrice strips everything but digits and dots from a display price
// ("€120" -> 120). Garbage parses to 0; a broken price never blocks checkout.
func ParsePrice(price string) float64 {
	var b strings.Builder
	for _, r := range price {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return n
}

// Total sums the parsed prices of the items.
func Total(items []store.CartItem) float64 {
	var sum float64
	for _, it := range items {
		sum += ParsePrice(it.Price)
	}
	return sum
}

// Form is the customer contact block as submitted.
type Form struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Comment string
}

// Minimum field lengths, counted in runes after trimming.
const (
	minNameLen    = 2
	minPhoneLen   = 6
	minAddressLen = 6
)

func (f Form) validate(cartCount int) error {
	if cartCount == 0 {
		return &ValidationError{Message: "Корзина пуста. Вернитесь в зал и добавьте артефакт."}
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.Name)) < minNameLen ||
		utf8.RuneCountInString(strings.TrimSpace(f.Phone)) < minPhoneLen ||
		utf8.RuneCountInString(strings.TrimSpace(f.Address)) < minAddressLen {
		return &ValidationError{Message: "Пожалуйста, заполните имя, телефон и адрес доставки."}
	}
	return nil
}

// NewOrderID generates an order identifier from a non-cryptographic random
// value plus a timestamp. Orders are not security tokens anywhere in the
// system, so collision resistance beyond that is not required.
func NewOrderID() string {
	return fmt.Sprintf("ord_%x_%x", rand.Uint64(), time.Now().UnixNano())
}

// Submit validates the form, snapshots the cart into a new order, persists it,
// and only then clears the cart. A failed order write leaves the cart intact.
func Submit(cart *store.Cart, orders *store.Orders, f Form) (store.Order, error) {
	if err := f.validate(cart.Count()); err != nil {
		return store.Order{}, err
	}

	items := cart.Items()
	order := store.Order{
		ID:            NewOrderID(),
		CreatedAt:     time.Now().UTC(),
		PaymentMethod: "cod",
		Status:        store.StatusNew,
		Customer: store.Customer{
			Name:    strings.TrimSpace(f.Name),
			Phone:   strings.TrimSpace(f.Phone),
			Email:   strings.TrimSpace(f.Email),
			Address: strings.TrimSpace(f.Address),
			Comment: strings.TrimSpace(f.Comment),
		},
		Items:    items,
		TotalEur: Total(items),
	}

	if err := orders.Submit(order); err != nil {
		return store.Order{}, err
	}
	if err := cart.Clear(); err != nil {
		return order, err
	}
	return order, nil
}
