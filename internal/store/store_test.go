package store_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"armoury-showroom/internal/store"
)

func newStore(t *testing.T) *store.LocalStore {
	t.Helper()
	log := logrus.New()
	log.SetOutput(os.Stderr)
	ls, err := store.NewLocalStore(t.TempDir(), log)
	require.NoError(t, err)
	return ls
}

func item(id string) store.CartItem {
	return store.CartItem{ID: id, Title: "Сабля", Price: "€120", ObjectKey: "artifact_01"}
}

func TestLocalStoreMissingKey(t *testing.T) {
	t.Parallel()

	ls := newStore(t)
	assert.Nil(t, ls.Get("nothing"))
	require.NoError(t, ls.Set("k", []byte(`{"a":1}`)))
	assert.Equal(t, []byte(`{"a":1}`), ls.Get("k"))
}

func TestCartPersistsAcrossLoads(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ls, err := store.NewLocalStore(dir, logrus.New())
	require.NoError(t, err)

	c := store.NewCart(ls)
	require.NoError(t, c.Add(item("p1")))
	require.NoError(t, c.Add(item("p2")))

	reloaded := store.NewCart(ls)
	assert.Equal(t, 2, reloaded.Count())
	assert.Equal(t, "p1", reloaded.Items()[0].ID)
}

func TestCartDuplicateAndAbsentAreNoOps(t *testing.T) {
	t.Parallel()

	c := store.NewCart(newStore(t))
	require.NoError(t, c.Add(item("p1")))
	require.NoError(t, c.Add(item("p1")))
	assert.Equal(t, 1, c.Count())

	require.NoError(t, c.Remove("missing"))
	assert.Equal(t, 1, c.Count())

	require.NoError(t, c.Remove("p1"))
	assert.Zero(t, c.Count())
}

func TestCorruptBlobReadsAsEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, store.CartKey+".json"), []byte("{not json"), 0644))
	ls, err := store.NewLocalStore(dir, logrus.New())
	require.NoError(t, err)

	c := store.NewCart(ls)
	assert.Zero(t, c.Count())
}

func TestItemsReturnsCopy(t *testing.T) {
	t.Parallel()

	c := store.NewCart(newStore(t))
	require.NoError(t, c.Add(item("p1")))
	got := c.Items()
	got[0].ID = "tampered"
	assert.Equal(t, "p1", c.Items()[0].ID)
}

func TestCartConcurrentMutation(t *testing.T) {
	t.Parallel()

	c := store.NewCart(newStore(t))
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				_ = c.Add(item(fmt.Sprintf("p%d", g)))
				_ = c.Items()
				_ = c.Count()
			}
		}(g)
	}
	wg.Wait()
	assert.Equal(t, 8, c.Count())
}

func order(id string) store.Order {
	return store.Order{
		ID:            id,
		CreatedAt:     time.Now().UTC(),
		PaymentMethod: "cod",
		Customer:      store.Customer{Name: "Иван", Phone: "1234567", Address: "Москва, Арбат 1"},
		Items:         []store.CartItem{item("p1")},
		TotalEur:      120,
		Status:        store.StatusNew,
	}
}

func TestOrdersNewestFirst(t *testing.T) {
	t.Parallel()

	o := store.NewOrders(newStore(t))
	require.NoError(t, o.Submit(order("a")))
	require.NoError(t, o.Submit(order("b")))
	require.NoError(t, o.Submit(order("c")))

	list := o.List()
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "a", list[2].ID)
}

func TestOrdersAdminMutations(t *testing.T) {
	t.Parallel()

	ls := newStore(t)
	o := store.NewOrders(ls)
	require.NoError(t, o.Submit(order("a")))
	require.NoError(t, o.Submit(order("b")))

	require.NoError(t, o.SetStatus("a", store.StatusConfirmed))
	got, ok := o.Get("a")
	require.True(t, ok)
	assert.Equal(t, store.StatusConfirmed, got.Status)

	assert.Error(t, o.SetStatus("a", store.Status("shipped")))

	err := o.SetStatus("zzz", store.StatusCancelled)
	assert.ErrorIs(t, errors.Cause(err), store.ErrOrderNotFound)

	require.NoError(t, o.Delete("b"))
	_, ok = o.Get("b")
	assert.False(t, ok)
	assert.ErrorIs(t, errors.Cause(o.Delete("b")), store.ErrOrderNotFound)

	// Mutations survive a reload.
	reloaded := store.NewOrders(ls)
	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, store.StatusConfirmed, list[0].Status)
}

func TestOrdersConcurrentSubmit(t *testing.T) {
	t.Parallel()

	o := store.NewOrders(newStore(t))
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			_ = o.Submit(order(fmt.Sprintf("ord_%d", g)))
			o.List()
			o.Stats()
		}(g)
	}
	wg.Wait()
	assert.Len(t, o.List(), 8)
}

func TestOrdersStats(t *testing.T) {
	t.Parallel()

	o := store.NewOrders(newStore(t))
	require.NoError(t, o.Submit(order("a")))
	require.NoError(t, o.Submit(order("b")))
	require.NoError(t, o.SetStatus("b", store.StatusCancelled))

	stats := o.Stats()
	assert.Equal(t, 1, stats[store.StatusNew])
	assert.Equal(t, 0, stats[store.StatusConfirmed])
	assert.Equal(t, 1, stats[store.StatusCancelled])
}
