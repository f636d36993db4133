package cart

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("Unknown user has empty cart", func(t *testing.T) {
		s := NewStore()
		assert.True(t, s.Get("u1").IsEmpty())
	})

	t.Run("Update persists on success", func(t *testing.T) {
		s := NewStore()
		c, err := s.Update("u1", func(c *Cart) error {
			_, err := c.Add(Item{ID: "a", Price: 5, Quantity: 2}, OrderTypeGrocery, "")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 10.0, c.TotalAmount())
		assert.Equal(t, 10.0, s.Get("u1").TotalAmount())
		assert.True(t, s.Get("u2").IsEmpty())
	})

	t.Run("Update discards changes on error", func(t *testing.T) {
		s := NewStore()
		_, _ = s.Update("u1", func(c *Cart) error {
			_, err := c.Add(Item{ID: "a", Price: 5, Quantity: 1}, OrderTypeGrocery, "")
			return err
		})

		boom := errors.New("boom")
		c, err := s.Update("u1", func(c *Cart) error {
			_ = c.SetQuantity("a", 9)
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 5.0, c.TotalAmount())
		assert.Equal(t, 5.0, s.Get("u1").TotalAmount())
	})

	t.Run("Snapshots are not affected by later updates", func(t *testing.T) {
		s := NewStore()
		_, _ = s.Update("u1", func(c *Cart) error {
			_, err := c.Add(Item{ID: "a", Price: 5, Quantity: 1}, OrderTypeGrocery, "")
			return err
		})
		snap := s.Get("u1")

		_, _ = s.Update("u1", func(c *Cart) error { return c.SetQuantity("a", 4) })
		assert.Equal(t, 1, snap.Items()[0].Quantity)
	})

	t.Run("Concurrent updates are serialized", func(t *testing.T) {
		s := NewStore()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = s.Update("u1", func(c *Cart) error {
					_, err := c.Add(Item{ID: "a", Price: 1, Quantity: 1}, OrderTypeGrocery, "")
					return err
				})
			}()
		}
		wg.Wait()

		assert.Equal(t, 50, s.Get("u1").Items()[0].Quantity)
		assert.Equal(t, 50.0, s.Get("u1").TotalAmount())
	})
}

func addTo(t *testing.T, s *Store, user string, item Item) {
	t.Helper()
	_, err := s.Update(user, func(c *Cart) error {
		_, err := c.Add(item, OrderTypeGrocery, "")
		return err
	})
	require.NoError(t, err)
}

func TestStore_BeginCheckout(t *testing.T) {
	t.Run("One checkout per user", func(t *testing.T) {
		s := NewStore()
		addTo(t, s, "u1", Item{ID: "a", Price: 5, Quantity: 1})

		snap, release, err := s.BeginCheckout("u1")
		require.NoError(t, err)
		assert.Equal(t, 1, snap.Len())

		_, _, err = s.BeginCheckout("u1")
		assert.ErrorIs(t, err, ErrCheckoutInProgress)

		_, releaseOther, err := s.BeginCheckout("u2")
		require.NoError(t, err)
		releaseOther()

		release()
		release()

		_, release, err = s.BeginCheckout("u1")
		require.NoError(t, err)
		release()
	})

	t.Run("Concurrent begins admit exactly one", func(t *testing.T) {
		s := NewStore()
		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			won int
		)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, _, err := s.BeginCheckout("u1"); err == nil {
					mu.Lock()
					won++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, won)
	})
}

func TestStore_RemoveOrdered(t *testing.T) {
	t.Run("Clears the ordered cart", func(t *testing.T) {
		s := NewStore()
		addTo(t, s, "u1", Item{ID: "a", Price: 5, Quantity: 2})
		snap := s.Get("u1")

		c := s.RemoveOrdered("u1", snap)
		assert.True(t, c.IsEmpty())
		assert.True(t, s.Get("u1").IsEmpty())
	})

	t.Run("Keeps items added during checkout", func(t *testing.T) {
		s := NewStore()
		addTo(t, s, "u1", Item{ID: "a", Price: 5, Quantity: 2})
		snap := s.Get("u1")

		addTo(t, s, "u1", Item{ID: "b", Price: 3, Quantity: 1})
		addTo(t, s, "u1", Item{ID: "a", Price: 5, Quantity: 1})

		c := s.RemoveOrdered("u1", snap)
		require.Equal(t, 2, c.Len())
		assert.Equal(t, Item{ID: "a", Price: 5, Quantity: 1}, c.Items()[0])
		assert.Equal(t, "b", c.Items()[1].ID)
		assert.Equal(t, 8.0, s.Get("u1").TotalAmount())
	})
}
