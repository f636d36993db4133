package cart

import "sync"

// Store keeps one cart per user in process memory and allows one running
// checkout per user.
type Store struct {
	mu        sync.RWMutex
	carts     map[string]Cart
	checkouts map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		carts:     make(map[string]Cart),
		checkouts: make(map[string]struct{}),
	}
}

// Get returns a snapshot of the user's cart.
func (s *Store) Get(userID string) Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.carts[userID].Clone()
}

// Update applies fn to the user's cart atomically. The cart is only
// replaced when fn succeeds.
func (s *Store) Update(userID string, fn func(c *Cart) error) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.carts[userID].Clone()
	if err := fn(&c); err != nil {
		return s.carts[userID].Clone(), err
	}

	if c.IsEmpty() {
		delete(s.carts, userID)
	} else {
		s.carts[userID] = c
	}
	return c.Clone(), nil
}

// BeginCheckout returns a snapshot of the user's cart and marks a checkout
// as running until release is called. A second checkout for the same user
// fails with ErrCheckoutInProgress meanwhile.
func (s *Store) BeginCheckout(userID string) (snapshot Cart, release func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.checkouts[userID]; busy {
		return Cart{}, nil, ErrCheckoutInProgress
	}
	s.checkouts[userID] = struct{}{}

	var once sync.Once
	release = func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.checkouts, userID)
			s.mu.Unlock()
		})
	}
	return s.carts[userID].Clone(), release, nil
}

// RemoveOrdered takes the lines of an ordered snapshot out of the user's
// cart. Items added while the order was being placed stay.
func (s *Store) RemoveOrdered(userID string, ordered Cart) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.carts[userID].Clone()
	c.Subtract(ordered)
	if c.IsEmpty() {
		delete(s.carts, userID)
	} else {
		s.carts[userID] = c
	}
	return c.Clone()
}
