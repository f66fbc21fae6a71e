package store

import (
	"sync"

	"microshop/internal/domain"
)

type OrderStore struct {
	mu     sync.RWMutex
	orders []domain.Order
	nextID int
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: []domain.Order{
			{ID: 1, UserID: 1, ProductID: 1, Quantity: 2},
			{ID: 2, UserID: 2, ProductID: 2, Quantity: 1},
		},
		nextID: 3,
	}
}

func (s *OrderStore) List() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *OrderStore) Get(id int) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

// Create appends a new order. Referential checks against users and products
// happen in the handler before this point, through the dependency clients.
func (s *OrderStore) Create(userID, productID, quantity int) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := domain.Order{ID: s.nextID, UserID: userID, ProductID: productID, Quantity: quantity}
	s.nextID++
	s.orders = append(s.orders, order)
	return order
}
