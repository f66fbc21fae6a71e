package store

import (
	"strings"
	"sync"

	"microshop/internal/domain"
)

type ProductStore struct {
	mu       sync.RWMutex
	products []domain.Product
	nextID   int
}

func NewProductStore() *ProductStore {
	return &ProductStore{
		products: []domain.Product{
			{ID: 1, Name: "Laptop", Price: 999.99},
			{ID: 2, Name: "Souris", Price: 29.99},
		},
		nextID: 3,
	}
}

func (s *ProductStore) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *ProductStore) Get(id int) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Create appends a new product. Names are unique case-insensitively, so
// "Laptop" and "LAPTOP" are the same product.
func (s *ProductStore) Create(name string, price float64) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if strings.EqualFold(p.Name, name) {
			return domain.Product{}, domain.Duplicate("Product name already exists")
		}
	}

	product := domain.Product{ID: s.nextID, Name: name, Price: price}
	s.nextID++
	s.products = append(s.products, product)
	return product, nil
}
