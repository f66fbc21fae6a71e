package store_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microshop/internal/domain"
	"microshop/internal/store"
)

func TestUserStore_Seed(t *testing.T) {
	s := store.NewUserStore()

	users := s.List()
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "bob@example.com", users[1].Email)
}

func TestUserStore_GetMissing(t *testing.T) {
	s := store.NewUserStore()

	_, ok := s.Get(999)
	assert.False(t, ok)
}

func TestUserStore_CreateAssignsNextID(t *testing.T) {
	s := store.NewUserStore()

	user, err := s.Create("Carol", "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, user.ID)

	got, ok := s.Get(3)
	require.True(t, ok)
	assert.Equal(t, "Carol", got.Name)
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	s := store.NewUserStore()

	_, err := s.Create("Evil Alice", "alice@example.com")
	appErr, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindDuplicate, appErr.Kind)
	assert.Equal(t, "Email already registered", appErr.Detail)
}

func TestProductStore_Seed(t *testing.T) {
	s := store.NewProductStore()

	products := s.List()
	require.Len(t, products, 2)
	assert.Equal(t, "Laptop", products[0].Name)
	assert.InDelta(t, 999.99, products[0].Price, 0.001)
}

func TestProductStore_DuplicateNameCaseInsensitive(t *testing.T) {
	s := store.NewProductStore()

	_, err := s.Create("LAPTOP", 1299.99)
	appErr, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindDuplicate, appErr.Kind)
	assert.Equal(t, "Product name already exists", appErr.Detail)
}

func TestProductStore_Create(t *testing.T) {
	s := store.NewProductStore()

	product, err := s.Create("Clavier", 49.99)
	require.NoError(t, err)
	assert.Equal(t, 3, product.ID)
}

func TestOrderStore_Seed(t *testing.T) {
	s := store.NewOrderStore()

	orders := s.List()
	require.Len(t, orders, 2)
	assert.Equal(t, 1, orders[0].UserID)
	assert.Equal(t, 1, orders[1].Quantity)
}

func TestOrderStore_Create(t *testing.T) {
	s := store.NewOrderStore()

	order := s.Create(1, 2, 5)
	assert.Equal(t, 3, order.ID)

	got, ok := s.Get(3)
	require.True(t, ok)
	assert.Equal(t, 5, got.Quantity)
}

func TestStores_ConcurrentCreates(t *testing.T) {
	s := store.NewUserStore()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(fmt.Sprintf("user-%d", i), fmt.Sprintf("user-%d@example.com", i))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	users := s.List()
	assert.Len(t, users, 52)

	seen := make(map[int]bool, len(users))
	for _, u := range users {
		require.False(t, seen[u.ID], "duplicate id %d", u.ID)
		seen[u.ID] = true
	}
}

func TestUserStore_ListReturnsCopy(t *testing.T) {
	s := store.NewUserStore()

	users := s.List()
	users[0].Name = "Mallory"

	fresh := s.List()
	assert.Equal(t, "Alice", fresh[0].Name)
}
