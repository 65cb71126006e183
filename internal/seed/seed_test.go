package seed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cottoncare/internal/domain"
	"cottoncare/internal/seed"
)

func TestEmbeddedDatasetParses(t *testing.T) {
	require.NoError(t, seed.Err())

	products := seed.Products()
	require.Len(t, products, 6)
	assert.Equal(t, "prod1", products[0].ID)
	assert.Equal(t, 50, products[0].Stock)
	for _, p := range products {
		assert.Greater(t, p.Price, 0.0, p.ID)
		assert.NotEmpty(t, p.Images, p.ID)
	}
}

func TestSeededPasswordsAreHashed(t *testing.T) {
	users := seed.Users()
	require.NotEmpty(t, users)
	for _, u := range users {
		assert.NotEqual(t, "password", u.Hash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte("password")), u.Email)
	}
}

func TestSeedReturnsCopies(t *testing.T) {
	a := seed.Products()
	a[0].Images[0] = "mutated"
	a[0].Name = "mutated"

	b := seed.Products()
	assert.NotEqual(t, "mutated", b[0].Images[0])
	assert.NotEqual(t, "mutated", b[0].Name)
}

func TestOrdersAreMostRecentFirst(t *testing.T) {
	orders := seed.Orders()
	require.Len(t, orders, 4)
	for i := 1; i < len(orders); i++ {
		assert.True(t, orders[i-1].OrderDate.After(orders[i].OrderDate))
	}
	_, ok := domain.ParseOrderStatus(string(orders[0].Status))
	assert.True(t, ok)
}
