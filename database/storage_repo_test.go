package database

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
	"storefront/store"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	_, err = db.Exec(Schema)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStorageRepo_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewStorageRepo(openTestDB(t))

	_, err := repo.Get(ctx, "v1", "britannia_cart")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, repo.Set(ctx, "v1", "britannia_cart", []byte(`[]`)))
	require.NoError(t, repo.Set(ctx, "v1", "britannia_cart", []byte(`[{"id":1}]`)))

	got, err := repo.Get(ctx, "v1", "britannia_cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	_, err = repo.Get(ctx, "v2", "britannia_cart")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "v1", "britannia_cart"))
	require.NoError(t, repo.Delete(ctx, "v1", "britannia_cart"))
	_, err = repo.Get(ctx, "v1", "britannia_cart")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStorageRepo_Entries(t *testing.T) {
	ctx := context.Background()
	repo := NewStorageRepo(openTestDB(t))

	require.NoError(t, repo.Set(ctx, "v1", "britannia_cart", []byte(`[]`)))
	require.NoError(t, repo.Set(ctx, "v1", "britannia_user", []byte(`{}`)))
	require.NoError(t, repo.Set(ctx, "v2", "britannia_cart", []byte(`[]`)))

	entries, err := repo.Entries(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "v1", e.VisitorID)
		assert.False(t, e.UpdatedAt.IsZero())
	}
}

func TestStorageRepo_BacksCartAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	repo := NewStorageRepo(openTestDB(t))
	product := models.Product{ID: 1, Name: "Good Day Cashew Cookies", Price: 45.00, Category: models.CategoryCookies}

	c := store.LoadCart(ctx, store.Scope(repo, "v1"), "", nil, nil)
	c.Add(ctx, product)
	c.Add(ctx, product)

	restored := store.LoadCart(ctx, store.Scope(repo, "v1"), "", nil, nil)
	require.Len(t, restored.Items(), 1)
	assert.Equal(t, 2, restored.Items()[0].Quantity)
	assert.Equal(t, 90.00, restored.TotalPrice())
}
