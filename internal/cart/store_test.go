package cart

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookstore/internal/database/storage"
	"github.com/mrlokans/bookstore/internal/entities"
)

func setupStorage(t *testing.T) (*storage.Repository, func()) {
	dbPath := "./test_cart_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.StorageEntry{})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return storage.NewRepository(db), cleanup
}

func book(id, title string, price float64) entities.Book {
	return entities.Book{ID: id, Title: title, Price: price}
}

func TestStore_Add_NewLine(t *testing.T) {
	repo, cleanup := setupStorage(t)
	defer cleanup()

	store := NewStore(repo)
	store.Add(book("1", "1984", 1999))

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, "1984", lines[0].Book.Title)
}

func TestStore_Add_Twice_IncrementsQuantity(t *testing.T) {
	repo, cleanup := setupStorage(t)
	defer cleanup()

	store := NewStore(repo)
	b := book("1", "1984", 1999)
	store.Add(b)
	store.Add(b)

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, store.TotalItems())
}

func TestStore_Add_PreservesInsertionOrder(t *testing.T) {
	repo, cleanup := setupStorage(t)
	defer cleanup()

	store := NewStore(repo)
	store.Add(book("1", "1984", 1999))
	store.Add(book("2", "Dune", 2500))
	store.Add(book("1", "1984", 1999)) // repeat add keeps position

	lines := store.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "1", lines[0].Book.ID)
	assert.Equal(t, "2", lines[1].Book.ID)
}

func TestStore_Totals(t *testing.T) {
	repo, cleanup := setupStorage(t)
	defer cleanup()

	store := NewStore(repo)
	store.Add(book("1", "1984", 1999))
	store.Add(book("1", "1984", 1999))
	store.Add(book("2", "Dune", 2500))

	assert.Equal(t, 3, store.TotalItems())
	assert.InDelta(t, 1999*2+2500, store.TotalPrice(), 0.001)

	store.UpdateQuantity("2", 4)
	assert.Equal(t, 6, store.TotalItems())
	assert.InDelta(t, 1999*2+2500*4, store.TotalPrice(), 0.001)

	store.Remove("1")
	assert.Equal(t, 4, store.TotalItems())
	assert.InDelta(t, 2500*4, store.TotalPrice(), 0.001)
}

func TestStore_AddAddRemove_LeavesEmptyCart(t *testing.T) {
	repo, cleanup := setupStorage(t)
	defer cleanup()

	store := NewStore(repo)
	b := book("1", "1984", 1999)
	store.Add(b)
	store.Add(b)
	store.Remove(b.ID)

	assert.Empty(t, store.Lines())
	assert.Equal(t, 0, store.TotalItems())
}

func TestStore_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	repo, cleanup := setupStorage(t)
	defer cleanup()

	store := NewStore(repo)
	store.Add(book("1", "1984", 1999))
	store.UpdateQuantity("1", 0)

	assert.Empty(t, store.Lines())
}

func TestStore_UpdateQuantity_UnknownBookIsNoOp(t *testing.T) {
	repo, cleanup := setupStorage(t)
	defer cleanup()

	store := NewStore(repo)
	store.Add(book("1", "1984", 1999))
	store.UpdateQuantity("missing", 5)

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestStore_Remove_UnknownBookIsNoOp(t *testing.T) {
	repo, cleanup := setupStorage(t)
	defer cleanup()

	store := NewStore(repo)
	store.Add(book("1", "1984", 1999))
	store.Remove("missing")

	assert.Len(t, store.Lines(), 1)
}

func TestStore_Clear(t *testing.T) {
	repo, cleanup := setupStorage(t)
	defer cleanup()

	store := NewStore(repo)
	store.Add(book("1", "1984", 1999))
	store.Add(book("2", "Dune", 2500))
	store.Clear()

	assert.Empty(t, store.Lines())
	assert.Equal(t, 0, store.TotalItems())
	assert.Zero(t, store.TotalPrice())
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	repo, cleanup := setupStorage(t)
	defer cleanup()

	store := NewStore(repo)
	store.Add(book("1", "1984", 1999))
	store.Add(book("1", "1984", 1999))

	// A fresh store over the same storage hydrates the persisted cart.
	rehydrated := NewStore(repo)
	lines := rehydrated.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.InDelta(t, 3998, rehydrated.TotalPrice(), 0.001)
}

func TestStore_MalformedPersistedState_StartsEmpty(t *testing.T) {
	repo, cleanup := setupStorage(t)
	defer cleanup()

	require.NoError(t, repo.Set(entities.StorageKeyCart, `{broken json!`))

	store := NewStore(repo)

	assert.Empty(t, store.Lines())
	assert.Equal(t, 0, store.TotalItems())
}
