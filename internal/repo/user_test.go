package repo_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripjournal/tripjournal-go/internal/domain"
	"github.com/tripjournal/tripjournal-go/internal/repo"
	"github.com/tripjournal/tripjournal-go/testutil"
)

// newTestTx opens a transaction against the test database that is rolled back
// when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; the test is skipped otherwise.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test.
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// createUser inserts a user with a unique username and returns it.
// Fixture data for trips, events, and media hangs off this user.
func createUser(t *testing.T, tx pgx.Tx) domain.User {
	t.Helper()
	users := repo.NewUserRepo(tx)
	u, err := users.Create(context.Background(), domain.User{
		Username:     fmt.Sprintf("user-%s", uuid.NewString()),
		PasswordHash: "$2a$10$fixturehashfixturehashfixturehashfixturehashfixture",
	})
	require.NoError(t, err)
	return u
}

func TestUserRepo_Create(t *testing.T) {
	tx := newTestTx(t)
	users := repo.NewUserRepo(tx)
	ctx := context.Background()

	got, err := users.Create(ctx, domain.User{Username: "alice-" + uuid.NewString(), PasswordHash: "hash"})

	require.NoError(t, err)
	assert.NotZero(t, got.ID, "ID should be DB-generated")
	assert.Equal(t, "hash", got.PasswordHash)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestUserRepo_Create_DuplicateUsername(t *testing.T) {
	tx := newTestTx(t)
	users := repo.NewUserRepo(tx)
	ctx := context.Background()

	name := "bob-" + uuid.NewString()
	_, err := users.Create(ctx, domain.User{Username: name, PasswordHash: "hash"})
	require.NoError(t, err)

	_, err = users.Create(ctx, domain.User{Username: name, PasswordHash: "hash2"})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepo_GetByUsername(t *testing.T) {
	tx := newTestTx(t)
	users := repo.NewUserRepo(tx)
	ctx := context.Background()

	created, err := users.Create(ctx, domain.User{Username: "carol-" + uuid.NewString(), PasswordHash: "hash"})
	require.NoError(t, err)

	got, err := users.GetByUsername(ctx, created.Username)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.PasswordHash, got.PasswordHash)
}

func TestUserRepo_GetByUsername_NotFound(t *testing.T) {
	tx := newTestTx(t)
	users := repo.NewUserRepo(tx)

	_, err := users.GetByUsername(context.Background(), "nobody-"+uuid.NewString())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
