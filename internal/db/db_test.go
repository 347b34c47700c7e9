package db

import (
	"context"
	"testing"

	"github.com/geocoder89/taskhub/internal/config"
	"github.com/geocoder89/taskhub/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	stores, err := Open(context.Background(), config.Config{StoreDriver: config.DriverMemory}, nil)
	require.NoError(t, err)

	assert.Equal(t, config.DriverMemory, stores.Driver)
	assert.NoError(t, stores.Ping(context.Background()))
	assert.NoError(t, stores.Close(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Config{StoreDriver: "sqlite"}, nil)
	assert.Error(t, err)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS().ReadDir(".")
	require.NoError(t, err)

	var sqlFiles int
	for _, e := range entries {
		if !e.IsDir() && len(e.Name()) > 4 && e.Name()[len(e.Name())-4:] == ".sql" {
			sqlFiles++
		}
	}
	assert.Equal(t, 2, sqlFiles)
}

func TestEnsureSeedUser(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()

	cfg := config.Config{SeedUserEmail: " Demo@Example.com ", SeedUserPassword: "secret1", SeedUserName: "Demo"}

	require.NoError(t, EnsureSeedUser(ctx, stores.Users, cfg))
	// second run is a no-op
	require.NoError(t, EnsureSeedUser(ctx, stores.Users, cfg))

	u, err := stores.Users.GetByEmail(ctx, "demo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Demo", u.Name)
	assert.NoError(t, security.CheckPassword(u.PasswordHash, "secret1"))
}

func TestEnsureSeedUser_Disabled(t *testing.T) {
	stores := NewMemoryStores()
	require.NoError(t, EnsureSeedUser(context.Background(), stores.Users, config.Config{}))

	_, err := stores.Users.GetByEmail(context.Background(), "")
	assert.Error(t, err)
}
