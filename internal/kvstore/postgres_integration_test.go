//go:build integration_test || all_tests

package kvstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/2beens/workoutmap/internal/db"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPostgresSetup(t *testing.T) *Postgres {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	require.NoError(t, pool.Client.Ping())

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_HOST_AUTH_METHOD=trust",
			"POSTGRES_DB=workouts",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	port := resource.GetPort("5432/tcp")
	var store *Postgres
	pool.MaxWait = time.Minute
	err = pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost: "localhost",
			DBPort: port,
			DBName: "workouts",
			DBUser: "postgres",
		})
		if err != nil {
			return err
		}
		if err := dbPool.Ping(ctx); err != nil {
			dbPool.Close()
			return fmt.Errorf("ping: %w", err)
		}
		t.Cleanup(dbPool.Close)

		store = NewPostgres(dbPool)
		return store.EnsureSchema(ctx)
	})
	require.NoError(t, err)

	return store
}

func TestPostgres_GetSet(t *testing.T) {
	store := testPostgresSetup(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "workouts")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "workouts", []byte(`[]`)))
	value, err := store.Get(ctx, "workouts")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(value))

	require.NoError(t, store.Set(ctx, "workouts", []byte(`[{"id":"x"}]`)))
	value, err = store.Get(ctx, "workouts")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"x"}]`, string(value))

	// values are opaque bytes, kept as written
	raw := []byte("{ \"b\": 1,  \"a\": 2 }\x00not json")
	require.NoError(t, store.Set(ctx, "workouts", raw))
	value, err = store.Get(ctx, "workouts")
	require.NoError(t, err)
	assert.Equal(t, raw, value)

	// schema creation is idempotent
	require.NoError(t, store.EnsureSchema(ctx))
}
