package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/nazmul162001/educonnect/internal/data"
	authmocks "github.com/nazmul162001/educonnect/internal/mocks/auth"
	"github.com/nazmul162001/educonnect/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFederatedResolver_ConcurrentFirstSignInPostgres(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		resolver := NewFederatedResolver(FederatedResolverOptions{
			Users:    data.NewUserRepo(db),
			Sessions: authmocks.NewMemorySessionStore(),
			Config:   FederatedResolverConfig{StoreTimeout: 5 * time.Second},
		})

		const callers = 8
		ids := make([]string, callers)
		errs := testutil.RunConcurrently(t, callers, func(i int) error {
			p, err := resolver.Provision(ctx, Assertion{Email: "Race@Example.com", Name: "Racer"})
			if err != nil {
				return err
			}
			ids[i] = p.ID
			return nil
		})
		testutil.RequireNoErrors(t, errs)

		for _, id := range ids[1:] {
			assert.Equal(t, ids[0], id)
		}

		var count int
		require.NoError(t, db.QueryRowContext(ctx,
			`SELECT count(*) FROM users WHERE email = $1`, "race@example.com").Scan(&count))
		assert.Equal(t, 1, count)
	})
}
