package identity_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lebanx/wechat-silent-login/pkg/identity"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("find missing", func(t *testing.T) {
		t.Parallel()
		store := identity.NewMemoryStore()

		_, err := store.Find(ctx, "OID1")
		require.ErrorIs(t, err, identity.ErrMappingNotFound)
	})

	t.Run("create and find", func(t *testing.T) {
		t.Parallel()
		store := identity.NewMemoryStore()

		require.NoError(t, store.Create(ctx, identity.Mapping{OpenID: "OID1", UserID: "u1", Username: "wx_abcd1234"}))

		m, err := store.Find(ctx, "OID1")
		require.NoError(t, err)
		require.Equal(t, "u1", m.UserID)
		require.False(t, m.CreatedAt.IsZero())
	})

	t.Run("duplicate create rejected", func(t *testing.T) {
		t.Parallel()
		store := identity.NewMemoryStore()

		require.NoError(t, store.Create(ctx, identity.Mapping{OpenID: "OID1", UserID: "u1"}))
		require.ErrorIs(t, store.Create(ctx, identity.Mapping{OpenID: "OID1", UserID: "u2"}), identity.ErrMappingExists)

		m, err := store.Find(ctx, "OID1")
		require.NoError(t, err)
		require.Equal(t, "u1", m.UserID)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		t.Parallel()
		store := identity.NewMemoryStore()

		require.NoError(t, store.Create(ctx, identity.Mapping{OpenID: "OID1", UserID: "u1"}))
		require.NoError(t, store.Delete(ctx, "OID1"))
		require.NoError(t, store.Delete(ctx, "OID1"))

		_, err := store.Find(ctx, "OID1")
		require.ErrorIs(t, err, identity.ErrMappingNotFound)
	})

	t.Run("concurrent create yields one winner", func(t *testing.T) {
		t.Parallel()
		store := identity.NewMemoryStore()

		const n = 8
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- store.Create(ctx, identity.Mapping{OpenID: "OID1", UserID: string(rune('a' + i))})
			}()
		}
		wg.Wait()
		close(errs)

		var ok int
		for err := range errs {
			if err == nil {
				ok++
			}
		}
		require.Equal(t, 1, ok)
	})
}
