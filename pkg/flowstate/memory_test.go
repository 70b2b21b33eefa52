package flowstate_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lebanx/wechat-silent-login/pkg/flowstate"
)

func TestNewToken(t *testing.T) {
	t.Parallel()

	tok, err := flowstate.NewToken()
	require.NoError(t, err)
	require.Len(t, tok, 16) // 8 bytes hex-encoded

	other, err := flowstate.NewToken()
	require.NoError(t, err)
	require.NotEqual(t, tok, other)
}

func TestMemory_SaveConsume(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		store := flowstate.NewMemory()
		defer store.Close()

		rec := flowstate.Record{Token: "tok1", ReturnTo: "/topic/5", CreatedAt: time.Now()}
		require.NoError(t, store.Save(ctx, rec))

		got, err := store.Consume(ctx, "tok1")
		require.NoError(t, err)
		require.Equal(t, "/topic/5", got.ReturnTo)
	})

	t.Run("consume is single use", func(t *testing.T) {
		t.Parallel()
		store := flowstate.NewMemory()
		defer store.Close()

		require.NoError(t, store.Save(ctx, flowstate.Record{Token: "tok2"}))

		_, err := store.Consume(ctx, "tok2")
		require.NoError(t, err)

		_, err = store.Consume(ctx, "tok2")
		require.ErrorIs(t, err, flowstate.ErrNotFound)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()
		store := flowstate.NewMemory()
		defer store.Close()

		_, err := store.Consume(ctx, "missing")
		require.ErrorIs(t, err, flowstate.ErrNotFound)
	})

	t.Run("empty token rejected", func(t *testing.T) {
		t.Parallel()
		store := flowstate.NewMemory()
		defer store.Close()

		require.ErrorIs(t, store.Save(ctx, flowstate.Record{}), flowstate.ErrEmptyToken)

		_, err := store.Consume(ctx, "")
		require.ErrorIs(t, err, flowstate.ErrNotFound)
	})

	t.Run("expired record", func(t *testing.T) {
		t.Parallel()
		store := flowstate.NewMemory(flowstate.WithTTL(10 * time.Millisecond))
		defer store.Close()

		require.NoError(t, store.Save(ctx, flowstate.Record{Token: "tok3"}))
		time.Sleep(30 * time.Millisecond)

		_, err := store.Consume(ctx, "tok3")
		require.ErrorIs(t, err, flowstate.ErrNotFound)
	})

	t.Run("concurrent consume yields one winner", func(t *testing.T) {
		t.Parallel()
		store := flowstate.NewMemory()
		defer store.Close()

		require.NoError(t, store.Save(ctx, flowstate.Record{Token: "tok4"}))

		const n = 8
		wins := make(chan error, n)
		for i := 0; i < n; i++ {
			go func() {
				_, err := store.Consume(ctx, "tok4")
				wins <- err
			}()
		}

		var ok int
		for i := 0; i < n; i++ {
			if err := <-wins; err == nil {
				ok++
			}
		}
		require.Equal(t, 1, ok)
	})
}
