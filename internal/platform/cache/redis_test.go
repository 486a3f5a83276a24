package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestGetJSONMiss(t *testing.T) {
	client := testClient(t)

	var target map[string]string
	err := GetJSON(context.Background(), client, "absent", &target)
	require.ErrorIs(t, err, ErrMiss)
}

func TestSetThenGetJSON(t *testing.T) {
	client := testClient(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, SetJSON(ctx, client, "k", payload{Name: "acme", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, GetJSON(ctx, client, "k", &got))
	require.Equal(t, payload{Name: "acme", Count: 3}, got)
}
