package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(nil)
		_ = rdb.Close()
		mr.Close()
	})
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()
	calls := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			calls++
			*dest = cachedThing{ID: 7, Name: "Bike"}
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, "ad", AdvertisementKey(7), &first, time.Minute, fetch(&first)))
	assert.Equal(t, "Bike", first.Name)
	assert.True(t, mr.Exists("ad:7"))

	var second cachedThing
	require.NoError(t, Aside(ctx, "ad", AdvertisementKey(7), &second, time.Minute, fetch(&second)))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second lookup must be served from cache")

	ttl := mr.TTL("ad:7")
	assert.Equal(t, time.Minute, ttl)
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	mr := setupMiniredis(t)
	boom := errors.New("not found")

	var dest cachedThing
	err := Aside(context.Background(), "ad", AdvertisementKey(9), &dest, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("ad:9"))
}

func TestAside_WithoutClientCallsFetch(t *testing.T) {
	SetClient(nil)
	called := false
	var dest cachedThing
	err := Aside(context.Background(), "user", UserKey(1), &dest, time.Minute, func() error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestAside_CorruptEntryFallsBackToFetch(t *testing.T) {
	mr := setupMiniredis(t)
	require.NoError(t, mr.Set("user:3", "{not-json"))

	var dest cachedThing
	err := Aside(context.Background(), "user", UserKey(3), &dest, time.Minute, func() error {
		dest = cachedThing{ID: 3, Name: "alice"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", dest.Name)

	got, _ := mr.Get("user:3")
	assert.Contains(t, got, `"alice"`)
}

func TestInvalidateUser_RemovesBothKeys(t *testing.T) {
	mr := setupMiniredis(t)
	require.NoError(t, mr.Set(UserKey(4), "{}"))
	require.NoError(t, mr.Set(UsernameKey("alice"), "{}"))

	InvalidateUser(context.Background(), 4, "alice")

	assert.False(t, mr.Exists(UserKey(4)))
	assert.False(t, mr.Exists(UsernameKey("alice")))
}

func TestInitRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	t.Cleanup(func() { SetClient(nil) })

	InitRedis("")
	assert.Nil(t, GetClient())

	InitRedis("redis://" + mr.Addr())
	require.NotNil(t, GetClient())

	InitRedis("://bad")
	assert.Nil(t, GetClient())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "user:12", UserKey(12))
	assert.Equal(t, "user:name:bob", UsernameKey("bob"))
	assert.Equal(t, "ad:5", AdvertisementKey(5))
}
