package cache

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"store-locator-service/internal/adapters/repositories"
	"store-locator-service/internal/platform/db"
	"store-locator-service/internal/ports"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseKVStore checks the behaviour every backend must share.
func exerciseKVStore(t *testing.T, kv ports.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "nearestStore:missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "nearestStore:a", []byte(`{"v":1}`)))
	require.NoError(t, kv.Set(ctx, "nearestStore:a", []byte(`{"v":2}`)))

	got, ok, err := kv.Get(ctx, "nearestStore:a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"v":2}`, string(got))

	require.NoError(t, kv.Delete(ctx, "nearestStore:a"))
	_, ok, err = kv.Get(ctx, "nearestStore:a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Delete(ctx, "nearestStore:a"), "deleting a missing key is not an error")
}

func TestMemoryKVStore(t *testing.T) {
	kv := NewMemoryKVStore()
	exerciseKVStore(t, kv)

	buf := []byte("abc")
	require.NoError(t, kv.Set(context.Background(), "k", buf))
	buf[0] = 'X'
	got, _, _ := kv.Get(context.Background(), "k")
	assert.Equal(t, "abc", string(got), "stored values are copied")
}

func TestSqliteKVStore(t *testing.T) {
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, repositories.InitSchema(conn))

	kv := NewSqliteKVStore(conn)
	exerciseKVStore(t, kv)

	_, _, err = kv.Get(context.Background(), " ")
	assert.Error(t, err)
}

func TestRedisKVStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	kv := NewRedisKVStore(client, time.Hour)
	exerciseKVStore(t, kv)

	require.NoError(t, kv.Set(context.Background(), "nearestStore:ttl", []byte("x")))
	assert.Equal(t, time.Hour, mr.TTL("nearestStore:ttl"))
}

func TestRedisKVStoreUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { client.Close() })

	c := NewLookupCache(NewRedisKVStore(client, time.Hour), "", 0)
	_, ok := c.Read(context.Background())
	assert.False(t, ok, "backend errors degrade to a miss")
}

func TestMemcacheKVStore(t *testing.T) {
	addr := startFakeMemcached(t)

	kv := NewMemcacheKVStore(memcache.New(addr), time.Hour)
	exerciseKVStore(t, kv)
}

// startFakeMemcached serves the subset of the memcached text protocol the
// client uses: get/gets, set and delete.
func startFakeMemcached(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	var mu sync.Mutex
	items := map[string][]byte{}

	serve := func(conn net.Conn) {
		defer conn.Close()
		r := bufio.NewReader(conn)
		w := bufio.NewWriter(conn)

		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}

			switch fields[0] {
			case "get", "gets":
				mu.Lock()
				for _, key := range fields[1:] {
					if v, ok := items[key]; ok {
						fmt.Fprintf(w, "VALUE %s 0 %d 1\r\n%s\r\n", key, len(v), v)
					}
				}
				mu.Unlock()
				w.WriteString("END\r\n")

			case "set":
				size, _ := strconv.Atoi(fields[4])
				data := make([]byte, size+2)
				if _, err := io.ReadFull(r, data); err != nil {
					return
				}
				mu.Lock()
				items[fields[1]] = data[:size]
				mu.Unlock()
				w.WriteString("STORED\r\n")

			case "delete":
				mu.Lock()
				_, ok := items[fields[1]]
				delete(items, fields[1])
				mu.Unlock()
				if ok {
					w.WriteString("DELETED\r\n")
				} else {
					w.WriteString("NOT_FOUND\r\n")
				}

			default:
				w.WriteString("ERROR\r\n")
			}

			if err := w.Flush(); err != nil {
				return
			}
		}
	}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serve(conn)
		}
	}()

	return ln.Addr().String()
}
