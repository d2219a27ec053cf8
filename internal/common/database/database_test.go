// internal/common/database/database_test.go
package database

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matching-workers/internal/common/config"
)

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := OpenRedis(context.Background(), config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer rdb.Close()

	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	mr.CheckGet(t, "k", "v")
}

func TestOpenRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenRedis(context.Background(), config.RedisConfig{Address: addr})
	require.Error(t, err)
	assert.Contains(t, err.Error(), addr)
}

func elasticsearchStub(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"version":{"number":"8.11.0"}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenElasticsearch(t *testing.T) {
	srv := elasticsearchStub(t, http.StatusOK)

	es, err := OpenElasticsearch(context.Background(), config.ElasticsearchConfig{URL: srv.URL})
	require.NoError(t, err)
	assert.NotNil(t, es)
}

func TestOpenElasticsearch_ErrorStatus(t *testing.T) {
	srv := elasticsearchStub(t, http.StatusUnauthorized)

	_, err := OpenElasticsearch(context.Background(), config.ElasticsearchConfig{URL: srv.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestOpenPostgres_Unreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := OpenPostgres(ctx, config.PostgresConfig{
		Host: "127.0.0.1", Port: 1, Database: "catalog", User: "matcher", SSLMode: "disable",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres 127.0.0.1:1/catalog")
}
