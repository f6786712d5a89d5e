package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyticsMux(hits *atomic.Int32, queries *[]string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/analytics/dashboard", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, map[string]any{"success": true, "stats": map[string]any{
			"overview": map[string]any{"totalClients": 12, "totalRevenue": 1500.5},
			"revenue":  map[string]any{"total": 1500.5, "byMethod": map[string]any{"cash": 500, "card": 1000.5}},
		}})
	})
	mux.HandleFunc("GET /admin/analytics/trends", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		*queries = append(*queries, r.URL.RawQuery)
		writeJSON(w, map[string]any{"period": 7, "data": []map[string]any{
			{"date": "2025-03-01", "count": 3, "revenue": 240},
		}})
	})
	mux.HandleFunc("GET /admin/analytics/activity", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		*queries = append(*queries, r.URL.RawQuery)
		writeJSON(w, map[string]any{"activity": map[string]any{
			"bookings": []map[string]any{{"_id": "b1"}},
			"clients":  []any{},
		}})
	})
	return mux
}

func TestAnalyticsEndpoints(t *testing.T) {
	var hits atomic.Int32
	var queries []string
	srv := httptest.NewServer(analyticsMux(&hits, &queries))
	t.Cleanup(srv.Close)
	api := NewAPI(NewClient(srv.URL, 0, nil), PriceOptions{})
	ctx := context.Background()

	stats, err := api.Analytics.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Overview.TotalClients)
	assert.Equal(t, 1500.5, stats.Revenue.ByMethod.Collected())

	trend, err := api.Analytics.Trends(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, trend.Period)
	require.Len(t, trend.Data, 1)
	assert.Equal(t, 240.0, trend.Data[0].Revenue)

	activity, err := api.Analytics.Activity(ctx, -1)
	require.NoError(t, err)
	assert.Len(t, activity.Bookings, 1)
	assert.Empty(t, activity.Cleaners)

	assert.Equal(t, []string{"period=7", "limit=10"}, queries)
}

func TestAnalyticsRedisCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	var hits atomic.Int32
	var queries []string
	srv := httptest.NewServer(analyticsMux(&hits, &queries))
	t.Cleanup(srv.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	client := NewClient(srv.URL, 0, nil)
	client.UseRedisCache(rdb, time.Minute, "cleanadmin:")
	api := NewAPI(client, PriceOptions{})
	ctx := context.Background()

	first, err := api.Analytics.Dashboard(ctx)
	require.NoError(t, err)
	second, err := api.Analytics.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, hits.Load())
	assert.True(t, mr.Exists("cleanadmin:analytics:dashboard"))

	_, err = api.Analytics.Trends(ctx, 30)
	require.NoError(t, err)
	_, err = api.Analytics.Trends(ctx, 30)
	require.NoError(t, err)
	assert.EqualValues(t, 2, hits.Load())

	mr.FastForward(2 * time.Minute)
	_, err = api.Analytics.Dashboard(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, hits.Load())
}
