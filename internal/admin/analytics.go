package admin

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"cleanadmin/internal/models"
)

// Analytics reads dashboard aggregates. Results may be served from the
// optional Redis cache configured on the Client.
type Analytics struct {
	c *Client
}

func (a *Analytics) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	const key = "analytics:dashboard"
	var stats models.DashboardStats
	if a.c.readCache(ctx, key, &stats) {
		return &stats, nil
	}

	var env envelope
	if err := a.c.get(ctx, "analytics", analyticsPath+"/dashboard", nil, &env); err != nil {
		return nil, err
	}
	stats, err := unwrap[models.DashboardStats](env, "stats")
	if err != nil {
		return nil, err
	}
	a.c.writeCache(ctx, key, stats)
	return &stats, nil
}

// Trends returns per-day booking counts and revenue over the last period
// days. A non-positive period means the default week.
func (a *Analytics) Trends(ctx context.Context, period int) (*models.Trend, error) {
	if period <= 0 {
		period = models.DefaultTrendPeriod
	}
	key := fmt.Sprintf("analytics:trends:%d", period)
	var trend models.Trend
	if a.c.readCache(ctx, key, &trend) {
		return &trend, nil
	}

	var env envelope
	query := url.Values{"period": {strconv.Itoa(period)}}
	if err := a.c.get(ctx, "analytics", analyticsPath+"/trends", query, &env); err != nil {
		return nil, err
	}
	p, err := unwrap[int](env, "period")
	if err != nil {
		return nil, err
	}
	points, err := unwrap[[]models.TrendPoint](env, "data")
	if err != nil {
		return nil, err
	}
	if p == 0 {
		p = period
	}
	if points == nil {
		points = []models.TrendPoint{}
	}
	trend = models.Trend{Period: p, Data: points}
	a.c.writeCache(ctx, key, trend)
	return &trend, nil
}

func (a *Analytics) Activity(ctx context.Context, limit int) (*models.RecentActivity, error) {
	if limit <= 0 {
		limit = models.DefaultActivityLimit
	}
	key := fmt.Sprintf("analytics:activity:%d", limit)
	var activity models.RecentActivity
	if a.c.readCache(ctx, key, &activity) {
		return &activity, nil
	}

	var env envelope
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := a.c.get(ctx, "analytics", analyticsPath+"/activity", query, &env); err != nil {
		return nil, err
	}
	activity, err := unwrap[models.RecentActivity](env, "activity")
	if err != nil {
		return nil, err
	}
	a.c.writeCache(ctx, key, activity)
	return &activity, nil
}
