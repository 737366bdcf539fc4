package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jack-barr3tt/stk-engine/src/common/metrics"
	"github.com/jack-barr3tt/stk-engine/src/common/render"
	"github.com/jack-barr3tt/stk-engine/src/common/types"
	"github.com/jack-barr3tt/stk-engine/src/common/utils"
	"github.com/redis/go-redis/v9"
)

var ErrChartNotFound = errors.New("chart not found")

const DefaultChartTTL = 24 * time.Hour

// chartRecord is what gets cached for a chart. The context is not stored; it
// is rebuilt from the series and layout, which reproduces the same transforms.
type chartRecord struct {
	Format    render.Format          `json:"format"`
	Image     []byte                 `json:"image"`
	Series    types.Series           `json:"series"`
	Anomalies []types.MileageAnomaly `json:"anomalies"`
	Stats     types.MileageStats     `json:"stats"`
	Layout    render.Layout          `json:"layout"`
}

func encodeChart(chart *render.Chart) ([]byte, error) {
	return json.Marshal(chartRecord{
		Format:    chart.Format,
		Image:     chart.Image,
		Series:    chart.Context.Series,
		Anomalies: chart.Anomalies,
		Stats:     chart.Stats,
		Layout:    chart.Context.Layout,
	})
}

func decodeChart(body []byte) (*render.Chart, error) {
	var rec chartRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, err
	}
	if len(rec.Series) == 0 {
		return nil, fmt.Errorf("cached chart has no points")
	}
	return &render.Chart{
		Context:   render.NewContext(rec.Series, rec.Anomalies, rec.Layout),
		Anomalies: rec.Anomalies,
		Stats:     rec.Stats,
		Format:    rec.Format,
		Image:     rec.Image,
	}, nil
}

// ChartStore caches rendered charts in redis for a fixed TTL.
type ChartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewChartStore(rdb *redis.Client, ttl time.Duration) *ChartStore {
	if ttl <= 0 {
		ttl = DefaultChartTTL
	}
	return &ChartStore{rdb: rdb, ttl: ttl}
}

func (dc *DataClient) Charts(ttl time.Duration) *ChartStore {
	return NewChartStore(dc.rdb, ttl)
}

func (s *ChartStore) SaveChart(ctx context.Context, id string, chart *render.Chart) error {
	body, err := encodeChart(chart)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, utils.BuildChartKey(id), body, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache chart %s: %w", id, err)
	}
	return nil
}

func (s *ChartStore) GetChart(ctx context.Context, id string) (*render.Chart, error) {
	body, err := s.rdb.Get(ctx, utils.BuildChartKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ChartCacheTotal.WithLabelValues("miss").Inc()
		return nil, ErrChartNotFound
	}
	if err != nil {
		metrics.ChartCacheTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	chart, err := decodeChart(body)
	if err != nil {
		metrics.ChartCacheTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to decode chart %s: %w", id, err)
	}
	metrics.ChartCacheTotal.WithLabelValues("hit").Inc()
	return chart, nil
}
