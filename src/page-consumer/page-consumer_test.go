package main

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jack-barr3tt/stk-engine/src/common/page"
	"github.com/jack-barr3tt/stk-engine/src/common/stations"
	"github.com/jack-barr3tt/stk-engine/src/common/types"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type fakePublisher struct {
	keys      []string
	published []amqp.Publishing
}

func (f *fakePublisher) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

const historyPage = `<html><body><div id="inspection-history"><table><tbody>
<tr><td data-cell="date">1.1.2023</td><td data-cell="mileage"><span>10 000</span></td></tr>
<tr><td data-cell="date">1.6.2023</td><td data-cell="mileage"><span>9 000</span></td></tr>
</tbody></table></div></body></html>`

func TestConsumerPublishesAugmentedPage(t *testing.T) {
	pub := &fakePublisher{}
	logger := zap.NewNop().Sugar()
	c := &consumer{
		augmenter: page.NewAugmenter(stations.NewRegistry(nil), nil, logger),
		publisher: pub,
		logger:    logger,
	}

	c.handle(context.Background(), types.PageSnapshot{ID: "tab-1", HTML: historyPage})

	if len(pub.published) != 1 || pub.keys[0] != AugmentedQueue {
		t.Fatalf("published = %v", pub.keys)
	}
	if pub.published[0].CorrelationId != "tab-1" {
		t.Fatalf("correlation id = %q", pub.published[0].CorrelationId)
	}

	var out types.AugmentedPage
	if err := json.Unmarshal(pub.published[0].Body, &out); err != nil {
		t.Fatal(err)
	}
	if out.ID != "tab-1" || out.Points != 2 || len(out.Anomalies) != 1 || out.ChartID == "" {
		t.Fatalf("augmented page = %+v", out)
	}
}

func TestDecodeSnapshots(t *testing.T) {
	deliveries := make(chan amqp.Delivery, 3)
	deliveries <- amqp.Delivery{Body: []byte(`{"id":"a","html":"<p></p>"}`)}
	deliveries <- amqp.Delivery{Body: []byte(`garbage`)}
	deliveries <- amqp.Delivery{Body: []byte(`{"id":"b","html":"<p></p>"}`)}
	close(deliveries)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var ids []string
	for s := range decodeSnapshots(ctx, deliveries, zap.NewNop().Sugar()) {
		ids = append(ids, s.ID)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("ids = %v", ids)
	}
}
