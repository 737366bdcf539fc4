package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jack-barr3tt/stk-engine/src/common/data"
	"github.com/jack-barr3tt/stk-engine/src/common/page"
	"github.com/jack-barr3tt/stk-engine/src/common/types"
	"github.com/jack-barr3tt/stk-engine/src/common/utils"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	SnapshotQueue  = "snapshots"
	AugmentedQueue = "augmented"
)

type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type consumer struct {
	augmenter *page.Augmenter
	publisher Publisher
	logger    *zap.SugaredLogger
}

func (c *consumer) handle(ctx context.Context, snapshot types.PageSnapshot) {
	out, err := c.augmenter.Process(ctx, snapshot)
	if err != nil {
		c.logger.Warnw("error augmenting snapshot", "snapshot", snapshot.ID, "error", err)
		return
	}

	body, err := json.Marshal(out)
	if err != nil {
		c.logger.Warnw("error encoding augmented page", "snapshot", snapshot.ID, "error", err)
		return
	}
	err = c.publisher.PublishWithContext(
		ctx,
		"",
		AugmentedQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			CorrelationId: snapshot.ID,
			Body:          body,
		},
	)
	if err != nil {
		c.logger.Warnw("error publishing message to RabbitMQ", "queue", AugmentedQueue, "error", err)
		return
	}

	c.logger.Infow("augmented snapshot", "snapshot", snapshot.ID, "chart", out.ChartID,
		"points", out.Points, "anomalies", len(out.Anomalies))
}

// decodeSnapshots turns queue deliveries into snapshots. The returned channel
// closes once deliveries closes or ctx is done.
func decodeSnapshots(ctx context.Context, deliveries <-chan amqp.Delivery, logger *zap.SugaredLogger) <-chan types.PageSnapshot {
	out := make(chan types.PageSnapshot)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-deliveries:
				if !ok {
					return
				}
				snapshot, err := utils.UnmarshalSnapshot(msg.Body)
				if err != nil {
					logger.Warnw("bad snapshot JSON", "error", err)
					continue
				}
				select {
				case out <- *snapshot:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

func main() {
	utils.LoadEnv()
	utils.InitLogger()
	defer utils.SyncLogger()
	logger := utils.NamedLogger("page-consumer")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := utils.NewPostgresConnection(ctx)
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	rdb := utils.NewRedisClient()
	defer rdb.Close()

	dc := data.NewDataClient(db, rdb, logger)
	registry, err := dc.LoadRegistry(ctx)
	if err != nil {
		logger.Fatalw("failed to load station registry", "error", err)
	}

	conn, channel, err := utils.NewRabbitConnection()
	if err != nil {
		logger.Fatalw("failed to connect to RabbitMQ", "error", err)
	}
	defer conn.Close()
	defer channel.Close()

	for _, queue := range []string{SnapshotQueue, AugmentedQueue} {
		if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			logger.Fatalw("failed to declare queue", "queue", queue, "error", err)
		}
	}

	msgs, err := channel.Consume(SnapshotQueue, "", true, false, false, false, nil)
	if err != nil {
		logger.Fatalw("failed to consume", "queue", SnapshotQueue, "error", err)
	}

	c := &consumer{
		augmenter: page.NewAugmenter(registry, dc.Charts(utils.GetEnvDuration("CHART_TTL", 24*time.Hour)), logger),
		publisher: channel,
		logger:    logger,
	}

	logger.Infow("augmenting page snapshots", "from", SnapshotQueue, "to", AugmentedQueue)

	sub := page.Observe(ctx, decodeSnapshots(ctx, msgs, logger), c.handle)
	select {
	case <-ctx.Done():
	case <-sub.Done():
		logger.Warnw("snapshot stream closed")
	}
	sub.Dispose()
}
