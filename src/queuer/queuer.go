package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jack-barr3tt/stk-engine/src/common/metrics"
	"github.com/jack-barr3tt/stk-engine/src/common/utils"
	"github.com/jack-barr3tt/stk-engine/src/queuer/listener"

	amqp "github.com/rabbitmq/amqp091-go"
)

const SnapshotQueue = "snapshots"

// HandleSnapshots splits a bridge message into page snapshots and queues each
// one that carries a document.
func HandleSnapshots(ctx context.Context, publisher listener.Publisher, data []byte) {
	logger := utils.NamedLogger("queuer")

	snapshots, err := utils.UnmarshalSnapshots(data)
	if err != nil {
		logger.Warnw("error unmarshalling page snapshot", "error", err)
		metrics.SnapshotsForwardedTotal.WithLabelValues("invalid").Inc()
		return
	}

	for _, snapshot := range snapshots {
		if snapshot.HTML == "" {
			logger.Debugw("skipping snapshot without document", "snapshot", snapshot.ID)
			metrics.SnapshotsForwardedTotal.WithLabelValues("empty").Inc()
			continue
		}
		if snapshot.CapturedAt.IsZero() {
			snapshot.CapturedAt = time.Now().UTC()
		}

		body, err := json.Marshal(snapshot)
		if err != nil {
			logger.Warnw("error encoding page snapshot", "snapshot", snapshot.ID, "error", err)
			metrics.SnapshotsForwardedTotal.WithLabelValues("invalid").Inc()
			continue
		}
		err = publisher.PublishWithContext(
			ctx,
			"",
			SnapshotQueue,
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    snapshot.ID,
				Body:         body,
			},
		)
		if err != nil {
			logger.Warnw("error publishing message to RabbitMQ", "queue", SnapshotQueue, "error", err)
			metrics.SnapshotsForwardedTotal.WithLabelValues("error").Inc()
		} else {
			logger.Debugw("published snapshot to RabbitMQ", "snapshot", snapshot.ID)
			metrics.SnapshotsForwardedTotal.WithLabelValues("ok").Inc()
		}
	}
}

func main() {
	utils.LoadEnv()
	utils.InitLogger()
	defer utils.SyncLogger()
	logger := utils.NamedLogger("queuer")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mqConn, err := utils.NewRabbitConnectionOnly()
	if err != nil {
		logger.Fatalw("failed to connect to RabbitMQ", "error", err)
	}
	defer mqConn.Close()

	closeChan := make(chan *amqp.Error)
	mqConn.NotifyClose(closeChan)

	go func() {
		select {
		case err := <-closeChan:
			if err != nil {
				logger.Warnw("RabbitMQ connection closed", "error", err)
				stop()
			}
		case <-ctx.Done():
			return
		}
	}()

	snapshotChannel, err := mqConn.Channel()
	if err != nil {
		logger.Fatalw("failed to create snapshot channel", "error", err)
	}
	defer snapshotChannel.Close()

	stompConn, err := utils.NewBridgeStompConnection()
	if err != nil {
		logger.Fatalw("failed to connect to bridge stomp", "error", err)
	}

	var wg sync.WaitGroup

	topic := utils.GetEnv("STOMP_TOPIC", "/topic/stk.snapshots")
	snapshotListener := listener.NewListener(ctx, &wg, snapshotChannel, stompConn, topic, HandleSnapshots)
	if err := snapshotListener.DeclareQueue(SnapshotQueue); err != nil {
		logger.Fatalw("failed to declare queue", "queue", SnapshotQueue, "error", err)
	}

	wg.Add(1)
	go func() {
		if err := snapshotListener.Start(); err != nil {
			logger.Errorw("snapshot listener stopped", "topic", topic, "error", err)
			stop()
		}
	}()

	logger.Infow("forwarding page snapshots", "topic", topic, "queue", SnapshotQueue)

	<-ctx.Done()
	stop()

	wg.Wait()

	stompConn.Disconnect()
}
