package utils

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-stomp/stomp/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

func rabbitURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		os.Getenv("MQ_USER"),
		os.Getenv("MQ_PASSWORD"),
		GetEnv("MQ_HOST", "rabbitmq"),
		GetEnv("MQ_PORT", "5672"),
	)
}

func NewRabbitConnection() (*amqp.Connection, *amqp.Channel, error) {
	connection, err := NewRabbitConnectionOnly()
	if err != nil {
		return nil, nil, err
	}
	channel, err := connection.Channel()
	if err != nil {
		connection.Close()
		return nil, nil, err
	}

	return connection, channel, nil
}

func NewRabbitConnectionOnly() (*amqp.Connection, error) {
	config := amqp.Config{
		Heartbeat: 60 * time.Second,
		Locale:    "en_US",
	}

	return amqp.DialConfig(rabbitURL(), config)
}

// NewBridgeStompConnection connects to the broker the browser bridge publishes page snapshots on.
func NewBridgeStompConnection() (*stomp.Conn, error) {
	endpoint := GetEnv("STOMP_ENDPOINT", "activemq:61613")
	username := os.Getenv("STOMP_USERNAME")
	password := os.Getenv("STOMP_PASSWORD")

	conn, err := stomp.Dial("tcp", endpoint,
		stomp.ConnOpt.Login(username, password),
		stomp.ConnOpt.HeartBeat(30*time.Second, 30*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return conn, nil
}

func NewRedisClient() *redis.Client {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		// default to the redis service in the cluster
		redisAddr = "redis:6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   0,
	})

	return rdb
}

func NewPostgresConnection(ctx context.Context) (*pgxpool.Pool, error) {
	dbConnectionString := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		GetEnv("POSTGRES_HOST", "postgres"),
		GetEnv("POSTGRES_PORT", "5432"),
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_DB"),
	)

	connection, err := pgxpool.New(ctx, dbConnectionString)
	if err != nil {
		return nil, err
	}

	return connection, nil
}
