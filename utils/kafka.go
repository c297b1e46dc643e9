package utils

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

var kafkaWriter *kafka.Writer

// InitializeKafka sets up the activity-stream producer. Kafka is
// optional: when KAFKA_BROKERS is unset the publisher stays nil and
// PublishActivity becomes a no-op.
func InitializeKafka() {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Println("⚠️ KAFKA_BROKERS not set, activity stream disabled")
		return
	}

	topic := os.Getenv("KAFKA_ACTIVITY_TOPIC")
	if topic == "" {
		topic = "campus-events.activity"
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 5 * time.Second,
		// Audit writes must never block a user-facing mutation.
		Async: true,
	}

	log.Printf("✅ Kafka activity stream ready (topic %s)", topic)
}

// PublishActivity sends one activity record to the stream. Failures
// are logged and swallowed; the audit log row in Postgres remains the
// durable record.
func PublishActivity(action string, payload map[string]interface{}) {
	if kafkaWriter == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("⚠️ Kafka payload marshal failed for %s: %v", action, err)
		return
	}

	err = kafkaWriter.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(action),
		Value: body,
		Time:  time.Now(),
	})
	if err != nil {
		log.Printf("⚠️ Kafka publish failed for %s: %v", action, err)
	}
}
