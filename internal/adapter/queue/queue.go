package queue

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Subjects published by the report engine.
const (
	SubjectReportGenerated        = "reports.generated"
	SubjectEvaluationPeriodChange = "evaluation.period.changed"
)

// MessageQueue defines the interface for a message queue adapter
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}

// New connects to the broker selected by driver ("nats" or "rabbitmq").
func New(driver, url string, log *zap.Logger) (MessageQueue, error) {
	switch driver {
	case "", "nats":
		return NewNATSQueue(url, log)
	case "rabbitmq", "amqp":
		return NewRabbitMQQueue(url, log)
	default:
		return nil, fmt.Errorf("unknown queue driver %q", driver)
	}
}

// PublishJSON marshals v and publishes it on subject. A nil queue is a no-op.
func PublishJSON(mq MessageQueue, subject string, v interface{}) error {
	if mq == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", subject, err)
	}
	return mq.Publish(subject, data)
}
