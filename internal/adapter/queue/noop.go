package queue

import "go.uber.org/zap"

// NoopQueue drops published events and ignores subscriptions. Used when
// no NATS URL is configured so the demo runs standalone.
type NoopQueue struct {
	log *zap.Logger
}

func NewNoopQueue(log *zap.Logger) MessageQueue {
	log.Info("No message queue configured, events will be dropped")
	return &NoopQueue{log: log}
}

func (q *NoopQueue) Publish(subject string, data []byte) error {
	q.log.Debug("Dropping event", zap.String("subject", subject))
	return nil
}

func (q *NoopQueue) Subscribe(subject string, handler func(data []byte) error) error {
	return nil
}

func (q *NoopQueue) Close() error {
	return nil
}
