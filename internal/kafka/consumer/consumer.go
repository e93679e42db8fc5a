package consumer

import (
	"context"
	"errors"
	"fmt"
	"forum-permission-service/internal/config"
	"forum-permission-service/internal/kafka/message"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"sync"
)

const groupIdPrefix = "forum-permission-service-"

// Evicter is the part of the cache the consumer needs.
type Evicter interface {
	Remove(keys ...string)
}

type KafkaConsumer struct {
	logger *zap.SugaredLogger
	reader *kafka.Reader

	cache  Evicter
	origin string
}

// NewKafkaConsumer evicts keys published by other instances. Every instance
// uses its own consumer group so each one sees every message.
func NewKafkaConsumer(cfg config.KafkaConfig, logger *zap.SugaredLogger, cache Evicter, origin string) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		GroupID:     groupIdPrefix + origin,
		GroupTopics: []string{message.CacheInvalidationTopic},
		StartOffset: kafka.LastOffset,
		Logger:      kafka.LoggerFunc(func(format string, args ...interface{}) { logger.Debugf(format, args...) }),
		ErrorLogger: kafka.LoggerFunc(func(format string, args ...interface{}) { logger.Errorf(format, args...) }),
	})

	return &KafkaConsumer{
		logger: logger,
		reader: reader,
		cache:  cache,
		origin: origin,
	}
}

func (c *KafkaConsumer) Run(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.logger.Infow("listening for cache invalidations", "topic", message.CacheInvalidationTopic)

		for {
			m, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, context.Canceled) {
					break
				}
				c.logger.Errorw("failed to read message", "error", err)
				continue
			}

			c.consume(m)
		}

		c.logger.Info("shutting down kafka reader")
		if err := c.reader.Close(); err != nil {
			c.logger.Errorw("failed to close kafka reader", "error", err)
		}
	}()
}

func (c *KafkaConsumer) consume(m kafka.Message) {
	var protoType string
	for _, header := range m.Headers {
		if header.Key == message.ProtoTypeHeader {
			protoType = string(header.Value)
			break
		}
	}

	if protoType != message.ProtoTypeName() {
		c.logger.Warnw("ignoring message of unknown type", "type", protoType, "offset", m.Offset)
		return
	}

	msg, err := message.Unmarshal(m.Value)
	if err != nil {
		c.logger.Errorw("failed to unmarshal cache invalidation", "error", err, "offset", m.Offset)
		return
	}

	if msg.Origin == c.origin {
		return
	}

	c.cache.Remove(msg.Keys...)
	c.logger.Debugw("evicted remotely invalidated keys", "origin", msg.Origin, "keys", msg.Keys)
}
