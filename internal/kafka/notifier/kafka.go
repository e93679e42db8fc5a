package notifier

import (
	"context"
	"fmt"
	"forum-permission-service/internal/config"
	"forum-permission-service/internal/kafka/message"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"sync"
)

// writer is the part of kafka.Writer the notifier uses.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type kafkaNotifier struct {
	logger *zap.SugaredLogger
	w      writer
	origin string
}

func NewKafkaNotifier(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg config.KafkaConfig, origin string) Notifier {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		Topic:                  message.CacheInvalidationTopic,
		Async:                  true,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		ErrorLogger:            zap.NewStdLog(logger.Desugar()),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("shutting down kafka writer")
		if err := w.Close(); err != nil {
			logger.Errorw("failed to close kafka writer", "error", err)
		}
	}()

	return &kafkaNotifier{
		logger: logger,
		w:      w,
		origin: origin,
	}
}

func (k *kafkaNotifier) CacheInvalidated(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	msg, err := newInvalidationMessage(k.origin, keys)
	if err != nil {
		return err
	}

	if err := k.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func newInvalidationMessage(origin string, keys []string) (kafka.Message, error) {
	bytes, err := message.Marshal(&message.CacheInvalidation{Origin: origin, Keys: keys})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal message: %w", err)
	}

	return kafka.Message{
		Value:   bytes,
		Headers: []kafka.Header{{Key: message.ProtoTypeHeader, Value: []byte(message.ProtoTypeName())}},
	}, nil
}
