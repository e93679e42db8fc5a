package grpczap

import (
	"context"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"testing"
)

func TestInterceptorLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := InterceptorLogger(zap.New(core))

	logger.Log(context.Background(), logging.LevelInfo, "finished call",
		"grpc.method", "Check", "grpc.code", 0, "grpc.ok", true, "grpc.time_ms", 1.5)
	logger.Log(context.Background(), logging.LevelWarn, "slow call")

	entries := logs.AllUntimed()
	assert.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "finished call", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Check", fields["grpc.method"])
	assert.Equal(t, int64(0), fields["grpc.code"])
	assert.Equal(t, true, fields["grpc.ok"])
	assert.Equal(t, 1.5, fields["grpc.time_ms"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}
