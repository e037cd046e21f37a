package messenger

import (
	"context"

	"go.uber.org/zap"
)

// LogChannel stands in for the real gateway in development: it logs the
// message and reports success, which still exercises markers and pacing.
type LogChannel struct {
	logger *zap.Logger
}

func NewLogChannel(logger *zap.Logger) *LogChannel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogChannel{logger: logger}
}

func (l *LogChannel) Name() string {
	return "log"
}

func (l *LogChannel) Send(_ context.Context, address, body string) (SendResult, error) {
	l.logger.Info("outbound message (log channel)",
		zap.String("to", address),
		zap.String("body", body),
	)
	return SendResult{Success: true}, nil
}
