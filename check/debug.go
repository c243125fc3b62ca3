package check

import (
	"go.uber.org/zap"
)

func (c *Checker) traceChecker(msg string, fields ...zap.Field) {
	if c.config.TraceChecker {
		c.logger.Debug(msg, fields...)
	}
}

func (c *Checker) traceReduce(msg string, fields ...zap.Field) {
	if c.config.TraceReduce {
		c.logger.Debug(msg, fields...)
	}
}

func (c *Checker) traceGuard(msg string, fields ...zap.Field) {
	if c.config.TraceGuard {
		c.logger.Debug(msg, fields...)
	}
}
