package check

import (
	"go.uber.org/zap"
)

const DefaultFuel = 10000

type Config struct {
	// Fuel bounds the number of reduction steps of a single normalization.
	Fuel int

	TraceChecker bool
	TraceReduce  bool
	TraceGuard   bool
}

func DefaultConfig() Config {
	return Config{Fuel: DefaultFuel}
}

// Checker holds no typing state of its own: every judgement is made
// against the Context it is handed, so one Checker may serve many
// goroutines.
type Checker struct {
	config Config
	logger *zap.Logger
}

func NewChecker(config Config, logger *zap.Logger) *Checker {
	if config.Fuel <= 0 {
		config.Fuel = DefaultFuel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		config: config,
		logger: logger.Named("kernel"),
	}
}

func (c *Checker) Config() Config {
	return c.config
}
