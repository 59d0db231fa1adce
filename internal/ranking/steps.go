package ranking

import "go.uber.org/zap"

// Step describes how many documents entered and left one ranking stage.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

func (e *Engine) step(name string, info Step) {
	e.logger.Info("ranking step",
		zap.String("name", name),
		zap.Int("initial", info.Initial),
		zap.Int("dropped", info.Dropped),
		zap.Int("left", info.Left),
	)
}
