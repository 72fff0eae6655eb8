package service

import "time"

// Engine stateless metrics calculator parameterised by Params. All methods
// are safe for concurrent use.
type Engine struct {
	params Params
	now    func() time.Time
}

func NewEngine(params Params) *Engine {
	return &Engine{params: params, now: time.Now}
}

func (e *Engine) Params() Params { return e.params }

// ImpermanentLoss see the package-level ImpermanentLoss.
func (e *Engine) ImpermanentLoss(initialRatio, currentRatio float64) float64 {
	return ImpermanentLoss(initialRatio, currentRatio)
}
