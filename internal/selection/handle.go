package selection

// ResetHandle lets a host clear the control without going through its
// normal interaction flow.
type ResetHandle interface {
	CleanValues()
}

type resetHandle struct {
	engine *Engine
}

// CleanValues resets the engine.
func (h resetHandle) CleanValues() {
	h.engine.Reset()
}
