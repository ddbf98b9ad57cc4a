package editor

// Phase is the lifecycle phase of a Model within one activation.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseInitializing
	PhaseCanceled
	PhaseFailed
	PhaseReady
	PhaseCreated
	PhaseDisposed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInitializing:
		return "initializing"
	case PhaseCanceled:
		return "canceled"
	case PhaseFailed:
		return "failed"
	case PhaseReady:
		return "ready"
	case PhaseCreated:
		return "created"
	case PhaseDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}
