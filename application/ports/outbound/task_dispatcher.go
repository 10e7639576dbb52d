package outbound

// TaskDispatcher runs fire-and-forget work off the request path. Satisfied
// by *ants.Pool.
type TaskDispatcher interface {
	Submit(task func()) error
}
