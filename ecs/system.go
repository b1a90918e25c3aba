package ecs

// System is a unit of behaviour run by the Scheduler. Exported Query, Singleton
// and Events fields are initialised when the system is registered.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface. It has no fields
// to initialise, so it must reach storage through the frame.
type SystemFunc func(frame *UpdateFrame)

// Execute calls f.
func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
