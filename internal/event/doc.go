// Package event implements the synchronous notification bus the
// transaction manager publishes on.
//
// Delivery is synchronous and ordered: Publish invokes every handler
// subscribed to the topic on the caller's stack, in registration order,
// before returning. There is no priority mechanism; a collaborator that
// must react before another (a layout manager ahead of a minimap redraw)
// simply registers earlier.
//
// The subscriber list is snapshotted before dispatch, so handlers may
// subscribe or unsubscribe (themselves included) while a publish is in
// flight without breaking iteration.
//
// Handler errors are wrapped in HandlerError, handler panics are
// recovered into PanicError, and Publish returns them joined. Publishers
// treat listeners as best-effort observers: a failing handler never
// prevents delivery to the handlers after it.
package event
