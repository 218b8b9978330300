package ports

// PushEventKind identifies the change a push notification reports.
type PushEventKind string

// Known push event kinds. The synchronization engine treats every kind
// uniformly as an invalidation signal; the distinction exists for logging and
// future per-kind optimization only.
const (
	EventOrderCreated       PushEventKind = "order.created"
	EventOrderUpdated       PushEventKind = "order.updated"
	EventOrderStatusChanged PushEventKind = "order.status_changed"
	EventOrderDeleted       PushEventKind = "order.deleted"
	EventNegotiationChanged PushEventKind = "negotiation.changed"
)

// IsValid reports whether the kind is one the engine knows about.
func (k PushEventKind) IsValid() bool {
	switch k {
	case EventOrderCreated, EventOrderUpdated, EventOrderStatusChanged,
		EventOrderDeleted, EventNegotiationChanged:
		return true
	}
	return false
}

// PushEvent is an asynchronous change notification delivered by the push
// channel. Events are invalidation signals, not deltas: the payload is opaque
// to the engine and duplicates or reordering are harmless because each event
// triggers a full reconciling fetch.
type PushEvent struct {
	Kind    PushEventKind
	Payload []byte
}

// PushEventSink consumes push events. Implemented by the synchronization
// store; the push channel's connection manager is the only producer.
type PushEventSink interface {
	OnPushEvent(event PushEvent)

	// SetConnected tells the sink whether the push channel is currently live.
	// While connected, cache staleness checks are bypassed because events
	// supersede the TTL.
	SetConnected(connected bool)
}
