package syncstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/domain/services"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"
)

// DefaultTTL is the maximum age of cached data before a forced refresh is
// required while the push channel is disconnected.
const DefaultTTL = 5 * time.Minute

// Scope selects which slice of the remote order set a fetch retrieves.
type Scope int

const (
	// ScopeAll fetches the full order set (admin/operator credentials).
	ScopeAll Scope = iota

	// ScopeActor fetches the orders relevant to the configured actor.
	ScopeActor
)

// Snapshot is a read-only view of the cached order set. Orders are deep
// copies: callers may inspect them freely but changes never reach the cache.
type Snapshot struct {
	Orders      []*order.Order
	LastFetched time.Time
	Connected   bool

	// LastError carries the most recent fetch failure, nil after a
	// successful reconciliation. The last good cache stays served while
	// it is set.
	LastError error
}

// Listener is notified synchronously after every cache mutation. Listeners
// must not call back into the store.
type Listener func(Snapshot)

// Mutation couples the optimistic local patch of an order transition with the
// gateway call that makes it authoritative.
type Mutation struct {
	// Name identifies the operation in errors and logs ("claim", "reject", ...).
	Name string

	// Patch applies the expected outcome to a working copy of the order.
	// A patch error (validation, conflict, authorization) aborts the
	// mutation before any gateway call is issued.
	Patch func(*order.Order) error

	// Call issues the corresponding gateway operation.
	Call func(ctx context.Context) error
}

// mutationToken tracks one in-flight optimistic mutation. Holding the
// pre-mutation snapshot in the token, rather than relying on call-site
// discipline, is what guarantees rollback restores the exact prior state.
type mutationToken struct {
	orderID   string
	operation string
	snapshot  *order.Order
}

// Config carries optional store settings; zero values select defaults.
type Config struct {
	// TTL overrides DefaultTTL.
	TTL time.Duration

	// Metrics overrides the default-registry metrics, mainly for tests.
	Metrics *Metrics

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Store is the synchronization core: the sole owner of the cached order set.
// It mediates every read and write so that in-flight optimistic mutations are
// never lost to a concurrent background refresh.
//
// All entry points serialize on one mutex. The lock is released while a
// gateway call is outstanding; fetch responses carry a sequence number and
// only the latest issued fetch may apply its result, so a stale response can
// never overwrite newer data.
type Store struct {
	gateway   ports.OrderGateway
	mirror    ports.MirrorRepository
	projector services.RoleProjector
	logger    *slog.Logger
	metrics   *Metrics
	ttl       time.Duration
	now       func() time.Time

	mu          sync.Mutex
	orders      map[string]*order.Order
	lastFetched time.Time
	lastErr     error
	connected   bool
	fetchSeq    uint64
	inFlight    map[string]*mutationToken
	listeners   []Listener

	actorID  kernel.UUID
	role     services.Role
	hasActor bool
}

var _ ports.PushEventSink = (*Store)(nil)

// NewStore creates a synchronization store. The mirror repository is optional:
// pass nil to run without local persistence.
func NewStore(gateway ports.OrderGateway, mirror ports.MirrorRepository, logger *slog.Logger, cfg Config) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics(prometheus.DefaultRegisterer)
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}

	return &Store{
		gateway:   gateway,
		mirror:    mirror,
		projector: services.NewRoleProjector(),
		logger:    logger.With("component", "syncstore"),
		metrics:   cfg.Metrics,
		ttl:       cfg.TTL,
		now:       cfg.Now,
		orders:    make(map[string]*order.Order),
		inFlight:  make(map[string]*mutationToken),
	}
}

// SetActor records the credentialed actor the store synchronizes for.
// Actor-scoped fetches and push-triggered reconciliation use this identity.
func (s *Store) SetActor(actorID kernel.UUID, role services.Role) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := role.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.actorID = actorID
	s.role = role
	s.hasActor = true
	return nil
}

// ClearActor forgets the actor identity on credential loss. The push channel
// owner is expected to tear the connection down alongside this call.
func (s *Store) ClearActor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasActor = false
	s.actorID = kernel.UUID{}
	s.role = services.RoleUnknown
}

// SetConnected flips the push-channel connectivity flag. While connected,
// cache staleness checks are bypassed because push events supersede the TTL.
func (s *Store) SetConnected(connected bool) {
	s.mu.Lock()
	s.connected = connected
	s.mu.Unlock()

	s.publish()
}

// Subscribe registers a listener invoked synchronously after every cache
// mutation.
func (s *Store) Subscribe(listener Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// WarmStart seeds an empty cache from the mirror repository. The TTL clock is
// not advanced: the first access after a warm start still reconciles with the
// authority.
func (s *Store) WarmStart(ctx context.Context) error {
	if s.mirror == nil {
		return nil
	}

	restored, err := s.mirror.LoadAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.orders) > 0 {
		return nil
	}
	for _, o := range restored {
		s.orders[o.ID().String()] = o.Clone()
	}
	s.logger.InfoContext(ctx, "Cache warm-started from mirror", "orders", len(restored))
	return nil
}

// Snapshot returns the current cached order set. Never triggers I/O.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// GetOrderByID returns a copy of one cached order. Never triggers I/O.
func (s *Store) GetOrderByID(id kernel.UUID) (*order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id.String()]
	if !ok {
		return nil, false
	}
	return o.Clone(), true
}

// GetByStatusSet returns copies of the cached orders whose status is in the
// given set. Never triggers I/O.
func (s *Store) GetByStatusSet(statuses ...order.Status) []*order.Order {
	wanted := make(map[order.Status]bool, len(statuses))
	for _, st := range statuses {
		wanted[st] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*order.Order, 0)
	for _, o := range s.orders {
		if wanted[o.Status()] {
			matched = append(matched, o.Clone())
		}
	}
	return matched
}

// Projection derives the role- and tab-scoped view of the current snapshot.
func (s *Store) Projection(role services.Role, actorID kernel.UUID, tab services.Tab) ([]services.ViewRow, error) {
	snap := s.Snapshot()
	return s.projector.Project(snap.Orders, role, actorID, tab)
}

// Fetch conditionally refreshes the cache and returns the current snapshot.
//
// Staleness rule: while the push channel is connected the TTL is bypassed
// (events supersede it) and only a never-populated cache forces a fetch; while
// disconnected, a fetch is forced once the TTL has elapsed.
//
// A failed fetch is never destructive: the last good cache is retained,
// lastFetched stays untouched so the next access retries, and the categorized
// error is surfaced both in the snapshot and the return value.
func (s *Store) Fetch(ctx context.Context, scope Scope) (Snapshot, error) {
	s.mu.Lock()
	if !s.staleLocked() {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	}
	s.mu.Unlock()

	return s.fetchNow(ctx, scope)
}

// ForceFetch refreshes the cache regardless of TTL remaining.
func (s *Store) ForceFetch(ctx context.Context, scope Scope) (Snapshot, error) {
	return s.fetchNow(ctx, scope)
}

// Mutate applies an optimistic order transition and makes it authoritative.
//
// The patch is applied to the local copy synchronously so readers see the new
// state immediately. The gateway call then runs without the store lock held.
// On success the optimistic copy is not trusted as final truth: a forced
// reconciling fetch follows, because transitions can have server-side effects
// (auto-assignment among them) the patch cannot know. On failure the order is
// reverted to its pre-mutation snapshot and the error is returned.
//
// At most one mutation may be in flight per order id; a second attempt fails
// with a conflict instead of queueing, because stacking two optimistic patches
// without server truth in between compounds a possibly wrong guess.
func (s *Store) Mutate(ctx context.Context, orderID kernel.UUID, m Mutation) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if m.Patch == nil || m.Call == nil {
		return errs.NewValueIsRequiredError("mutation patch and call")
	}

	token, err := s.begin(orderID, m)
	if err != nil {
		return err
	}
	s.publish()

	if callErr := m.Call(ctx); callErr != nil {
		s.abort(token)
		s.logger.WarnContext(ctx, "Mutation rolled back",
			"operation", m.Name, "order", orderID.String(), "error", callErr)
		return callErr
	}

	s.commit(token)

	// Reconcile authoritative state; the optimistic patch may be incomplete.
	scope := ScopeAll
	s.mu.Lock()
	if s.hasActor {
		scope = ScopeActor
	}
	s.mu.Unlock()

	if _, fetchErr := s.fetchNow(ctx, scope); fetchErr != nil {
		// The transition itself succeeded; reconciliation will be retried by
		// the next access or push event.
		s.logger.WarnContext(ctx, "Post-mutation reconciliation failed",
			"operation", m.Name, "order", orderID.String(), "error", fetchErr)
	}
	return nil
}

// OnPushEvent handles one push notification. Every valid kind is treated
// uniformly as an invalidation signal: the TTL is voided and a fetch scoped to
// the current actor is forced. Malformed events are counted, logged and
// dropped; they never crash the reconciliation loop.
func (s *Store) OnPushEvent(event ports.PushEvent) {
	if !event.Kind.IsValid() {
		s.metrics.droppedEvents.Inc()
		s.logger.Warn("Dropping malformed push event", "kind", string(event.Kind))
		return
	}
	s.metrics.pushEvents.WithLabelValues(string(event.Kind)).Inc()

	s.mu.Lock()
	s.lastFetched = time.Time{}
	scope := ScopeAll
	if s.hasActor {
		scope = ScopeActor
	}
	s.mu.Unlock()

	if _, err := s.fetchNow(context.Background(), scope); err != nil {
		s.logger.Warn("Push-triggered fetch failed",
			"kind", string(event.Kind), "error", err)
	}
}

// begin opens the two-phase optimistic protocol: it validates the
// single-in-flight invariant, snapshots the order and applies the patch.
func (s *Store) begin(orderID kernel.UUID, m Mutation) (*mutationToken, error) {
	key := orderID.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.orders[key]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", key)
	}

	if _, busy := s.inFlight[key]; busy {
		s.metrics.conflicts.Inc()
		return nil, errs.NewConflictErrorWithCause(m.Name,
			fmt.Errorf("another mutation is in flight for order %s", key))
	}

	working := current.Clone()
	if err := m.Patch(working); err != nil {
		return nil, err
	}

	token := &mutationToken{
		orderID:   key,
		operation: m.Name,
		snapshot:  current,
	}
	s.inFlight[key] = token
	s.orders[key] = working
	return token, nil
}

// publish fans the current snapshot out to subscribers.
func (s *Store) publish() {
	s.mu.Lock()
	listeners, snap := s.notifyLocked()
	s.mu.Unlock()
	fanOut(listeners, snap)
}

// commit settles a token after gateway acknowledgement.
func (s *Store) commit(token *mutationToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, token.orderID)
}

// abort reverts the order to its pre-mutation snapshot.
func (s *Store) abort(token *mutationToken) {
	s.mu.Lock()
	s.orders[token.orderID] = token.snapshot
	delete(s.inFlight, token.orderID)
	s.metrics.rollbacks.Inc()
	s.mu.Unlock()

	s.publish()
}

// fetchNow performs an unconditional reconciling fetch. The lock is dropped
// while the gateway call is outstanding; the sequence number decides whether
// the response may still apply.
func (s *Store) fetchNow(ctx context.Context, scope Scope) (Snapshot, error) {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	actorID := s.actorID
	hasActor := s.hasActor
	s.mu.Unlock()

	var fetched []*order.Order
	var err error
	switch scope {
	case ScopeActor:
		if !hasActor {
			return s.Snapshot(), errs.NewValueIsRequiredError("actor identity")
		}
		fetched, err = s.gateway.ListOrdersForActor(ctx, actorID)
	default:
		fetched, err = s.gateway.ListOrders(ctx)
	}

	s.mu.Lock()
	if seq != s.fetchSeq {
		// A newer fetch was issued while this one was outstanding; its result
		// wins. Discard ours without touching the cache.
		s.metrics.staleFetches.Inc()
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	}

	if err != nil {
		s.metrics.fetches.WithLabelValues("error").Inc()
		s.lastErr = err
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, err
	}

	next := make(map[string]*order.Order, len(fetched))
	for _, o := range fetched {
		next[o.ID().String()] = o.Clone()
	}
	// Keep optimistic copies for orders still mid-mutation: a background
	// refresh must never clobber an in-flight patch.
	for key := range s.inFlight {
		if local, ok := s.orders[key]; ok {
			next[key] = local
		}
	}

	s.orders = next
	s.lastFetched = s.now()
	s.lastErr = nil
	s.metrics.fetches.WithLabelValues("ok").Inc()

	listeners, snap := s.notifyLocked()
	s.mu.Unlock()

	fanOut(listeners, snap)
	s.persistMirror(ctx, snap)
	return snap, nil
}

// staleLocked applies the TTL/connectivity rule. Callers hold the lock.
func (s *Store) staleLocked() bool {
	if s.lastFetched.IsZero() {
		return true
	}
	if s.connected {
		return false
	}
	return s.now().Sub(s.lastFetched) >= s.ttl
}

func (s *Store) snapshotLocked() Snapshot {
	orders := make([]*order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, o.Clone())
	}
	return Snapshot{
		Orders:      orders,
		LastFetched: s.lastFetched,
		Connected:   s.connected,
		LastError:   s.lastErr,
	}
}

// notifyLocked prepares the listener fan-out. Callers hold the lock, invoke
// fanOut after releasing it so listeners cannot deadlock against the store.
func (s *Store) notifyLocked() ([]Listener, Snapshot) {
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	return listeners, s.snapshotLocked()
}

func fanOut(listeners []Listener, snap Snapshot) {
	for _, l := range listeners {
		l(snap)
	}
}

// persistMirror stores the reconciled set, best effort: a mirror failure is
// logged and never fails the fetch.
func (s *Store) persistMirror(ctx context.Context, snap Snapshot) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.ReplaceAll(ctx, snap.Orders); err != nil {
		s.logger.WarnContext(ctx, "Mirror persistence failed", "error", err)
	}
}
