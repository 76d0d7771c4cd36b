// Package distributed provides an optional, out-of-core-import-graph
// ObservationBus: a hashicorp/memberlist gossip network that fans observation
// records out to every node in a cluster, using memberlist's
// TransmitLimitedQueue and Delegate to broadcast an observation.Record
// stream across nodes. Nothing in the core evolver, analysis, or theorem
// packages imports this one — a single-process run never needs it.
package distributed

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/memberlist"

	"github.com/oates-lab/chaoswarm/observation"
)

// ObservationBus gossips observation.Records to every member of a
// memberlist cluster. It implements observation.Emitter, so it can be
// composed into an observation.MultiEmitter alongside a local
// observation.BufferEmitter.
type ObservationBus struct {
	list  *memberlist.Memberlist
	queue *memberlist.TransmitLimitedQueue

	mu      sync.Mutex
	history []observation.Record

	received chan observation.Record
}

// NewObservationBus joins (or creates, if seeds is empty) a gossip cluster
// under the given node name and bind port, mirroring the config shape of
// the swarm-synchronization package's NewGossipAgent.
func NewObservationBus(name string, bindPort int, seeds []string) (*ObservationBus, error) {
	bus := &ObservationBus{
		received: make(chan observation.Record, 256),
	}

	cfg := memberlist.DefaultLocalConfig()
	cfg.Name = name
	cfg.BindPort = bindPort
	cfg.AdvertisePort = bindPort
	cfg.Delegate = busDelegate{bus: bus}

	list, err := memberlist.Create(cfg)
	if err != nil {
		return nil, fmt.Errorf("create memberlist: %w", err)
	}
	bus.list = list
	bus.queue = &memberlist.TransmitLimitedQueue{
		NumNodes:       func() int { return list.NumMembers() },
		RetransmitMult: 3,
	}

	if len(seeds) > 0 {
		if _, err := list.Join(seeds); err != nil {
			return nil, fmt.Errorf("join gossip cluster: %w", err)
		}
	}

	return bus, nil
}

// Emit implements observation.Emitter by broadcasting r to every cluster
// member and appending it to the local emitted-record history (see
// History).
func (b *ObservationBus) Emit(r observation.Record) {
	payload, err := json.Marshal(r)
	if err != nil {
		return // malformed payload is a numerical-anomaly-class transient, not fatal to the run
	}

	b.mu.Lock()
	b.history = append(b.history, r)
	b.mu.Unlock()

	b.queue.QueueBroadcast(gossipBroadcast(payload))
}

// Received returns records gossiped in by other cluster members, draining
// up to the buffer's current length without blocking.
func (b *ObservationBus) Received() []observation.Record {
	out := make([]observation.Record, 0, len(b.received))
	for {
		select {
		case r := <-b.received:
			out = append(out, r)
		default:
			return out
		}
	}
}

// History returns every record this node has emitted, in emission order.
func (b *ObservationBus) History() []observation.Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]observation.Record, len(b.history))
	copy(out, b.history)
	return out
}

// Leave gracefully departs the gossip cluster and shuts down the
// underlying memberlist, mirroring GossipAgent.Stop's shutdown ordering.
func (b *ObservationBus) Leave(timeout time.Duration) error {
	if err := b.list.Leave(timeout); err != nil {
		return fmt.Errorf("leave gossip cluster: %w", err)
	}
	if err := b.list.Shutdown(); err != nil {
		return fmt.Errorf("shutdown gossip cluster: %w", err)
	}
	return nil
}

// busDelegate adapts ObservationBus to memberlist.Delegate.
type busDelegate struct {
	bus *ObservationBus
}

func (d busDelegate) NodeMeta(limit int) []byte { return nil }

func (d busDelegate) NotifyMsg(msg []byte) {
	var r observation.Record
	if err := json.Unmarshal(msg, &r); err != nil {
		return
	}
	select {
	case d.bus.received <- r:
	default: // drop under sustained backpressure rather than block the gossip goroutine
	}
}

func (d busDelegate) GetBroadcasts(overhead, limit int) [][]byte {
	return d.bus.queue.GetBroadcasts(overhead, limit)
}

func (d busDelegate) LocalState(join bool) []byte { return nil }

func (d busDelegate) MergeRemoteState(buf []byte, join bool) {}

// gossipBroadcast adapts a raw payload to memberlist.Broadcast.
type gossipBroadcast []byte

func (b gossipBroadcast) Invalidates(other memberlist.Broadcast) bool { return false }
func (b gossipBroadcast) Message() []byte                             { return b }
func (b gossipBroadcast) Finished()                                  {}
