// Package observation defines the typed observation record emitted by the
// swarm-Koopman core and a small collaborator-facing Emitter interface.
// Serialization to JSON, CSV, or any wire format is explicitly an external
// collaborator's concern; this package only defines the shape and a
// couple of in-process emitters useful for tests and demos.
package observation

import "time"

// Kind identifies the schema of a Record's Payload.
type Kind string

const (
	KindInit        Kind = "init"
	KindPrimePair   Kind = "prime_pair"
	KindStepMetric  Kind = "step_metric"
	KindConfidence  Kind = "confidence"
	KindFinalMetric Kind = "final_metric"
	KindDiagnostic  Kind = "diagnostic" // numerical anomaly surfacing
)

// SystemAgentID is the sentinel agent_id used for system-level records.
const SystemAgentID = -1

// Record is a single typed observation. Payload's schema is fixed per
// Kind; see the package-level doc comments near each emit site for the
// fields a given Kind carries.
type Record struct {
	Timestamp time.Time
	Step      int
	AgentID   int
	Kind      Kind
	Payload   map[string]any
}

// Emitter receives a stream of Records. Implementations may log, buffer,
// forward over a wire protocol, or discard; the core has no wire-protocol
// opinion.
type Emitter interface {
	Emit(Record)
}

// NopEmitter discards every record. It is the zero-cost default when no
// observation stream is needed.
type NopEmitter struct{}

// Emit implements Emitter by doing nothing.
func (NopEmitter) Emit(Record) {}
