// Package service provides the domain models shared by the resolver,
// classifier, executor and history packages.
package service

import (
	"fmt"
	"path/filepath"
)

// State is the observed activation state of a managed target.
type State int

// Observed states. Each backend query produces a fresh value.
const (
	StateUnknown State = iota
	StateActive
	StateInactive
	StateFailed
	StateActivating
	StateDeactivating
)

// String returns the state as reported by systemd.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	case StateFailed:
		return "failed"
	case StateActivating:
		return "activating"
	case StateDeactivating:
		return "deactivating"
	case StateUnknown:
		return "unknown"
	}
	return "unknown"
}

// ParseState maps an ActiveState value onto a State.
func ParseState(s string) State {
	switch s {
	case "active":
		return StateActive
	case "inactive":
		return StateInactive
	case "failed":
		return StateFailed
	case "activating", "reloading":
		return StateActivating
	case "deactivating":
		return StateDeactivating
	default:
		return StateUnknown
	}
}

// Strategy is the way a restart is carried out.
// The zero value is used by plain start and stop operations.
type Strategy int

// Restart strategies.
const (
	StrategyNone Strategy = iota
	StrategyRestart
	StrategyStopStart
)

// String returns a human readable strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyRestart:
		return "restart"
	case StrategyStopStart:
		return "stop-start"
	case StrategyNone:
		return "none"
	}
	return "none"
}

// ServiceType is the Type= setting of a service unit.
type ServiceType int

// Service types the classifier distinguishes. Everything else is TypeOther.
const (
	TypeSimple ServiceType = iota
	TypeForking
	TypeOneshot
	TypeNotify
	TypeOther
)

// UnitProperties holds the structural properties the classifier needs.
type UnitProperties struct {
	Type            ServiceType
	RawType         string // value as reported, kept for TypeOther
	RemainAfterExit bool
	CanRestart      bool
}

// ParseServiceType maps a Type= value onto a ServiceType.
func ParseServiceType(s string) ServiceType {
	switch s {
	case "simple", "":
		return TypeSimple
	case "forking":
		return TypeForking
	case "oneshot":
		return TypeOneshot
	case "notify":
		return TypeNotify
	default:
		return TypeOther
	}
}

// String returns the Type= value.
func (t ServiceType) String() string {
	switch t {
	case TypeSimple:
		return "simple"
	case TypeForking:
		return "forking"
	case TypeOneshot:
		return "oneshot"
	case TypeNotify:
		return "notify"
	case TypeOther:
		return "other"
	}
	return "other"
}

// Kind distinguishes unit targets from compose targets.
type Kind int

// Target kinds.
const (
	KindUnit Kind = iota
	KindCompose
)

// Target is the resolved subject of an invocation.
type Target struct {
	Name        string
	Kind        Kind
	ComposeFile string // absolute path, set for KindCompose only
}

// UnitTarget returns a target for the named unit.
func UnitTarget(name string) Target {
	return Target{Name: name, Kind: KindUnit}
}

// ComposeTarget returns a target for the compose file at path.
func ComposeTarget(path string) Target {
	return Target{Name: filepath.Base(path), Kind: KindCompose, ComposeFile: path}
}

// Label returns the identifier recorded in the history log.
func (t Target) Label() string {
	switch t.Kind {
	case KindCompose:
		return "compose:" + filepath.Base(t.ComposeFile)
	case KindUnit:
		return t.Name
	}
	return t.Name
}

// Operation is the command an invocation carries out.
type Operation int

// Operations.
const (
	OpTickle Operation = iota
	OpStart
	OpStop
)

// String returns the command name recorded in history.
func (o Operation) String() string {
	switch o {
	case OpTickle:
		return "tickle"
	case OpStart:
		return "start"
	case OpStop:
		return "stop"
	}
	return "tickle"
}

// Phase is a step of the per-invocation state machine.
type Phase int

// Phases. Verified and Failed are terminal.
const (
	PhaseResolved Phase = iota
	PhaseClassified
	PhaseExecuting
	PhaseVerified
	PhaseFailed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseResolved:
		return "resolved"
	case PhaseClassified:
		return "classified"
	case PhaseExecuting:
		return "executing"
	case PhaseVerified:
		return "verified"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Terminal reports whether no further transitions are possible.
func (p Phase) Terminal() bool {
	return p == PhaseVerified || p == PhaseFailed
}

// Outcome is the structured result of one executed operation.
type Outcome struct {
	Target       Target
	Operation    Operation
	Strategy     Strategy
	InitialState State
	FinalState   State
	Phase        Phase
	Succeeded    bool
	Err          *Error   // nil when Succeeded
	Advisories   []string // non-fatal notes, e.g. missing privileges
}

// Status returns the history status for the outcome.
func (o Outcome) Status() Status {
	if o.Succeeded {
		return StatusSuccess
	}
	return StatusFailed
}

// Status is the recorded result of an operation.
type Status int

// Recorded statuses.
const (
	StatusSuccess Status = iota
	StatusFailed
)

// String returns the status as written to the history log.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailed:
		return "FAILED"
	}
	return "FAILED"
}

// MarshalText encodes the status as its history column value.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a history column value.
func (s *Status) UnmarshalText(text []byte) error {
	status, ok := ParseStatus(string(text))
	if !ok {
		return fmt.Errorf("invalid status %q", text)
	}
	*s = status
	return nil
}

// ParseStatus parses a history status column.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "SUCCESS":
		return StatusSuccess, true
	case "FAILED":
		return StatusFailed, true
	default:
		return StatusFailed, false
	}
}
