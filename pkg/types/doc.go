// Package types provides the shared data model for the flow execution engine.
//
// # Overview
//
// This package holds the types every other package in this module depends
// on, keeping them dependency-free of each other: the Value tagged union
// that flows between node handles, the FlowDocument/FlowNode/FlowEdge
// declaration types, and the NodeResult/ExecutionResult outcome types.
//
// # Value
//
// Value represents a runtime value as one of seven variants: Null, Boolean,
// Number, String, Array, Object, or FileRef. It projects to string, number,
// and bool via AsString/AsNumber/AsBool, each of which reports whether the
// projection is defined for that variant. It round-trips through JSON as an
// untagged union, disambiguated by shape.
//
// # Flow documents
//
// A FlowDocument is a flat list of FlowNode and FlowEdge declarations. Nodes
// are addressed by string ID; edges connect a source node's output handle
// to a target node's input handle, defaulting to "value" and "input"
// respectively when unspecified.
//
// # Execution results
//
// NodeResult captures one node's outcome (success, a truncated output
// preview, an error string, and duration). ExecutionResult aggregates every
// node's result for a run plus an overall success flag and duration.
//
// # Thread Safety
//
// Types in this package are plain data and are not safe for concurrent
// mutation; callers coordinate their own synchronization.
package types
