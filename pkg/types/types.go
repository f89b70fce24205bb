// Package types provides shared type definitions for the flow execution engine.
// All core data structures used across packages are defined here to avoid circular dependencies.
package types

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/config"
)

// ============================================================================
// Context Keys
// ============================================================================

type contextKey string

const (
	ContextKeyExecutionID contextKey = "execution_id"
	ContextKeyWorkflowID  contextKey = "workflow_id"
)

// GetExecutionID extracts the execution ID from context.
// Returns empty string if not found in context.
func GetExecutionID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyExecutionID).(string); ok {
		return id
	}
	return ""
}

// GetWorkflowID extracts the workflow ID from context.
// Returns empty string if not found in context.
func GetWorkflowID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyWorkflowID).(string); ok {
		return id
	}
	return ""
}

// ============================================================================
// Value model
// ============================================================================

// Kind discriminates the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
	KindFileRef
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindFileRef:
		return "file"
	default:
		return "unknown"
	}
}

// FileRef is a reference to a file on disk, carried through a flow as a
// first-class value rather than its contents.
type FileRef struct {
	Path string `json:"path"`
	Size int64  `json:"size,omitempty"`
}

// Value is the tagged union every node handle passes between nodes. Only the
// field matching Kind is meaningful; the zero Value is Null.
//
// A Number never holds NaN or +/-Inf once an operation has succeeded — an
// operation that would otherwise produce one clamps its result to 0.0.
type Value struct {
	Kind Kind

	Bool  bool
	Num   float64
	Str   string
	Arr   []Value
	Obj   map[string]Value
	File  FileRef
}

// Null is the shared Null value.
var Null = Value{Kind: KindNull}

func Bool(b bool) Value   { return Value{Kind: KindBoolean, Bool: b} }
func Number(n float64) Value {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		n = 0.0
	}
	return Value{Kind: KindNumber, Num: n}
}
func String(s string) Value { return Value{Kind: KindString, Str: s} }
func Array(vs []Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{Kind: KindArray, Arr: vs}
}
func Object(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{Kind: KindObject, Obj: m}
}
func File(ref FileRef) Value { return Value{Kind: KindFileRef, File: ref} }

// IsNull reports whether v is the Null variant.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// AsString projects v to a string per the coercion table: Null -> "null",
// Boolean -> "true"/"false", Number -> formatted decimal, String -> itself,
// FileRef -> its path. Array/Object have no string projection; ok is false.
func (v Value) AsString() (string, bool) {
	switch v.Kind {
	case KindNull:
		return "null", true
	case KindBoolean:
		if v.Bool {
			return "true", true
		}
		return "false", true
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64), true
	case KindString:
		return v.Str, true
	case KindFileRef:
		return v.File.Path, true
	default:
		return "", false
	}
}

// AsNumber projects v to a float64: Boolean -> 1/0, Number -> itself,
// String -> parsed if numeric. Null/Array/Object/FileRef have no number
// projection; ok is false.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case KindBoolean:
		if v.Bool {
			return 1, true
		}
		return 0, true
	case KindNumber:
		return v.Num, true
	case KindString:
		n, err := strconv.ParseFloat(v.Str, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// AsBool projects v to a bool: Null -> false, Boolean -> itself, Number ->
// false iff 0, String -> false iff empty, Array/Object/FileRef -> always
// true (a present array, object, or resolved file handle is truthy
// regardless of emptiness).
func (v Value) AsBool() (bool, bool) {
	switch v.Kind {
	case KindNull:
		return false, true
	case KindBoolean:
		return v.Bool, true
	case KindNumber:
		return v.Num != 0, true
	case KindString:
		return v.Str != "", true
	case KindArray:
		return true, true
	case KindObject:
		return true, true
	case KindFileRef:
		return true, true
	default:
		return false, false
	}
}

// Preview renders v as a human-readable string truncated to at most n runes,
// used for NodeResult.OutputPreview (n is 200 at the call site).
func (v Value) Preview(n int) string {
	var s string
	switch v.Kind {
	case KindNull:
		s = "null"
	case KindBoolean, KindNumber, KindString, KindFileRef:
		s, _ = v.AsString()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			s = fmt.Sprintf("<%s>", v.Kind)
		} else {
			s = string(b)
		}
	}
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

// MarshalJSON encodes v as the untagged JSON union described by the flow
// document format: a File is the sole object shape carrying exactly one
// "path" key (plus optional "size"); everything else serializes as the
// corresponding native JSON value.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindBoolean:
		return json.Marshal(v.Bool)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindString:
		return json.Marshal(v.Str)
	case KindArray:
		return json.Marshal(v.Arr)
	case KindObject:
		return json.Marshal(v.Obj)
	case KindFileRef:
		return json.Marshal(v.File)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes the untagged union by JSON shape, in precedence
// order null < bool < number < string < array < object, with a File
// recognized by an object whose keys are "path" alone or "path" and "size".
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = fromInterface(raw)
	return nil
}

func fromInterface(raw interface{}) Value {
	switch t := raw.(type) {
	case nil:
		return Null
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case string:
		return String(t)
	case []interface{}:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = fromInterface(e)
		}
		return Array(out)
	case map[string]interface{}:
		_, hasSize := t["size"]
		if path, ok := t["path"]; ok && (len(t) == 1 || (len(t) == 2 && hasSize)) {
			if pathStr, ok := path.(string); ok {
				ref := FileRef{Path: pathStr}
				if size, ok := t["size"].(float64); ok {
					ref.Size = int64(size)
				}
				return File(ref)
			}
		}
		out := make(map[string]Value, len(t))
		for k, e := range t {
			out[k] = fromInterface(e)
		}
		return Object(out)
	default:
		return Null
	}
}

// ============================================================================
// Flow document
// ============================================================================

// FlowNode is one node declaration in a FlowDocument.
type FlowNode struct {
	ID       string          `json:"id"`
	Kind     string          `json:"type"`
	Config   json.RawMessage `json:"config,omitempty"`
	Position json.RawMessage `json:"position,omitempty"`
}

// FlowEdge connects a source node's output handle to a target node's input
// handle. SourceHandle defaults to "value", TargetHandle to "input".
type FlowEdge struct {
	ID            string `json:"id"`
	Source        string `json:"source"`
	SourceHandle  string `json:"sourceHandle,omitempty"`
	Target        string `json:"target"`
	TargetHandle  string `json:"targetHandle,omitempty"`
}

func (e FlowEdge) ResolvedSourceHandle() string {
	if e.SourceHandle == "" {
		return "value"
	}
	return e.SourceHandle
}

func (e FlowEdge) ResolvedTargetHandle() string {
	if e.TargetHandle == "" {
		return "input"
	}
	return e.TargetHandle
}

// FlowDocument is the serializable declaration of a flow: its nodes and the
// edges between them. Node IDs must be unique, every edge endpoint must
// resolve to a declared node, and the edge set must be acyclic.
type FlowDocument struct {
	ID    string     `json:"id,omitempty"`
	Name  string     `json:"name"`
	Nodes []FlowNode `json:"nodes"`
	Edges []FlowEdge `json:"edges"`
}

// ============================================================================
// Execution results
// ============================================================================

// NodeResult is the outcome of one node's execution within a run.
type NodeResult struct {
	Success       bool   `json:"success"`
	OutputPreview string `json:"output_preview,omitempty"`
	Error         string `json:"error,omitempty"`
	DurationMs    int64  `json:"duration_ms"`
}

// ExecutionResult is the final outcome of Engine.Execute: Success is true
// iff every node in the run succeeded.
type ExecutionResult struct {
	Success         bool                  `json:"success"`
	TotalDurationMs int64                 `json:"total_duration_ms"`
	NodeResults     map[string]NodeResult `json:"node_results"`
	Error           string                `json:"error,omitempty"`
}

// Config is a type alias for backward compatibility.
// Deprecated: use github.com/yesoreyeram/thaiyyal/backend/pkg/config.Config directly.
type Config = config.Config
