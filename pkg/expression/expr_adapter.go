// Package expression implements the sandboxed expression evaluator the
// code, conditional, filter, and map node kinds compile and run user
// expressions against.
package expression

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// Evaluator runs user-supplied expressions in an isolated environment: no
// file, network, process, or timing capability is exposed to evaluated
// code. Compiled programs are cached by source text purely to avoid
// recompiling identical expressions; every Eval call still builds a fresh
// environment map and Run, so no state or side channel survives between
// calls.
type Evaluator struct {
	mu    sync.Mutex
	cache map[string]*vm.Program
}

// New creates an expression evaluator.
func New() *Evaluator {
	return &Evaluator{cache: make(map[string]*vm.Program)}
}

// Eval compiles and runs code against scope, returning the result as a
// Value. Per the evaluator's code-wrapping rule, code is always normalized
// the same way regardless of whether it already reads as a return
// statement — there is no special-cased branch for a bare expression versus
// an explicit return. Code that normalizes to nothing yields Null. Any
// compilation or runtime failure is reported with the historical
// "JavaScript execution error" prefix, carried over from the interface this
// evaluator replaces.
func (e *Evaluator) Eval(code string, scope map[string]types.Value) (types.Value, error) {
	body := normalizeBody(code)
	if body == "" {
		return types.Null, nil
	}

	env := e.buildEnv(scope)

	e.mu.Lock()
	program, ok := e.cache[body]
	e.mu.Unlock()
	if !ok {
		var err error
		program, err = expr.Compile(body, expr.Env(env))
		if err != nil {
			return types.Null, fmt.Errorf("JavaScript execution error: %v", err)
		}
		e.mu.Lock()
		e.cache[body] = program
		e.mu.Unlock()
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return types.Null, fmt.Errorf("JavaScript execution error: %v", err)
	}
	return bridge(out), nil
}

// normalizeBody strips an optional leading "return" keyword and trailing
// semicolon. It is applied unconditionally — code with no return keyword
// goes through the identical transform — so both cases produce the same
// evaluated body, matching the evaluator's always-wrap contract.
func normalizeBody(code string) string {
	body := strings.TrimSpace(code)
	body = strings.TrimPrefix(body, "return")
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, ";")
	body = strings.ReplaceAll(body, "===", "==")
	body = strings.ReplaceAll(body, "!==", "!=")
	return strings.TrimSpace(body)
}

// buildEnv projects scope into expr's environment map and adds the
// sandbox's fixed set of pure helper functions. No entry in this map
// touches the filesystem, network, process table, or wall clock.
func (e *Evaluator) buildEnv(scope map[string]types.Value) map[string]interface{} {
	env := make(map[string]interface{}, len(scope)+16)
	addHelpers(env)
	for k, v := range scope {
		env[k] = toNative(v)
	}
	return env
}

func addHelpers(env map[string]interface{}) {
	env["contains"] = strings.Contains
	env["startsWith"] = strings.HasPrefix
	env["endsWith"] = strings.HasSuffix
	env["upper"] = strings.ToUpper
	env["lower"] = strings.ToLower
	env["trim"] = strings.TrimSpace
	env["replace"] = strings.ReplaceAll
	env["split"] = strings.Split
	env["join"] = func(arr []interface{}, sep string) string {
		parts := make([]string, len(arr))
		for i, v := range arr {
			parts[i] = fmt.Sprintf("%v", v)
		}
		return strings.Join(parts, sep)
	}
	env["pow"] = math.Pow
	env["sqrt"] = math.Sqrt
	env["abs"] = math.Abs
}

// toNative converts a Value to the plain Go value expr-lang expressions
// operate on.
func toNative(v types.Value) interface{} {
	switch v.Kind {
	case types.KindNull:
		return nil
	case types.KindBoolean:
		return v.Bool
	case types.KindNumber:
		return v.Num
	case types.KindString:
		return v.Str
	case types.KindArray:
		out := make([]interface{}, len(v.Arr))
		for i, e := range v.Arr {
			out[i] = toNative(e)
		}
		return out
	case types.KindObject:
		out := make(map[string]interface{}, len(v.Obj))
		for k, e := range v.Obj {
			out[k] = toNative(e)
		}
		return out
	case types.KindFileRef:
		return map[string]interface{}{"path": v.File.Path, "size": v.File.Size}
	default:
		return nil
	}
}

// bridge converts an expr-lang result back to a Value: Null for nil,
// Boolean/Number/String directly, Array/Object recursively, and a
// {path,size}-shaped map back to FileRef the same way a plain object with
// those two keys would decode from JSON.
func bridge(out interface{}) types.Value {
	switch t := out.(type) {
	case nil:
		return types.Null
	case bool:
		return types.Bool(t)
	case float64:
		return types.Number(t)
	case int:
		return types.Number(float64(t))
	case string:
		return types.String(t)
	case []interface{}:
		vals := make([]types.Value, len(t))
		for i, e := range t {
			vals[i] = bridge(e)
		}
		return types.Array(vals)
	case map[string]interface{}:
		if path, ok := t["path"].(string); ok {
			if _, hasSize := t["size"]; len(t) == 1 || (len(t) == 2 && hasSize) {
				ref := types.FileRef{Path: path}
				switch size := t["size"].(type) {
				case int64:
					ref.Size = size
				case int:
					ref.Size = int64(size)
				case float64:
					ref.Size = int64(size)
				}
				return types.File(ref)
			}
		}
		obj := make(map[string]types.Value, len(t))
		for k, e := range t {
			obj[k] = bridge(e)
		}
		return types.Object(obj)
	default:
		return types.String(fmt.Sprintf("%v", t))
	}
}
