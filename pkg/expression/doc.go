// Package expression implements the sandboxed expression evaluator shared by
// the code, conditional, filter, and map node kinds.
//
// # Overview
//
// Evaluator wraps github.com/expr-lang/expr: user-supplied code is compiled
// and run against a scope map projected into expr's environment, with a
// fixed, pure set of string/math helper functions available and nothing
// else — no file, network, process, or timing capability is exposed.
//
// # Isolation
//
// Every Eval call builds a fresh environment from its scope argument and
// runs the compiled program against it. No variable, cached result, or
// side effect from one call is visible to the next; two identical calls
// against identical scopes in the same run always produce identical
// results.
//
// # Code wrapping
//
// Code is always normalized the same way before compilation, whether or not
// it already looks like "return <expr>" — there is no special case for one
// form over the other. Code that normalizes to an empty body evaluates to
// Null rather than failing. The common JavaScript strict-equality operators
// "===" and "!==" are rewritten to expr-lang's "==" and "!=" so that
// expressions and default conditions carried over from the node kinds'
// JS-era defaults still compile.
//
// # Errors
//
// Both compilation and runtime failures are reported as
// "JavaScript execution error: <detail>", the historical prefix from the
// interface this evaluator stands in for.
package expression
