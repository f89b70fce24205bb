// Package executor implements the node kinds a flow document can use, one
// Node per kind, registered in a Registry keyed by kind string.
//
// # Overview
//
// A Node's Execute method gathers a handle→Value input map and a raw JSON
// config, and returns a handle→Value output map. A node never sees the
// graph, the engine, or any other node's state — only its own inputs,
// config, and the narrow ExecutionContext view (cancellation, resource
// limits, and the LLM collaborator).
//
// # Node catalog
//
// Inputs: textInput, numberInput, fileRead, httpRequest.
//
// Transforms: textTemplate, jsonParse, regex, filter, map, merge, split.
//
// Output: debug, fileWrite.
//
// Control: conditional, code, tryCatch, forEach.
//
// AI (collaborator-backed): llmPrompt, llmChat.
//
// # Registration
//
//	reg := executor.NewRegistry()
//	reg.MustRegister(executor.TextInputNode{})
//	reg.MustRegister(executor.NewHTTPNode())
//
// # Errors
//
// A Node returns a plain Go error; the engine attributes it to the node's
// id and wraps it into the appropriate error kind before it reaches a
// caller. Node implementations never need to know about that wrapping.
package executor
