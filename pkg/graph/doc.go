// Package graph builds the indexed, validated form of a flow document and
// computes the layered execution schedule the engine walks.
//
// # Overview
//
// Build indexes a types.FlowDocument's nodes and edges, rejecting a
// duplicate node id or an edge whose endpoint does not resolve. Layers
// then computes depth-based layering via Kahn's algorithm: a node's depth
// is one more than the deepest of its predecessors, zero if it has none.
// All nodes sharing a depth form one layer and are mutually independent —
// no edge runs within a layer, so the engine may execute a layer's members
// concurrently.
//
// A cycle leaves some node's in-degree permanently above zero; Layers
// reports that as ErrCycle rather than returning a partial layering.
package graph
