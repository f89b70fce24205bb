// Package storage describes the persistence collaborator the engine is
// typically embedded behind: saving and loading flow documents, recording
// execution history, and a small settings bag. A real deployment backs
// Store with a database; InMemoryStore is a reference implementation for
// development and testing.
//
// # Usage
//
//	store := storage.NewInMemoryStore()
//	id, err := store.SaveFlow("greeting", "says hello", doc)
//	flow, err := store.LoadFlow(id)
//	summaries := store.ListFlows()
package storage
