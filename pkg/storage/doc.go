/*
Package storage persists traindeck's local submission log.

Every submitted app is recorded as a types.AppRecord — the resolved app
definition plus the assigned id, status, and submission time — so the CLI
can list and inspect past submissions without talking to the remote
scheduler.

# Architecture

The Store interface abstracts persistence; BoltStore implements it on
BoltDB (go.etcd.io/bbolt), a single-file embedded key/value store. Records
are stored as JSON in an "apps" bucket keyed by app id:

	apps/
	  <app-id> -> AppRecord (JSON)

JSON keeps the database debuggable with standard tools; the write volume
here (one record per submission) makes encoding cost irrelevant.

# Usage

	store, err := storage.NewBoltStore(dataDir)
	if err != nil { ... }
	defer store.Close()

	if err := store.SaveApp(rec); err != nil { ... }
	recs, err := store.ListApps() // most recent first

SaveApp is an upsert: saving an existing id overwrites the record, which
is how status updates are written.

# Concurrency

BoltDB serializes writers internally and allows concurrent readers; the
store adds no locking of its own. A single BoltStore is safe for use from
multiple goroutines, but the database file is locked per process.
*/
package storage
