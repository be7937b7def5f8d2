// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists the poll collection as a single JSON document.

# Backends

Open picks the backend from the config:

	s, err := store.Open(ctx, cfg)

  - file: a local JSON file (default polls_active.json)
  - sqlite, postgres: one row in poll_document (see package db)
  - redis: one string key, redis://host:port/db?key=name
  - s3: one object, s3://bucket/key

# Semantics

Every backend holds exactly one document and always rewrites it whole.
Load on a store that was never saved returns an empty collection. A document
that cannot be parsed is logged and treated as empty, so the next Save
replaces it.

Encode writes tab-indented JSON with sorted keys, so saving what was just
loaded leaves the stored bytes unchanged.

Nothing here locks across processes: two bots sharing one store can lose
updates.
*/
package store
