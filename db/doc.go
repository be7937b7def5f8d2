// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation for the SQL poll stores.

# Schema Creation

CreateSchema initializes the document table:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

  - poll_document: holds the whole poll collection as one JSON body

The bot always reads and writes the complete collection, so there is a single
row with id DocumentID. The same statement runs on SQLite and PostgreSQL.
*/
package db
