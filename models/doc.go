// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the persisted poll document, chat message types, and errors.

# Document Types

The whole bot state is one PollCollection, keyed by channel id and then by poll name:

  - Poll: name, owner, start/end time, voters, settings, options
  - Option: option name, creation time, votes
  - Vote: voter id and time
  - Settings: multiple_votes

Times are unix milliseconds. A poll whose time_end is NotEnded (-1) is still open.

# Chat Types

  - Message: inbound chat message (channel, author, content)
  - Request: routed command handed to a verb handler

# Views

  - PollView / OptionTally: vote counts for the view command and the status API
  - VoteResult: options split into voted, already voted, and not existing

# Errors

Sentinel errors are matched with errors.Is. NameError carries the poll or
option name an error refers to:

	return models.WithName(models.ErrInvalidPollName, name)
*/
package models
