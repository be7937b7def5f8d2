// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"strings"

	"github.com/danielhkuo/poll-bot/models"
)

// MentionUser returns the chat markup that pings a user
func MentionUser(userID string) string {
	return "<@" + userID + ">"
}

// ErrorReply turns a command error into the canned reply for the invoking user
func ErrorReply(prefix, userID string, err error) string {
	name := models.NameOf(err)

	var text string
	switch {
	case errors.Is(err, models.ErrBadCommand):
		text = "I only understand `" + prefix + "poll` commands"
	case errors.Is(err, models.ErrMissingParam):
		text = "you're missing a parameter, try `" + prefix + "poll help`"
	case errors.Is(err, models.ErrUnknownParam):
		text = "I don't know that command, try `" + prefix + "poll help`"
	case errors.Is(err, models.ErrPollExists):
		text = "a poll named `" + name + "` already exists"
	case errors.Is(err, models.ErrPollNotFound):
		text = "a poll named `" + name + "` doesn't exist"
	case errors.Is(err, models.ErrOptionExists):
		text = "`" + name + "` is already an option"
	case errors.Is(err, models.ErrOptionNotFound):
		text = "`" + name + "` is not a valid option"
	case errors.Is(err, models.ErrInvalidPollName):
		text = "'" + name + "' is a bad poll name"
	case errors.Is(err, models.ErrUnimplemented):
		text = "that isn't implemented yet"
	default:
		text = "something went wrong"
	}

	return "> " + MentionUser(userID) + " " + text
}

// bulletList renders one `item` per quoted line
func bulletList(header string, items []string) string {
	var b strings.Builder
	b.WriteString(header)
	for _, item := range items {
		b.WriteString("\n>  * `")
		b.WriteString(item)
		b.WriteString("`")
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
