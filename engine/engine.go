// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package engine implements the poll operations on top of a store.
// Every operation loads the whole collection, changes it in memory and saves it back.
package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/poll-bot/models"
	"github.com/danielhkuo/poll-bot/store"
)

// RejectedPollNames can never be used as poll names
var RejectedPollNames = []string{""}

type Engine struct {
	mu    sync.Mutex
	store store.Store
	now   func() time.Time
}

type Option func(*Engine)

// WithClock replaces time.Now for timestamps
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{store: s, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreatePoll stores a new poll with the given options in the channel
func (e *Engine) CreatePoll(ctx context.Context, channelID, name, owner string, options []string) (*models.Poll, error) {
	name = models.NormalizePollName(name)
	if slices.Contains(RejectedPollNames, name) {
		return nil, models.WithName(models.ErrInvalidPollName, name)
	}

	now := e.now().UnixMilli()
	poll := &models.Poll{
		Name:      name,
		Options:   make([]models.Option, 0, len(options)),
		TimeStart: now,
		TimeEnd:   models.NotEnded,
		Owner:     owner,
		Settings:  models.DefaultSettings(),
		HasVoted:  []string{},
	}
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		if _, exists := poll.Option(opt); exists {
			return nil, models.WithName(models.ErrOptionExists, opt)
		}
		poll.Options = append(poll.Options, models.Option{
			Name:        opt,
			Votes:       []models.Vote{},
			TimeCreated: now,
		})
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	polls, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	if _, exists := polls.Poll(channelID, name); exists {
		return nil, models.WithName(models.ErrPollExists, name)
	}

	polls.Put(channelID, poll)
	if err := e.save(ctx, polls); err != nil {
		return nil, err
	}

	return poll, nil
}

// Vote records a vote for every requested option the voter has not voted for yet.
// While the poll allows multiple votes, a voter may hold one vote per option;
// otherwise any earlier vote in the poll blocks the rest.
func (e *Engine) Vote(ctx context.Context, channelID, pollName, voterID string, optionNames []string) (models.VoteResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	polls, err := e.load(ctx)
	if err != nil {
		return models.VoteResult{}, err
	}

	poll, ok := polls.Poll(channelID, pollName)
	if !ok {
		return models.VoteResult{}, models.WithName(models.ErrPollNotFound, models.NormalizePollName(pollName))
	}

	result := models.VoteResult{Poll: poll.Name}
	now := e.now().UnixMilli()

	for _, name := range optionNames {
		opt, ok := poll.Option(name)
		if !ok {
			result.NotExists = append(result.NotExists, name)
			continue
		}

		blocked := !poll.Settings.MultipleVotes && poll.HasVotedInPoll(voterID)
		if blocked || opt.HasVotedFor(voterID) {
			result.AlreadyVoted = append(result.AlreadyVoted, opt.Name)
			continue
		}

		opt.Votes = append(opt.Votes, models.Vote{User: voterID, Time: now})
		result.Voted = append(result.Voted, opt.Name)

		if !poll.HasVotedInPoll(voterID) {
			poll.HasVoted = append(poll.HasVoted, voterID)
		}
	}

	if len(result.Voted) == 0 {
		return result, nil
	}

	if err := e.save(ctx, polls); err != nil {
		return models.VoteResult{}, err
	}
	return result, nil
}

// ListPolls returns the sorted poll names of a channel
func (e *Engine) ListPolls(ctx context.Context, channelID string) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	polls, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(polls.Channel(channelID)))
	for name, p := range polls.Channel(channelID) {
		// null entries in old documents cannot be viewed or voted on
		if p == nil {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	return names, nil
}

// ViewPoll returns the vote count of each option in option order
func (e *Engine) ViewPoll(ctx context.Context, channelID, pollName string) (models.PollView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	polls, err := e.load(ctx)
	if err != nil {
		return models.PollView{}, err
	}

	poll, ok := polls.Poll(channelID, pollName)
	if !ok {
		return models.PollView{}, models.WithName(models.ErrPollNotFound, models.NormalizePollName(pollName))
	}

	return poll.View(channelID), nil
}

// EndPoll is not supported yet
func (e *Engine) EndPoll(ctx context.Context, channelID, pollName, userID string) error {
	return models.ErrUnimplemented
}

func (e *Engine) load(ctx context.Context) (models.PollCollection, error) {
	polls, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load polls: %w", err)
	}
	return polls, nil
}

func (e *Engine) save(ctx context.Context, polls models.PollCollection) error {
	if err := e.store.Save(ctx, polls); err != nil {
		return fmt.Errorf("failed to save polls: %w", err)
	}
	return nil
}
