package models

import (
	"context"
	"strings"
	"time"
)

// NotEnded is the time_end value of a poll that is still open
const NotEnded int64 = -1

// Command verbs
const (
	VerbNew    = "new"
	VerbCreate = "create"
	VerbVote   = "vote"
	VerbOption = "option"
	VerbList   = "list"
	VerbView   = "view"
	VerbEnd    = "end"
	VerbFinish = "finish"
	VerbHelp   = "help"
)

// Chat types

// Message is an inbound chat message as seen by the router
type Message struct {
	ID        string
	ChannelID string
	UserID    string
	Content   string
}

// Request is what a verb handler receives after routing
type Request struct {
	RequestID string
	ChannelID string
	UserID    string
	Verb      string
	Args      []string
}

// HandlerFunc handles one routed command and returns the reply text
type HandlerFunc func(ctx context.Context, req Request) (string, error)

// Domain types

// channel id -> poll name -> poll
type PollCollection map[string]ChannelPolls

type ChannelPolls map[string]*Poll

type Poll struct {
	Name      string   `json:"name"`
	Options   []Option `json:"options"`
	TimeStart int64    `json:"time_start"`
	TimeEnd   int64    `json:"time_end"`
	Owner     string   `json:"owner"`
	Settings  Settings `json:"settings"`
	HasVoted  []string `json:"has_voted"`
}

type Settings struct {
	MultipleVotes bool `json:"multiple_votes"`
}

type Option struct {
	Name        string `json:"name"`
	Votes       []Vote `json:"votes"`
	TimeCreated int64  `json:"time_created"`
}

type Vote struct {
	User string `json:"user"`
	Time int64  `json:"time"`
}

// Read-only views

type OptionTally struct {
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}

type PollView struct {
	Channel       string        `json:"channel"`
	Name          string        `json:"name"`
	Owner         string        `json:"owner"`
	StartedAt     time.Time     `json:"started_at"`
	Ended         bool          `json:"ended"`
	Voters        int           `json:"voters"`
	MultipleVotes bool          `json:"multiple_votes"`
	Options       []OptionTally `json:"options"`
}

// VoteResult splits the requested options of one vote command by outcome
type VoteResult struct {
	Poll         string   `json:"poll"`
	Voted        []string `json:"voted"`
	AlreadyVoted []string `json:"already_voted"`
	NotExists    []string `json:"not_exists"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DefaultSettings are the settings every new poll starts with
func DefaultSettings() Settings {
	return Settings{MultipleVotes: true}
}

// NormalizePollName lowercases and trims a poll name for storage and lookup
func NormalizePollName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Channel returns the polls of a channel, nil if the channel has none
func (c PollCollection) Channel(channelID string) ChannelPolls {
	return c[channelID]
}

// Poll looks up a poll by channel and (normalized) name
func (c PollCollection) Poll(channelID, name string) (*Poll, bool) {
	p, ok := c[channelID][NormalizePollName(name)]
	return p, ok && p != nil
}

// Put stores the poll under its name, creating the channel entry if needed
func (c PollCollection) Put(channelID string, p *Poll) {
	polls, ok := c[channelID]
	if !ok {
		polls = make(ChannelPolls)
		c[channelID] = polls
	}
	polls[p.Name] = p
}

// Option finds an option by name, case-insensitively
func (p *Poll) Option(name string) (*Option, bool) {
	for i := range p.Options {
		if strings.EqualFold(p.Options[i].Name, name) {
			return &p.Options[i], true
		}
	}
	return nil, false
}

func (p *Poll) Ended() bool {
	return p.TimeEnd != NotEnded
}

// HasVotedInPoll reports whether the user voted for any option
func (p *Poll) HasVotedInPoll(userID string) bool {
	for _, voter := range p.HasVoted {
		if voter == userID {
			return true
		}
	}
	return false
}

// HasVotedFor reports whether the user already voted for this option
func (o *Option) HasVotedFor(userID string) bool {
	for _, v := range o.Votes {
		if v.User == userID {
			return true
		}
	}
	return false
}

// View builds the tallies for a poll
func (p *Poll) View(channelID string) PollView {
	view := PollView{
		Channel:       channelID,
		Name:          p.Name,
		Owner:         p.Owner,
		StartedAt:     time.UnixMilli(p.TimeStart),
		Ended:         p.Ended(),
		Voters:        len(p.HasVoted),
		MultipleVotes: p.Settings.MultipleVotes,
		Options:       make([]OptionTally, 0, len(p.Options)),
	}
	for _, o := range p.Options {
		view.Options = append(view.Options, OptionTally{Name: o.Name, Votes: len(o.Votes)})
	}
	return view
}
