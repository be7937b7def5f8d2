// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/poll-bot/cliparse"
	"github.com/danielhkuo/poll-bot/engine"
	"github.com/danielhkuo/poll-bot/models"
	"github.com/danielhkuo/poll-bot/store"
)

// TestNow is the fixed clock used by test engines
var TestNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

// SetupTestStore creates an empty file store in a temp directory
func SetupTestStore(t *testing.T) *store.FileStore {
	t.Helper()
	return store.NewFileStore(filepath.Join(t.TempDir(), cliparse.DefaultPollsFile))
}

// SetupTestEngine returns an engine over a fresh file store with a fixed clock
func SetupTestEngine(t *testing.T) (*engine.Engine, *store.FileStore) {
	t.Helper()
	s := SetupTestStore(t)
	return engine.New(s, engine.WithClock(func() time.Time { return TestNow })), s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Platform:      cliparse.PlatformConsole,
		CommandPrefix: "!",
		StoreType:     cliparse.StoreFile,
		StoreURL:      cliparse.DefaultPollsFile,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// CreateTestPoll writes a poll straight into the store and returns it
func CreateTestPoll(t *testing.T, s store.Store, channelID, name, owner string, options ...string) *models.Poll {
	t.Helper()
	ctx := context.Background()

	polls, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Failed to load polls: %v", err)
	}

	poll := &models.Poll{
		Name:      name,
		Options:   []models.Option{},
		TimeStart: TestNow.UnixMilli(),
		TimeEnd:   models.NotEnded,
		Owner:     owner,
		Settings:  models.DefaultSettings(),
		HasVoted:  []string{},
	}
	for _, opt := range options {
		poll.Options = append(poll.Options, models.Option{
			Name:        opt,
			Votes:       []models.Vote{},
			TimeCreated: TestNow.UnixMilli(),
		})
	}
	polls.Put(channelID, poll)

	if err := s.Save(ctx, polls); err != nil {
		t.Fatalf("Failed to save test poll: %v", err)
	}
	return poll
}

// LoadTestPoll reads a poll back from the store
func LoadTestPoll(t *testing.T, s store.Store, channelID, name string) *models.Poll {
	t.Helper()

	polls, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Failed to load polls: %v", err)
	}
	poll, ok := polls.Poll(channelID, name)
	if !ok {
		t.Fatalf("Poll %q not found in channel %q", name, channelID)
	}
	return poll
}

// SentMessage is one reply captured by RecordingSender
type SentMessage struct {
	ChannelID string
	Text      string
}

// RecordingSender captures replies instead of sending them
type RecordingSender struct {
	mu   sync.Mutex
	Sent []SentMessage
	Err  error
}

func (r *RecordingSender) Send(ctx context.Context, channelID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Sent = append(r.Sent, SentMessage{ChannelID: channelID, Text: text})
	return nil
}

func (r *RecordingSender) Messages() []SentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SentMessage(nil), r.Sent...)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
