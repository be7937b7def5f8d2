// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/danielhkuo/poll-bot/engine"
	"github.com/danielhkuo/poll-bot/models"
	"github.com/danielhkuo/poll-bot/testutil"
)

const channel = "chan-1"

func TestCreatePoll(t *testing.T) {
	eng, s := testutil.SetupTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		pollName    string
		options     []string
		wantErr     error
		wantName    string
		wantOptions []string
	}{
		{
			name:        "valid poll",
			pollName:    "lunch",
			options:     []string{"pizza", "sushi"},
			wantName:    "lunch",
			wantOptions: []string{"pizza", "sushi"},
		},
		{
			name:        "name is lowercased",
			pollName:    "DinnerPlans",
			options:     []string{"Tacos"},
			wantName:    "dinnerplans",
			wantOptions: []string{"Tacos"},
		},
		{
			name:        "no options",
			pollName:    "open-question",
			wantName:    "open-question",
			wantOptions: []string{},
		},
		{
			name:     "empty name rejected",
			pollName: "   ",
			wantErr:  models.ErrInvalidPollName,
		},
		{
			name:     "duplicate option rejected",
			pollName: "dupes",
			options:  []string{"a", "A"},
			wantErr:  models.ErrOptionExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poll, err := eng.CreatePoll(ctx, channel, tt.pollName, "owner-1", tt.options)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreatePoll failed: %v", err)
			}

			stored := testutil.LoadTestPoll(t, s, channel, tt.wantName)
			if diff := cmp.Diff(poll, stored); diff != "" {
				t.Errorf("Stored poll differs (-returned +stored):\n%s", diff)
			}

			if stored.Name != tt.wantName {
				t.Errorf("Expected name %q, got %q", tt.wantName, stored.Name)
			}
			if stored.Owner != "owner-1" {
				t.Errorf("Expected owner owner-1, got %q", stored.Owner)
			}
			if stored.TimeEnd != models.NotEnded {
				t.Errorf("Expected open poll, got time_end %d", stored.TimeEnd)
			}
			if stored.TimeStart != testutil.TestNow.UnixMilli() {
				t.Errorf("Expected start %d, got %d", testutil.TestNow.UnixMilli(), stored.TimeStart)
			}
			if !stored.Settings.MultipleVotes {
				t.Error("Expected multiple votes to be allowed by default")
			}

			var names []string
			for _, o := range stored.Options {
				names = append(names, o.Name)
				if len(o.Votes) != 0 {
					t.Errorf("Option %q should start with no votes", o.Name)
				}
			}
			if diff := cmp.Diff(tt.wantOptions, names, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCreatePoll_AlreadyExists(t *testing.T) {
	eng, s := testutil.SetupTestEngine(t)
	ctx := context.Background()

	if _, err := eng.CreatePoll(ctx, channel, "lunch", "owner-1", []string{"pizza", "sushi"}); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	_, err := eng.CreatePoll(ctx, channel, "LUNCH", "owner-2", []string{"salad"})
	if !errors.Is(err, models.ErrPollExists) {
		t.Fatalf("Expected ErrPollExists, got %v", err)
	}
	if models.NameOf(err) != "lunch" {
		t.Errorf("Expected error to name lunch, got %q", models.NameOf(err))
	}

	stored := testutil.LoadTestPoll(t, s, channel, "lunch")
	if stored.Owner != "owner-1" || len(stored.Options) != 2 {
		t.Errorf("Original poll was modified: %+v", stored)
	}
	if _, ok := stored.Option("salad"); ok {
		t.Error("Option from the rejected poll leaked into the original")
	}
}

func TestCreatePoll_SameNameOtherChannel(t *testing.T) {
	eng, _ := testutil.SetupTestEngine(t)
	ctx := context.Background()

	if _, err := eng.CreatePoll(ctx, "chan-a", "lunch", "owner-1", nil); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}
	if _, err := eng.CreatePoll(ctx, "chan-b", "lunch", "owner-1", nil); err != nil {
		t.Errorf("Poll names should only be unique per channel: %v", err)
	}
}

func TestVote(t *testing.T) {
	eng, s := testutil.SetupTestEngine(t)
	ctx := context.Background()
	testutil.CreateTestPoll(t, s, channel, "lunch", "owner-1", "pizza", "Sushi", "tacos")

	result, err := eng.Vote(ctx, channel, "Lunch", "voter-1", []string{"pizza", "sushi", "burgers"})
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	want := models.VoteResult{
		Poll:      "lunch",
		Voted:     []string{"pizza", "Sushi"},
		NotExists: []string{"burgers"},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("VoteResult mismatch (-want +got):\n%s", diff)
	}

	stored := testutil.LoadTestPoll(t, s, channel, "lunch")
	if diff := cmp.Diff([]string{"voter-1"}, stored.HasVoted); diff != "" {
		t.Errorf("has_voted mismatch (-want +got):\n%s", diff)
	}
	if _, ok := stored.Option("burgers"); ok {
		t.Error("Voting must not create options")
	}
	if len(stored.Options) != 3 {
		t.Errorf("Expected 3 options, got %d", len(stored.Options))
	}

	pizza, _ := stored.Option("pizza")
	if len(pizza.Votes) != 1 || pizza.Votes[0].User != "voter-1" || pizza.Votes[0].Time != testutil.TestNow.UnixMilli() {
		t.Errorf("Unexpected pizza votes: %+v", pizza.Votes)
	}
	tacos, _ := stored.Option("tacos")
	if len(tacos.Votes) != 0 {
		t.Errorf("Expected no tacos votes, got %+v", tacos.Votes)
	}
}

func TestVote_TwiceCountsOnce(t *testing.T) {
	eng, s := testutil.SetupTestEngine(t)
	ctx := context.Background()
	testutil.CreateTestPoll(t, s, channel, "lunch", "owner-1", "pizza", "sushi")

	if _, err := eng.Vote(ctx, channel, "lunch", "voter-1", []string{"pizza"}); err != nil {
		t.Fatalf("First vote failed: %v", err)
	}

	result, err := eng.Vote(ctx, channel, "lunch", "voter-1", []string{"PIZZA", "sushi"})
	if err != nil {
		t.Fatalf("Second vote failed: %v", err)
	}
	if diff := cmp.Diff([]string{"pizza"}, result.AlreadyVoted); diff != "" {
		t.Errorf("AlreadyVoted mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"sushi"}, result.Voted); diff != "" {
		t.Errorf("Voted mismatch (-want +got):\n%s", diff)
	}

	stored := testutil.LoadTestPoll(t, s, channel, "lunch")
	pizza, _ := stored.Option("pizza")
	if len(pizza.Votes) != 1 {
		t.Errorf("Expected 1 pizza vote, got %d", len(pizza.Votes))
	}
	if len(stored.HasVoted) != 1 {
		t.Errorf("Voter should be listed once in has_voted, got %v", stored.HasVoted)
	}
}

func TestVote_SameOptionTwiceInOneCommand(t *testing.T) {
	eng, s := testutil.SetupTestEngine(t)
	testutil.CreateTestPoll(t, s, channel, "lunch", "owner-1", "pizza")

	result, err := eng.Vote(context.Background(), channel, "lunch", "voter-1", []string{"pizza", "pizza"})
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if len(result.Voted) != 1 || len(result.AlreadyVoted) != 1 {
		t.Errorf("Expected one vote and one repeat, got %+v", result)
	}
}

func TestVote_OnlyRepeatsDoesNotRewrite(t *testing.T) {
	eng, s := testutil.SetupTestEngine(t)
	ctx := context.Background()
	testutil.CreateTestPoll(t, s, channel, "lunch", "owner-1", "pizza")

	if _, err := eng.Vote(ctx, channel, "lunch", "voter-1", []string{"pizza"}); err != nil {
		t.Fatal(err)
	}
	before, err := os.Stat(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := eng.Vote(ctx, channel, "lunch", "voter-1", []string{"pizza", "nope"}); err != nil {
		t.Fatal(err)
	}
	after, err := os.Stat(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	if !os.SameFile(before, after) {
		t.Error("Document was rewritten although nothing changed")
	}
}

func TestVote_SingleVotePoll(t *testing.T) {
	eng, s := testutil.SetupTestEngine(t)
	ctx := context.Background()

	poll := testutil.CreateTestPoll(t, s, channel, "captain", "owner-1", "alice", "bob")
	poll.Settings.MultipleVotes = false
	polls, _ := s.Load(ctx)
	polls.Put(channel, poll)
	if err := s.Save(ctx, polls); err != nil {
		t.Fatal(err)
	}

	result, err := eng.Vote(ctx, channel, "captain", "voter-1", []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if diff := cmp.Diff([]string{"alice"}, result.Voted); diff != "" {
		t.Errorf("Voted mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"bob"}, result.AlreadyVoted); diff != "" {
		t.Errorf("AlreadyVoted mismatch (-want +got):\n%s", diff)
	}

	result, err = eng.Vote(ctx, channel, "captain", "voter-1", []string{"bob"})
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if len(result.Voted) != 0 || len(result.AlreadyVoted) != 1 {
		t.Errorf("Second vote in a single-vote poll should be blocked: %+v", result)
	}

	// other voters are unaffected
	result, err = eng.Vote(ctx, channel, "captain", "voter-2", []string{"bob"})
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if len(result.Voted) != 1 {
		t.Errorf("Expected voter-2 to vote, got %+v", result)
	}
}

func TestVote_PollNotFound(t *testing.T) {
	eng, s := testutil.SetupTestEngine(t)
	testutil.CreateTestPoll(t, s, "other-channel", "lunch", "owner-1", "pizza")

	_, err := eng.Vote(context.Background(), channel, "lunch", "voter-1", []string{"pizza"})
	if !errors.Is(err, models.ErrPollNotFound) {
		t.Errorf("Expected ErrPollNotFound, got %v", err)
	}
}

func TestListPolls(t *testing.T) {
	eng, s := testutil.SetupTestEngine(t)
	ctx := context.Background()

	names, err := eng.ListPolls(ctx, channel)
	if err != nil {
		t.Fatalf("ListPolls failed: %v", err)
	}
	if names == nil || len(names) != 0 {
		t.Errorf("Expected empty list, got %v", names)
	}

	testutil.CreateTestPoll(t, s, channel, "zebra", "owner-1")
	testutil.CreateTestPoll(t, s, channel, "apple", "owner-1")
	testutil.CreateTestPoll(t, s, "other-channel", "mango", "owner-1")

	names, err = eng.ListPolls(ctx, channel)
	if err != nil {
		t.Fatalf("ListPolls failed: %v", err)
	}
	if diff := cmp.Diff([]string{"apple", "zebra"}, names); diff != "" {
		t.Errorf("ListPolls mismatch (-want +got):\n%s", diff)
	}
}

func TestListPolls_SkipsNullEntries(t *testing.T) {
	eng, s := testutil.SetupTestEngine(t)
	ctx := context.Background()

	if err := os.WriteFile(s.Path(), []byte(`{"chan-1": {"ghost": null}}`), 0644); err != nil {
		t.Fatalf("Failed to write document: %v", err)
	}
	testutil.CreateTestPoll(t, s, channel, "lunch", "owner-1")

	names, err := eng.ListPolls(ctx, channel)
	if err != nil {
		t.Fatalf("ListPolls failed: %v", err)
	}
	if diff := cmp.Diff([]string{"lunch"}, names); diff != "" {
		t.Errorf("ListPolls mismatch (-want +got):\n%s", diff)
	}

	if _, err := eng.ViewPoll(ctx, channel, "ghost"); !errors.Is(err, models.ErrPollNotFound) {
		t.Errorf("Expected ErrPollNotFound for null entry, got %v", err)
	}
}

func TestViewPoll(t *testing.T) {
	eng, _ := testutil.SetupTestEngine(t)
	ctx := context.Background()

	if _, err := eng.CreatePoll(ctx, channel, "Lunch", "owner-1", []string{"pizza", "sushi"}); err != nil {
		t.Fatal(err)
	}
	for _, voter := range []string{"v1", "v2"} {
		if _, err := eng.Vote(ctx, channel, "lunch", voter, []string{"pizza"}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := eng.Vote(ctx, channel, "lunch", "v3", []string{"sushi", "pizza"}); err != nil {
		t.Fatal(err)
	}

	view, err := eng.ViewPoll(ctx, channel, "LUNCH")
	if err != nil {
		t.Fatalf("ViewPoll failed: %v", err)
	}

	want := models.PollView{
		Channel:       channel,
		Name:          "lunch",
		Owner:         "owner-1",
		StartedAt:     testutil.TestNow,
		Voters:        3,
		MultipleVotes: true,
		Options: []models.OptionTally{
			{Name: "pizza", Votes: 3},
			{Name: "sushi", Votes: 1},
		},
	}
	if !view.StartedAt.Equal(want.StartedAt) {
		t.Errorf("Expected start %v, got %v", want.StartedAt, view.StartedAt)
	}
	view.StartedAt, want.StartedAt = time.Time{}, time.Time{}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Errorf("ViewPoll mismatch (-want +got):\n%s", diff)
	}
}

func TestViewPoll_NotFound(t *testing.T) {
	eng, _ := testutil.SetupTestEngine(t)

	_, err := eng.ViewPoll(context.Background(), channel, "ghost")
	if !errors.Is(err, models.ErrPollNotFound) {
		t.Errorf("Expected ErrPollNotFound, got %v", err)
	}
}

func TestEndPoll_Unimplemented(t *testing.T) {
	eng, s := testutil.SetupTestEngine(t)
	testutil.CreateTestPoll(t, s, channel, "lunch", "owner-1", "pizza")

	err := eng.EndPoll(context.Background(), channel, "lunch", "owner-1")
	if !errors.Is(err, models.ErrUnimplemented) {
		t.Errorf("Expected ErrUnimplemented, got %v", err)
	}

	if testutil.LoadTestPoll(t, s, channel, "lunch").Ended() {
		t.Error("EndPoll must not change the poll")
	}
}

type failingStore struct {
	loadErr, saveErr error
}

func (f failingStore) Load(ctx context.Context) (models.PollCollection, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return models.PollCollection{}, nil
}

func (f failingStore) Save(ctx context.Context, polls models.PollCollection) error {
	return f.saveErr
}

func (f failingStore) Close() error { return nil }

func TestEngine_StoreErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	ctx := context.Background()

	eng := engine.New(failingStore{loadErr: boom})
	if _, err := eng.ListPolls(ctx, channel); !errors.Is(err, boom) {
		t.Errorf("Expected load error to be wrapped, got %v", err)
	}

	eng = engine.New(failingStore{saveErr: boom})
	if _, err := eng.CreatePoll(ctx, channel, "lunch", "owner-1", nil); !errors.Is(err, boom) {
		t.Errorf("Expected save error to be wrapped, got %v", err)
	}
}
