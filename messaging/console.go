// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package messaging

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/danielhkuo/poll-bot/models"
)

const (
	ConsoleChannelID = "console"
	ConsoleUserID    = "local"
)

// Console reads commands from a line-based input and writes replies to out.
// Every line is treated as a message from the same user in the same channel.
type Console struct {
	in         io.Reader
	out        io.Writer
	dispatcher Dispatcher

	mu sync.Mutex
}

func NewConsole(in io.Reader, out io.Writer, d Dispatcher) *Console {
	return &Console{in: in, out: out, dispatcher: d}
}

// Send writes text to the console output
func (c *Console) Send(ctx context.Context, channelID, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.out, text)
	return err
}

// Run handles input lines until the input ends or ctx is done
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				scanErr <- nil
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	n := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("failed to read console input: %w", err)
				}
				return nil
			}
			n++
			msg := models.Message{
				ID:        strconv.Itoa(n),
				ChannelID: ConsoleChannelID,
				UserID:    ConsoleUserID,
				Content:   line,
			}
			handleMessage(ctx, c.dispatcher, c, msg, 0)
		}
	}
}
