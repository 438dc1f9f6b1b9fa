package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"habit-bot/internal/domain"

	"github.com/fatih/color"
)

// Notifier delivers a message to one user.
type Notifier interface {
	Send(ctx context.Context, user domain.UserID, msg Message) error
}

// Console prints messages to a terminal, one block per message.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole creates a console notifier writing to w. A nil w means color.Output.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = color.Output
	}
	return &Console{out: w}
}

// Send implements Notifier.
func (c *Console) Send(ctx context.Context, user domain.UserID, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	to := color.New(color.Faint)
	title := color.New(color.Bold)
	data := color.New(color.FgHiYellow, color.Faint)

	_, _ = to.Fprintf(c.out, "to %d\n", user)
	_, _ = title.Fprintln(c.out, msg.Text)
	for _, row := range msg.Keyboard {
		for _, b := range row {
			_, _ = fmt.Fprintf(c.out, "  [%s] ", b.Text)
			_, _ = data.Fprintln(c.out, b.Data)
		}
	}
	_, _ = fmt.Fprintln(c.out)
	return nil
}

// Sent is one message captured by a Recorder.
type Sent struct {
	User    domain.UserID
	Message Message
}

// Recorder keeps every message instead of delivering it.
type Recorder struct {
	mu   sync.Mutex
	sent []Sent
	err  error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Send implements Notifier.
func (r *Recorder) Send(_ context.Context, user domain.UserID, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, Sent{User: user, Message: msg})
	return nil
}

// FailWith makes every later Send return err. A nil err restores delivery.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Sent returns the captured messages in order.
func (r *Recorder) Sent() []Sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sent, len(r.sent))
	copy(out, r.sent)
	return out
}

// SentTo returns the captured messages for one user.
func (r *Recorder) SentTo(user domain.UserID) []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Message
	for _, s := range r.sent {
		if s.User == user {
			out = append(out, s.Message)
		}
	}
	return out
}
