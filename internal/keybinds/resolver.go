package keybinds

import (
	"time"

	"github.com/studiowebux/crateview/internal/mode"
)

// Outcome is the state of the chord buffer after a key
type Outcome int

const (
	NoMatch Outcome = iota // buffer empty, nothing fired by the incoming key
	Pending                // buffer holds a strict prefix of a longer chord
	Fired                  // buffer empty, at least one action fired
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Fired:
		return "fired"
	}
	return "no_match"
}

// Resolution is the result of feeding one key to the resolver.
//
// Actions may be non-empty even when Outcome is Pending or NoMatch: a chord
// that was waiting for a longer continuation fires before the key that
// interrupted it is resolved on its own. The first Flushed actions come from
// that waiting chord. Stray is set when the incoming key itself matched
// nothing, so input modes can treat it as text.
type Resolution struct {
	Outcome Outcome
	Actions []Action
	Flushed int
	Pending []string
	Stray   bool
}

// Resolver applies the longest-match-with-timeout policy over a Registry
type Resolver struct {
	table   *Registry
	timeout time.Duration
}

// NewResolver creates a resolver. A zero timeout disables the inter-key
// reset; a waiting chord then only fires through Expire.
func NewResolver(table *Registry, timeout time.Duration) *Resolver {
	return &Resolver{table: table, timeout: timeout}
}

// Timeout returns the inter-key timeout
func (r *Resolver) Timeout() time.Duration {
	return r.timeout
}

// Table returns the chord table
func (r *Resolver) Table() *Registry {
	return r.table
}

// Resolve feeds incoming to the pending buffer for mode k. elapsed is the
// time since the previous key.
func (r *Resolver) Resolve(pending []string, incoming string, k mode.Kind, elapsed time.Duration) Resolution {
	var flushed []Action
	if len(pending) > 0 && r.timeout > 0 && elapsed >= r.timeout {
		// the wake for this buffer has not been delivered yet
		if action, ok := r.table.Lookup(k, pending); ok {
			flushed = append(flushed, action)
		}
		pending = nil
	}

	res := r.resolve(pending, NormalizeToken(incoming), k)
	return res.prepend(flushed)
}

func (r *Resolver) resolve(pending []string, incoming string, k mode.Kind) Resolution {
	seq := make([]string, 0, len(pending)+1)
	seq = append(seq, pending...)
	seq = append(seq, incoming)

	action, exact := r.table.Lookup(k, seq)
	longer := r.table.HasLongerPrefix(k, seq)

	switch {
	case exact && !longer:
		return Resolution{Outcome: Fired, Actions: []Action{action}}
	case longer:
		return Resolution{Outcome: Pending, Pending: seq}
	}

	if len(pending) == 0 {
		return Resolution{Outcome: NoMatch, Stray: true}
	}

	// pending cannot be extended by incoming: settle it, then start over
	var flushed []Action
	if action, ok := r.table.Lookup(k, pending); ok {
		flushed = append(flushed, action)
	}
	return r.resolve(nil, incoming, k).prepend(flushed)
}

// Expire is called when the inter-key timeout elapses with a non-empty
// buffer. An exact match that was waiting for a longer chord fires now.
func (r *Resolver) Expire(pending []string, k mode.Kind) Resolution {
	if len(pending) == 0 {
		return Resolution{Outcome: NoMatch}
	}
	if action, ok := r.table.Lookup(k, pending); ok {
		return Resolution{Outcome: Fired, Actions: []Action{action}}
	}
	return Resolution{Outcome: NoMatch}
}

func (res Resolution) prepend(actions []Action) Resolution {
	if len(actions) == 0 {
		return res
	}
	res.Actions = append(actions, res.Actions...)
	res.Flushed += len(actions)
	if res.Outcome == NoMatch {
		res.Outcome = Fired
	}
	return res
}

// Chords holds the pending buffer between key events. The host loop owns
// one and feeds it every key; Seq tags the wake scheduled for a pending
// buffer so that wakes made stale by later keys are ignored.
type Chords struct {
	pending []string
	mode    mode.Kind
	last    time.Time
	seq     uint64
}

// Feed resolves key in mode k at time now
func (c *Chords) Feed(r *Resolver, k mode.Kind, key string, now time.Time) Resolution {
	if k != c.mode {
		c.pending = nil
		c.mode = k
	}

	res := r.Resolve(c.pending, key, k, now.Sub(c.last))
	c.pending = res.Pending
	c.last = now
	c.seq++
	return res
}

// Expire handles the wake tagged seq. Wakes from earlier keys do nothing.
func (c *Chords) Expire(r *Resolver, seq uint64) Resolution {
	if seq != c.seq || len(c.pending) == 0 {
		return Resolution{Outcome: NoMatch}
	}
	res := r.Expire(c.pending, c.mode)
	c.pending = nil
	return res
}

// Seq identifies the most recent key
func (c *Chords) Seq() uint64 {
	return c.seq
}

// Pending returns the buffered tokens
func (c *Chords) Pending() []string {
	return c.pending
}

// Reset drops the buffer
func (c *Chords) Reset() {
	c.pending = nil
	c.seq++
}
