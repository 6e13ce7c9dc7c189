package keybinds

import (
	"testing"
	"time"

	"github.com/studiowebux/crateview/internal/mode"
)

const testTimeout = 500 * time.Millisecond

func newTestResolver(t *testing.T, bindings map[string]Action) *Resolver {
	t.Helper()
	r := NewRegistry()
	for chord, action := range bindings {
		r.Register(ContextFor(mode.PickerHideInfo), chord, action)
	}
	return NewResolver(r, testTimeout)
}

func TestResolveSingleKey(t *testing.T) {
	res := newTestResolver(t, map[string]Action{"j": Do(ActionScrollDown)})

	got := res.Resolve(nil, "j", mode.PickerHideInfo, 0)
	if got.Outcome != Fired {
		t.Fatalf("Outcome = %v, want %v", got.Outcome, Fired)
	}
	if len(got.Actions) != 1 || got.Actions[0] != Do(ActionScrollDown) {
		t.Errorf("Actions = %v, want [scroll_down]", got.Actions)
	}
	if len(got.Pending) != 0 {
		t.Errorf("Pending = %v, want empty", got.Pending)
	}
}

func TestResolveChordWithinTimeout(t *testing.T) {
	res := newTestResolver(t, map[string]Action{"g g": Do(ActionScrollTop)})

	first := res.Resolve(nil, "g", mode.PickerHideInfo, 0)
	if first.Outcome != Pending {
		t.Fatalf("first g Outcome = %v, want %v", first.Outcome, Pending)
	}
	if len(first.Actions) != 0 {
		t.Errorf("first g fired %v", first.Actions)
	}

	second := res.Resolve(first.Pending, "g", mode.PickerHideInfo, 100*time.Millisecond)
	if second.Outcome != Fired {
		t.Fatalf("second g Outcome = %v, want %v", second.Outcome, Fired)
	}
	if len(second.Actions) != 1 || second.Actions[0] != Do(ActionScrollTop) {
		t.Errorf("Actions = %v, want exactly [scroll_top]", second.Actions)
	}
	if len(second.Pending) != 0 {
		t.Errorf("Pending = %v, want empty", second.Pending)
	}
}

func TestResolveChordAfterTimeout(t *testing.T) {
	res := newTestResolver(t, map[string]Action{"g g": Do(ActionScrollTop)})

	first := res.Resolve(nil, "g", mode.PickerHideInfo, 0)
	second := res.Resolve(first.Pending, "g", mode.PickerHideInfo, testTimeout)

	if second.Outcome != Pending {
		t.Errorf("Outcome = %v, want %v (fresh chord start)", second.Outcome, Pending)
	}
	if len(second.Actions) != 0 {
		t.Errorf("timed out prefix fired %v", second.Actions)
	}
}

func TestResolveStrayKeys(t *testing.T) {
	res := newTestResolver(t, map[string]Action{
		"g g": Do(ActionScrollTop),
		"j":   Do(ActionScrollDown),
	})

	tests := []struct {
		name        string
		keys        []string
		wantActions []Action
	}{
		{"unbound key", []string{"x"}, nil},
		{"several unbound keys", []string{"x", "y", "z"}, nil},
		{"prefix then unbound", []string{"g", "x"}, nil},
		{"prefix then bound", []string{"g", "j"}, []Action{Do(ActionScrollDown)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pending []string
			var fired []Action
			var last Resolution
			for _, key := range tt.keys {
				last = res.Resolve(pending, key, mode.PickerHideInfo, 0)
				pending = last.Pending
				fired = append(fired, last.Actions...)
			}

			if len(pending) != 0 {
				t.Errorf("Pending = %v, want empty", pending)
			}
			if len(fired) != len(tt.wantActions) {
				t.Fatalf("fired %v, want %v", fired, tt.wantActions)
			}
			for i := range fired {
				if fired[i] != tt.wantActions[i] {
					t.Errorf("fired[%d] = %v, want %v", i, fired[i], tt.wantActions[i])
				}
			}
		})
	}
}

func TestResolveStrayFlag(t *testing.T) {
	res := newTestResolver(t, map[string]Action{"j": Do(ActionScrollDown)})

	if got := res.Resolve(nil, "x", mode.PickerHideInfo, 0); !got.Stray || got.Outcome != NoMatch {
		t.Errorf("unbound key: Outcome = %v, Stray = %v; want no_match, true", got.Outcome, got.Stray)
	}
	if got := res.Resolve(nil, "j", mode.PickerHideInfo, 0); got.Stray {
		t.Error("bound key reported as stray")
	}
}

func TestResolveOverlapWaitsForLongerChord(t *testing.T) {
	res := newTestResolver(t, map[string]Action{
		"g":   SwitchMode(mode.Help),
		"g g": Do(ActionScrollTop),
	})

	first := res.Resolve(nil, "g", mode.PickerHideInfo, 0)
	if first.Outcome != Pending || len(first.Actions) != 0 {
		t.Fatalf("first g = %+v, want pending without actions", first)
	}

	second := res.Resolve(first.Pending, "g", mode.PickerHideInfo, 0)
	if len(second.Actions) != 1 || second.Actions[0] != Do(ActionScrollTop) {
		t.Errorf("g g fired %v, want [scroll_top]", second.Actions)
	}
}

func TestExpireFiresShorterChord(t *testing.T) {
	res := newTestResolver(t, map[string]Action{
		"g":   SwitchMode(mode.Help),
		"g g": Do(ActionScrollTop),
		"j":   Do(ActionScrollDown),
	})

	first := res.Resolve(nil, "g", mode.PickerHideInfo, 0)
	expired := res.Expire(first.Pending, mode.PickerHideInfo)

	if expired.Outcome != Fired {
		t.Fatalf("Outcome = %v, want %v", expired.Outcome, Fired)
	}
	if len(expired.Actions) != 1 || expired.Actions[0] != SwitchMode(mode.Help) {
		t.Errorf("Actions = %v, want [switch_mode:help]", expired.Actions)
	}

	next := res.Resolve(expired.Pending, "j", mode.PickerHideInfo, 0)
	if len(next.Actions) != 1 || next.Actions[0] != Do(ActionScrollDown) {
		t.Errorf("key after expiry fired %v, want [scroll_down]", next.Actions)
	}
}

func TestExpireUnboundPrefix(t *testing.T) {
	res := newTestResolver(t, map[string]Action{"g g": Do(ActionScrollTop)})

	first := res.Resolve(nil, "g", mode.PickerHideInfo, 0)
	expired := res.Expire(first.Pending, mode.PickerHideInfo)
	if expired.Outcome != NoMatch || len(expired.Actions) != 0 {
		t.Errorf("Expire() = %+v, want no_match", expired)
	}
}

func TestResolveInterruptedOverlapFiresShorter(t *testing.T) {
	res := newTestResolver(t, map[string]Action{
		"g":   SwitchMode(mode.Help),
		"g g": Do(ActionScrollTop),
		"j":   Do(ActionScrollDown),
	})

	first := res.Resolve(nil, "g", mode.PickerHideInfo, 0)
	got := res.Resolve(first.Pending, "j", mode.PickerHideInfo, 0)

	want := []Action{SwitchMode(mode.Help), Do(ActionScrollDown)}
	if len(got.Actions) != len(want) {
		t.Fatalf("Actions = %v, want %v", got.Actions, want)
	}
	for i := range want {
		if got.Actions[i] != want[i] {
			t.Errorf("Actions[%d] = %v, want %v", i, got.Actions[i], want[i])
		}
	}
	if got.Flushed != 1 {
		t.Errorf("Flushed = %d, want 1 (only the waiting chord)", got.Flushed)
	}
}

func TestChordsExpiredChordThenFreshKey(t *testing.T) {
	table := NewRegistry()
	table.Register(ContextFor(mode.Summary), "g", SwitchMode(mode.Help))
	table.Register(ContextFor(mode.Summary), "g g", Do(ActionScrollTop))
	table.Register(ContextFor(mode.Summary), "j", Do(ActionScrollDown))
	res := NewResolver(table, testTimeout)

	var c Chords
	now := time.Now()

	got := c.Feed(res, mode.Summary, "g", now)
	if got.Outcome != Pending {
		t.Fatalf("Feed(g) Outcome = %v, want %v", got.Outcome, Pending)
	}
	wake := c.Seq()

	expired := c.Expire(res, wake)
	if len(expired.Actions) != 1 || expired.Actions[0] != SwitchMode(mode.Help) {
		t.Fatalf("Expire() fired %v, want [switch_mode:help]", expired.Actions)
	}
	if len(c.Pending()) != 0 {
		t.Errorf("Pending() = %v after expiry", c.Pending())
	}

	got = c.Feed(res, mode.Summary, "j", now.Add(2*testTimeout))
	if len(got.Actions) != 1 || got.Actions[0] != Do(ActionScrollDown) {
		t.Errorf("Feed(j) fired %v, want [scroll_down]", got.Actions)
	}
}

func TestChordsStaleWakeIgnored(t *testing.T) {
	res := newTestResolver(t, map[string]Action{
		"g":     SwitchMode(mode.Help),
		"g g":   Do(ActionScrollTop),
		"g g x": Do(ActionQuit),
	})

	var c Chords
	now := time.Now()
	c.Feed(res, mode.PickerHideInfo, "g", now)
	stale := c.Seq()
	c.Feed(res, mode.PickerHideInfo, "g", now.Add(10*time.Millisecond))

	if got := c.Expire(res, stale); got.Outcome != NoMatch || len(got.Actions) != 0 {
		t.Errorf("stale Expire() = %+v, want no_match", got)
	}
	if len(c.Pending()) != 2 {
		t.Errorf("Pending() = %v, want [g g]", c.Pending())
	}
}

func TestChordsModeChangeResets(t *testing.T) {
	table := NewRegistry()
	table.Register(ContextPicker, "g g", Do(ActionScrollTop))
	table.Register(ContextFor(mode.Help), "g", Do(ActionSwitchToLastMode))
	res := NewResolver(table, testTimeout)

	var c Chords
	now := time.Now()
	c.Feed(res, mode.PickerHideInfo, "g", now)

	got := c.Feed(res, mode.Help, "g", now)
	if len(got.Actions) != 1 || got.Actions[0] != Do(ActionSwitchToLastMode) {
		t.Errorf("Feed in new mode fired %v, want [switch_to_last_mode]", got.Actions)
	}
}

func TestChordsLateKeyFlushesWaitingChord(t *testing.T) {
	res := newTestResolver(t, map[string]Action{
		"g":   SwitchMode(mode.Help),
		"g g": Do(ActionScrollTop),
	})

	var c Chords
	now := time.Now()
	c.Feed(res, mode.PickerHideInfo, "g", now)

	// the wake never arrived; the next key comes after the timeout
	got := c.Feed(res, mode.PickerHideInfo, "g", now.Add(testTimeout+time.Millisecond))
	if len(got.Actions) != 1 || got.Actions[0] != SwitchMode(mode.Help) {
		t.Errorf("fired %v, want [switch_mode:help]", got.Actions)
	}
	if got.Outcome != Pending || len(got.Pending) != 1 {
		t.Errorf("Outcome = %v, Pending = %v; want pending [g]", got.Outcome, got.Pending)
	}
}

func TestChordsResetDropsPendingWake(t *testing.T) {
	res := newTestResolver(t, map[string]Action{
		"g":   SwitchMode(mode.Help),
		"g g": Do(ActionScrollTop),
	})

	var c Chords
	c.Feed(res, mode.PickerHideInfo, "g", time.Now())
	wake := c.Seq()
	c.Reset()

	if len(c.Pending()) != 0 {
		t.Errorf("Pending() = %v after Reset", c.Pending())
	}
	if got := c.Expire(res, wake); len(got.Actions) != 0 {
		t.Errorf("Expire() after Reset fired %v", got.Actions)
	}
}
