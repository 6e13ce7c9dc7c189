/*
Package keybinds maps key chords to actions per interaction mode.

# Overview

A chord is a space separated sequence of key tokens ("g g", "ctrl+c").
Tokens are the names bubbletea reports for key presses; the space bar is
spelled "space". Each mode owns a binding context, the two picker variants
also share the "picker" context, and every mode falls back to "global":

	picker_show_info -> picker -> global
	search           -> global

The first context in the chain that binds an exact chord wins.

# Resolution

Resolver applies a longest-match-with-timeout policy:

  - the incoming key is appended to the pending buffer
  - an exact match that no longer chord extends fires immediately
  - a strict prefix of a longer chord stays pending
  - a sequence that matches nothing is dropped and the key is retried alone

When a chord is both bound and the start of a longer chord, the resolver
waits. If the next key does not extend it, or the inter-key timeout
elapses (Expire), the shorter chord fires then.

Chords keeps the pending buffer between key events for the host loop. Its
sequence number tags the wake scheduled for a pending buffer so that wakes
made stale by later keys are ignored.

# Configuration

User overrides arrive as a Config section:

	key_bindings:
	  picker:
	    "g g": scroll_top
	    "ctrl+d": increment_page
	    "x": unbound
	  search:
	    "ctrl+s": toggle_sort_by:forward

Actions are written as "name" or "name:args". switch_mode takes a mode name,
toggle_sort_by takes forward or backward and an optional reload.

# Validation

Validator reports:
  - reserved keys (ctrl+c) rebound
  - chords that also start a longer chord and therefore wait for the timeout
  - printable keys bound inside the search and filter prompts
  - mode bindings shadowing global ones
*/
package keybinds
