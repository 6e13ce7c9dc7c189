/*
Package engine is the action dispatcher: a pure reducer over the explorer's
state.

	Dispatch(state, action) -> (state', effects)
	Receive(state, event)   -> (state', effects)

Neither function performs I/O. Effects (FetchSearch, FetchDetail,
FetchSummary, CopyText, OpenURL, RecordQuery, Quit) describe what the host
should do; events (SearchCompleted, InputChanged, Resized, Tick, ...)
describe what happened outside.

# Request ordering

Every fetch effect carries a RequestID taken from a single counter in the
state. Each fetch kind remembers the latest id it issued; a completion with
a lower id is dropped without changing anything, whatever order responses
arrive in. A failed search keeps the rows on screen and sets Err.

# Query, sort and page

Any change to the search query, the applied sort or the page produces
exactly one FetchSearch. Sort toggles without reload only change DraftSort,
which the next submit or reload applies.
*/
package engine
