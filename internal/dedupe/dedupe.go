package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent requests for the same save slot. Only one load runs for a given
// slot while other callers wait for its result.

import "golang.org/x/sync/singleflight"

// LoadGroup deduplicates save slot loads keyed by the canonical slot key
// (see keys.SlotKey).
var LoadGroup singleflight.Group
