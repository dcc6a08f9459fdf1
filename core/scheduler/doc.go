package scheduler

// Package scheduler builds observation itineraries for a single observer.
// It greedily packs non-overlapping, buffer-padded flights into the
// observer's window, preferring important flights, short idle gaps and short
// gate walks. The heuristic never backtracks, so the result is deterministic
// but not guaranteed optimal.
