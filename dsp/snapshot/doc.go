// Package snapshot holds the immutable routing configuration read by the
// processing path and the plumbing that hands it over.
//
// A Snapshot bundles the active mode, the graphs of every mode, effect
// parameters and flags. The configuration side builds one, compiles it and
// publishes it through a Store; the processing side loads the current
// pointer once per block and never sees a partially updated configuration.
// Reset requests travel separately through a ResetQueue.
package snapshot
