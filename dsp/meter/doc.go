// Package meter hands level readings from the processing path to a UI.
//
// The processing side calls Meter.Observe once per block. Every interval
// blocks the meter fills a Frame (per-node levels, per-channel peak and RMS,
// a mono tap of recent output) and publishes it through a lock-free triple
// buffer, then pokes a one-slot notification channel without blocking. The
// UI side waits on Updates and reads the newest frame with Current.
// Analyzer turns a frame's tap into a magnitude spectrum on the UI side.
package meter
