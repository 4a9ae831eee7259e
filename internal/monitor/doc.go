// Package monitor implements the per-auction polling loop.
//
// Each Monitor is a single timeline: fetch, detect, dispatch, re-arm. The
// next timer is only armed after the current tick finishes, so there is
// never more than one in-flight fetch per auction. The polling interval
// tightens as the countdown approaches zero. A Monitor is one-shot: once
// Stopped it stays stopped, and restarting means creating a fresh Monitor
// with a clean baseline.
package monitor
