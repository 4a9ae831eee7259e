// Package detect compares consecutive auction snapshots and emits domain
// events. Detection is a pure function: no I/O, no clock, no state beyond
// the two snapshots handed in.
package detect
