// Package model defines the shared data types of the auction bot.
//
// Conventions:
//   - Prices: int64 rupiah (lelang.go.id bids carry no minor units)
//   - Nullable observations: pointer fields, nil = not observed this tick
//   - Countdowns: display strings in DD:HH:MM:SS form, parsed on demand
package model
