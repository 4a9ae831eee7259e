package bot

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var passkeyRe = regexp.MustCompile(`^\d{6}$`)

var (
	errBadAuctionID = errors.New("auction id must be a UUID")
	errBadPasskey   = errors.New("passkey must be exactly 6 digits")
	errBadAmount    = errors.New("amount must be a positive number")
)

// parseAuctionID validates a lot UUID as lelang.go.id issues them.
func parseAuctionID(s string) (string, error) {
	s = strings.TrimSpace(s)
	id, err := uuid.Parse(s)
	if err != nil {
		return "", errBadAuctionID
	}
	return id.String(), nil
}

// parsePasskey validates the 6-digit bidding PIN.
func parsePasskey(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !passkeyRe.MatchString(s) {
		return "", errBadPasskey
	}
	return s, nil
}

// parseAmount accepts a rupiah amount as typed by users: "10050000",
// "10.050.000" or "Rp 10.050.000".
func parseAmount(s string) (int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0, errBadAmount
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil || n <= 0 {
		return 0, errBadAmount
	}
	return n, nil
}
