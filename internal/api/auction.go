package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dimaskresna/lelang-bot/internal/model"
)

// Rupiah is an amount in whole rupiah. The API is inconsistent about whether
// amounts arrive as numbers or formatted strings ("1.500.000"), so decoding
// strips everything but digits.
type Rupiah int64

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rupiah) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*r = 0
		return nil
	}

	var n int64
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			continue
		}
		n = n*10 + int64(ch-'0')
	}
	*r = Rupiah(n)
	return nil
}

// AuctionStatus is the slice of the status endpoint the bot cares about.
type AuctionStatus struct {
	Status            string
	ParticipantStatus string
	LotID             string
	LotCode           string
	LotName           string
	LimitPrice        *int64
	BidIncrement      *int64
}

// BidEntry is one row of an auction's bid history, newest first.
type BidEntry struct {
	Amount   int64
	Bidder   string
	Own      bool
	PlacedAt time.Time
}

// The status endpoint wraps its payload twice: a transport envelope around a
// business envelope.
type statusEnvelope struct {
	Data struct {
		Data struct {
			Status struct {
				StatusLelang  string `json:"statusLelang"`
				StatusPeserta string `json:"statusPeserta"`
			} `json:"status"`
			LotLelang struct {
				LotLelangID   string  `json:"lotLelangId"`
				KodeLot       string  `json:"kodeLot"`
				NamaLotLelang string  `json:"namaLotLelang"`
				NilaiLimit    *Rupiah `json:"nilaiLimit"`
				KelipatanBid  *Rupiah `json:"kelipatanBid"`
			} `json:"lotLelang"`
		} `json:"data"`
	} `json:"data"`
}

// GetAuctionStatus fetches the lot and status details for an auction.
func (c *Client) GetAuctionStatus(ctx context.Context, sess model.Session, auctionID string) (*AuctionStatus, error) {
	url := fmt.Sprintf("%s/api/v1/pelaksanaan/%s/status-lelang?dcp=true", c.statusBaseURL, auctionID)

	var env statusEnvelope
	if err := c.get(ctx, url, sess, &env); err != nil {
		return nil, fmt.Errorf("get auction status: %w", err)
	}

	data := env.Data.Data
	status := &AuctionStatus{
		Status:            data.Status.StatusLelang,
		ParticipantStatus: data.Status.StatusPeserta,
		LotID:             data.LotLelang.LotLelangID,
		LotCode:           data.LotLelang.KodeLot,
		LotName:           data.LotLelang.NamaLotLelang,
	}
	if data.LotLelang.NilaiLimit != nil {
		v := int64(*data.LotLelang.NilaiLimit)
		status.LimitPrice = &v
	}
	if data.LotLelang.KelipatanBid != nil {
		v := int64(*data.LotLelang.KelipatanBid)
		status.BidIncrement = &v
	}

	return status, nil
}

// rawBidEntry covers the field-name variants the history endpoint has been
// seen to use.
type rawBidEntry struct {
	BidAmount *Rupiah `json:"bidAmount"`
	Amount    *Rupiah `json:"amount"`
	Nominal   *Rupiah `json:"nominal"`
	Harga     *Rupiah `json:"harga"`

	BidderName      string `json:"bidderName"`
	ParticipantName string `json:"participantName"`
	NamaPeserta     string `json:"namaPeserta"`
	Penawar         string `json:"penawar"`

	BidTime   string `json:"bidTime"`
	CreatedAt string `json:"createdAt"`
	Waktu     string `json:"waktu"`
}

func (r rawBidEntry) toEntry() BidEntry {
	var entry BidEntry

	for _, amount := range []*Rupiah{r.BidAmount, r.Amount, r.Nominal, r.Harga} {
		if amount != nil {
			entry.Amount = int64(*amount)
			break
		}
	}

	for _, name := range []string{r.BidderName, r.ParticipantName, r.NamaPeserta, r.Penawar} {
		if name != "" {
			entry.Bidder = name
			break
		}
	}
	entry.Own = strings.Contains(entry.Bidder, "(Anda)")

	for _, ts := range []string{r.BidTime, r.CreatedAt, r.Waktu} {
		if ts == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			entry.PlacedAt = t
			break
		}
	}

	return entry
}

// GetBidHistory fetches the auction's bid history, newest first. The endpoint
// sometimes nests the array one level deeper; both shapes are accepted.
func (c *Client) GetBidHistory(ctx context.Context, sess model.Session, auctionID string) ([]BidEntry, error) {
	url := fmt.Sprintf("%s/api/v1/pelaksanaan/lelang/%s/riwayat", c.biddingBaseURL, auctionID)

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.get(ctx, url, sess, &env); err != nil {
		return nil, fmt.Errorf("get bid history: %w", err)
	}

	raw := env.Data
	var rows []rawBidEntry
	if err := json.Unmarshal(raw, &rows); err != nil {
		var nested struct {
			Data []rawBidEntry `json:"data"`
		}
		if err := json.Unmarshal(raw, &nested); err != nil {
			return nil, fmt.Errorf("unmarshal bid history: %w", err)
		}
		rows = nested.Data
	}

	entries := make([]BidEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toEntry())
	}
	return entries, nil
}

// OpenBidSession starts a bidding session for the auction. The site requires
// this immediately before every bid submission.
func (c *Client) OpenBidSession(ctx context.Context, sess model.Session) error {
	url := c.biddingBaseURL + "/api/v1/pelaksanaan/lelang/mulai-sesi"
	payload := struct {
		AuctionID string `json:"auctionId"`
	}{AuctionID: sess.AuctionID}

	if _, err := c.post(ctx, url, sess, payload); err != nil {
		return fmt.Errorf("open bid session: %w", err)
	}
	return nil
}

// PlaceBid submits the bid. OpenBidSession must have succeeded first.
func (c *Client) PlaceBid(ctx context.Context, sess model.Session, cmd model.BidCommand) error {
	url := c.biddingBaseURL + "/api/v1/pelaksanaan/lelang/pengajuan-penawaran"
	payload := struct {
		AuctionID string `json:"auctionId"`
		BidAmount int64  `json:"bidAmount"`
		BidTime   string `json:"bidTime"`
		Passkey   string `json:"passkey"`
	}{
		AuctionID: cmd.AuctionID,
		BidAmount: cmd.Amount,
		BidTime:   cmd.RequestedAt.UTC().Format(time.RFC3339),
		Passkey:   cmd.Passkey,
	}

	if _, err := c.post(ctx, url, sess, payload); err != nil {
		return fmt.Errorf("place bid: %w", err)
	}
	return nil
}
