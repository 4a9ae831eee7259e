package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/dimaskresna/lelang-bot/internal/model"
)

// FormatRupiah renders an amount with Indonesian thousand separators,
// e.g. 10050000 -> "Rp 10.050.000".
func FormatRupiah(amount int64) string {
	if amount < 0 {
		return "-" + FormatRupiah(-amount)
	}

	s := fmt.Sprintf("%d", amount)
	var b strings.Builder
	b.WriteString("Rp ")
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// EventText renders an event as a Telegram message body.
func EventText(ev model.Event) string {
	switch e := ev.(type) {
	case model.NewHigherBid:
		var b strings.Builder
		b.WriteString("🔔 Penawaran baru!\n")
		if e.LotCode != "" {
			fmt.Fprintf(&b, "Lot: %s\n", e.LotCode)
		}
		fmt.Fprintf(&b, "Harga: %s", FormatRupiah(e.Price))
		if e.Rise > 0 {
			fmt.Fprintf(&b, " (naik %s)", FormatRupiah(e.Rise))
		}
		return b.String()

	case model.Outbid:
		return fmt.Sprintf("⚠️ Anda terlewati!\nHarga tertinggi sekarang: %s", FormatRupiah(e.Price))

	case model.EndgameApproaching:
		display := e.Display
		if display == "" {
			display = EndgameDisplay(e.Remaining)
		}
		return fmt.Sprintf("⏰ Lelang hampir berakhir!\nSisa waktu: %s", display)

	case model.SessionExpired:
		return "🔒 Sesi Anda berakhir. Silakan login ulang lalu kirim /settoken dan /setcookies lagi."

	case model.AuctionEnded:
		return "🏁 Lelang telah berakhir."

	default:
		return ""
	}
}

// BidResultText renders a bid outcome.
func BidResultText(res model.BidResult) string {
	if res.Success {
		return fmt.Sprintf("✅ Bid terkirim: %s", FormatRupiah(res.Amount))
	}
	return fmt.Sprintf("❌ Bid gagal: %s", res.Error)
}

// StoppedText renders a monitoring-stopped notice.
func StoppedText(reason string) string {
	return fmt.Sprintf("🛑 Monitoring dihentikan: %s", reason)
}

// EndgameDisplay formats a remaining duration for countdown alerts that
// carry no page display string, e.g. "9m30s".
func EndgameDisplay(remaining time.Duration) string {
	return remaining.Round(time.Second).String()
}
