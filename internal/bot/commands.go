package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dimaskresna/lelang-bot/internal/model"
	"github.com/dimaskresna/lelang-bot/internal/notify"
)

const helpText = `Perintah yang tersedia:

/settoken <token> - simpan bearer token
/setcookies <cookies> - simpan cookie login
/setauction <uuid> - pilih lot lelang
/setpasskey <pin> - simpan PIN bidding (6 digit)
/status - lihat kondisi lelang dan konfigurasi
/monitor - mulai memantau lelang
/stopmonitor - hentikan pemantauan
/bid [jumlah] - kirim penawaran (tanpa jumlah: harga tertinggi + kelipatan)
/logout - hapus kredensial`

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())

	b.logger.Debug("command received", "chat_id", chatID, "command", msg.Command())

	switch msg.Command() {
	case "start", "help":
		b.notifier.Text(chatID, helpText)

	case "settoken":
		if args == "" {
			b.notifier.Text(chatID, "Format: /settoken <token>")
			return
		}
		b.store.Update(chatID, func(sess *model.Session) {
			sess.BearerToken = args
		})
		b.notifier.Text(chatID, "✅ Token tersimpan.")

	case "setcookies":
		if args == "" {
			b.notifier.Text(chatID, "Format: /setcookies <cookies>")
			return
		}
		b.store.Update(chatID, func(sess *model.Session) {
			sess.CookieHeader = args
		})
		b.notifier.Text(chatID, "✅ Cookies tersimpan.")

	case "setauction":
		id, err := parseAuctionID(args)
		if err != nil {
			b.notifier.Text(chatID, "❌ "+err.Error())
			return
		}
		b.store.Update(chatID, func(sess *model.Session) {
			sess.AuctionID = id
			// Fresh lot, stale price knowledge.
			sess.LastKnownHighBid = nil
			sess.LimitPrice = nil
			sess.BidIncrement = nil
		})
		b.notifier.Text(chatID, fmt.Sprintf("✅ Lot lelang diatur: %s", id))

	case "setpasskey":
		pin, err := parsePasskey(args)
		if err != nil {
			b.notifier.Text(chatID, "❌ "+err.Error())
			return
		}
		b.store.Update(chatID, func(sess *model.Session) {
			sess.Passkey = pin
		})
		b.notifier.Text(chatID, "✅ Passkey tersimpan.")

	case "status":
		b.notifier.Text(chatID, b.statusText(ctx, chatID))

	case "monitor":
		if err := b.startMonitoring(ctx, chatID); err != nil {
			b.notifier.Text(chatID, "❌ "+err.Error())
			return
		}
		b.announceMonitoring(chatID)

	case "stopmonitor":
		if !b.monitors.Stop(chatID) {
			b.notifier.Text(chatID, "Tidak ada monitoring yang berjalan.")
		}

	case "bid":
		var explicit *int64
		if args != "" {
			amount, err := parseAmount(args)
			if err != nil {
				b.notifier.Text(chatID, "❌ "+err.Error())
				return
			}
			explicit = &amount
		}
		if err := b.submitBid(ctx, chatID, explicit); err != nil {
			b.notifier.Text(chatID, "❌ "+err.Error())
		}

	case "logout":
		b.monitors.Stop(chatID)
		b.store.Clear(chatID)
		b.notifier.Text(chatID, "🔒 Kredensial dihapus.")

	default:
		b.notifier.Text(chatID, "Perintah tidak dikenal. Gunakan /help.")
	}
}

// statusText summarizes the chat's configuration, and when possible the live
// auction state.
func (b *Bot) statusText(ctx context.Context, chatID int64) string {
	sess, ok := b.store.Get(chatID)
	if !ok {
		return "Belum ada konfigurasi. Mulai dengan /setauction."
	}

	var sb strings.Builder
	sb.WriteString("📦 Status\n\n")
	fmt.Fprintf(&sb, "Lot: %s\n", orUnset(sess.AuctionID))
	fmt.Fprintf(&sb, "Token: %s\n", setOrNot(sess.BearerToken != ""))
	fmt.Fprintf(&sb, "Cookies: %s\n", setOrNot(sess.CookieHeader != ""))
	fmt.Fprintf(&sb, "Passkey: %s\n", setOrNot(sess.Passkey != ""))
	fmt.Fprintf(&sb, "Monitoring: %s\n", onOrOff(sess.MonitoringActive))

	if sess.AuctionID == "" || !sess.HasCredentials() {
		return sb.String()
	}

	snap, err := b.client.FetchSnapshot(ctx, sess, sess.AuctionID)
	if err != nil {
		fmt.Fprintf(&sb, "\n⚠️ Gagal mengambil data lelang: %v", err)
		return sb.String()
	}

	sb.WriteString("\n")
	if snap.LotCode != "" {
		fmt.Fprintf(&sb, "Kode lot: %s\n", snap.LotCode)
	}
	if snap.Status != "" {
		fmt.Fprintf(&sb, "Status lelang: %s\n", snap.Status)
	}
	if snap.CurrentPrice != nil {
		own := ""
		if snap.IsOwnBid {
			own = " (Anda)"
		}
		fmt.Fprintf(&sb, "Harga tertinggi: %s%s\n", notify.FormatRupiah(*snap.CurrentPrice), own)
	}
	if snap.LimitPrice != nil {
		fmt.Fprintf(&sb, "Nilai limit: %s\n", notify.FormatRupiah(*snap.LimitPrice))
	}
	if snap.BidIncrement != nil {
		fmt.Fprintf(&sb, "Kelipatan bid: %s\n", notify.FormatRupiah(*snap.BidIncrement))
	}
	if snap.Countdown != "" {
		fmt.Fprintf(&sb, "Sisa waktu: %s\n", snap.Countdown)
	}
	if !snap.IsLoggedIn {
		sb.WriteString("\n🔒 Sesi login sudah berakhir.")
	}
	return sb.String()
}

func orUnset(s string) string {
	if s == "" {
		return "belum diatur"
	}
	return s
}

func setOrNot(set bool) string {
	if set {
		return "✅"
	}
	return "❌"
}

func onOrOff(on bool) string {
	if on {
		return "aktif"
	}
	return "nonaktif"
}
