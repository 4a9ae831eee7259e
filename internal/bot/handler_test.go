package bot

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dimaskresna/lelang-bot/internal/api"
	"github.com/dimaskresna/lelang-bot/internal/feed"
	"github.com/dimaskresna/lelang-bot/internal/model"
	"github.com/dimaskresna/lelang-bot/internal/monitor"
	"github.com/dimaskresna/lelang-bot/internal/notify"
	"github.com/dimaskresna/lelang-bot/internal/session"
)

const testAuctionID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg.Text)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func testBot(client *api.Client, cache *feed.Cache) (*Bot, *fakeSender) {
	sender := &fakeSender{}
	b := New(Config{FeedMaxAge: time.Minute}, nil, Options{
		Store:    session.NewStore(),
		Monitors: monitor.NewManager(monitor.Config{}, nil),
		Client:   client,
		Notifier: notify.NewTelegram(sender, nil),
		Cache:    cache,
	})
	return b, sender
}

func TestFetcher_PrefersFreshFeedSnapshot(t *testing.T) {
	cache := feed.NewCache()
	b, _ := testBot(nil, cache)
	b.store.Update(1, func(s *model.Session) {
		s.AuctionID = testAuctionID
		s.BearerToken = "tok"
	})

	price := int64(5_000_000)
	cache.Put(1, model.Snapshot{
		AuctionID:    testAuctionID,
		CurrentPrice: &price,
		Countdown:    "00:00:04:00",
		IsLoggedIn:   true,
		CapturedAt:   time.Now(),
	})

	snap, err := b.fetcherFor(1).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if snap.CurrentPrice == nil || *snap.CurrentPrice != price {
		t.Errorf("CurrentPrice = %v, want the pushed snapshot", snap.CurrentPrice)
	}
	if snap.Countdown != "00:00:04:00" {
		t.Errorf("Countdown = %q, want the pushed value", snap.Countdown)
	}
}

func TestFetcher_IgnoresFeedForOtherAuction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "status-lelang"):
			io.WriteString(w, `{"data":{"data":{"status":{"statusLelang":"Sedang Berlangsung"},"lotLelang":{"kodeLot":"L-1"}}}}`)
		case strings.Contains(r.URL.Path, "riwayat"):
			io.WriteString(w, `{"data":[{"bidAmount":7000000,"bidderName":"Peserta 3"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cache := feed.NewCache()
	b, _ := testBot(api.NewClient(srv.URL, srv.URL), cache)
	b.store.Update(1, func(s *model.Session) {
		s.AuctionID = testAuctionID
		s.BearerToken = "tok"
	})

	// The extension is watching some other lot; its pushes must not leak in.
	cache.Put(1, model.Snapshot{
		AuctionID:  "00000000-0000-0000-0000-000000000001",
		IsLoggedIn: true,
		CapturedAt: time.Now(),
	})

	snap, err := b.fetcherFor(1).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if snap.CurrentPrice == nil || *snap.CurrentPrice != 7_000_000 {
		t.Errorf("CurrentPrice = %v, want the API value", snap.CurrentPrice)
	}
}

func TestFetcher_IgnoresUntaggedFeedSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "status-lelang"):
			io.WriteString(w, `{"data":{"data":{"status":{"statusLelang":"Sedang Berlangsung"},"lotLelang":{"kodeLot":"L-1"}}}}`)
		case strings.Contains(r.URL.Path, "riwayat"):
			io.WriteString(w, `{"data":[{"bidAmount":9000000,"bidderName":"Peserta 5"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cache := feed.NewCache()
	b, _ := testBot(api.NewClient(srv.URL, srv.URL), cache)
	b.store.Update(1, func(s *model.Session) {
		s.AuctionID = testAuctionID
		s.BearerToken = "tok"
	})

	// A push that never identified its lot cannot stand in for the API.
	pushed := int64(1_000_000)
	cache.Put(1, model.Snapshot{
		CurrentPrice: &pushed,
		IsLoggedIn:   true,
		CapturedAt:   time.Now(),
	})

	snap, err := b.fetcherFor(1).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if snap.CurrentPrice == nil || *snap.CurrentPrice != 9_000_000 {
		t.Errorf("CurrentPrice = %v, want the API value", snap.CurrentPrice)
	}
}

func TestFetcher_NoAuctionConfigured(t *testing.T) {
	b, _ := testBot(nil, nil)
	if _, err := b.fetcherFor(1).Fetch(context.Background()); err == nil {
		t.Fatal("expected error without an auction")
	}
}

func TestHandler_FoldsSnapshotIntoSession(t *testing.T) {
	b, sender := testBot(nil, nil)
	b.store.Update(1, func(s *model.Session) {
		s.AuctionID = testAuctionID
		s.BearerToken = "tok"
	})

	price := int64(10_050_000)
	limit := int64(10_000_000)
	inc := int64(50_000)
	snap := model.Snapshot{
		AuctionID:    testAuctionID,
		CurrentPrice: &price,
		LimitPrice:   &limit,
		BidIncrement: &inc,
		IsLoggedIn:   true,
		CapturedAt:   time.Now(),
	}

	b.handlerFor(1).HandleTick(snap, []model.Event{
		model.NewHigherBid{Price: price, Rise: 50_000, ByOther: true},
	})

	sess, _ := b.store.Get(1)
	if sess.LastKnownHighBid == nil || *sess.LastKnownHighBid != price {
		t.Errorf("LastKnownHighBid = %v, want %d", sess.LastKnownHighBid, price)
	}
	if sess.BidIncrement == nil || *sess.BidIncrement != inc {
		t.Errorf("BidIncrement = %v, want %d", sess.BidIncrement, inc)
	}

	if got := sender.texts(); len(got) != 1 || !strings.Contains(got[0], "Rp 10.050.000") {
		t.Errorf("alerts sent = %q, want one with the new price", got)
	}
}

func TestHandler_SessionExpiredClearsCredentials(t *testing.T) {
	b, _ := testBot(nil, nil)
	b.store.Update(1, func(s *model.Session) {
		s.AuctionID = testAuctionID
		s.BearerToken = "tok"
		s.Passkey = "123456"
	})

	b.handlerFor(1).HandleTick(model.Snapshot{AuctionID: testAuctionID}, []model.Event{model.SessionExpired{}})

	sess, _ := b.store.Get(1)
	if sess.BearerToken != "" || sess.Passkey != "" {
		t.Errorf("credentials survived session expiry: %+v", sess)
	}
	if sess.AuctionID != testAuctionID {
		t.Error("auction should survive session expiry")
	}
}

func TestResolveAmount(t *testing.T) {
	t.Run("live history outranks cached price", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"data":[{"bidAmount":12000000,"bidderName":"Peserta 9"}]}`)
		}))
		defer srv.Close()

		b, _ := testBot(api.NewClient(srv.URL, srv.URL), nil)
		cached, limit, inc := int64(10_000_000), int64(9_000_000), int64(50_000)
		sess := model.Session{
			ChatID: 1, AuctionID: testAuctionID, BearerToken: "tok",
			LastKnownHighBid: &cached, LimitPrice: &limit, BidIncrement: &inc,
		}

		got, err := b.resolveAmount(context.Background(), sess)
		if err != nil {
			t.Fatalf("resolveAmount failed: %v", err)
		}
		if got != 12_050_000 {
			t.Errorf("amount = %d, want 12050000 (live history top + increment)", got)
		}
	})

	t.Run("cached price backs up a failed history fetch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		b, _ := testBot(api.NewClient(srv.URL, srv.URL), nil)
		cached, limit, inc := int64(10_000_000), int64(9_000_000), int64(50_000)
		sess := model.Session{
			ChatID: 1, AuctionID: testAuctionID, BearerToken: "tok",
			LastKnownHighBid: &cached, LimitPrice: &limit, BidIncrement: &inc,
		}

		got, err := b.resolveAmount(context.Background(), sess)
		if err != nil {
			t.Fatalf("resolveAmount failed: %v", err)
		}
		if got != 10_050_000 {
			t.Errorf("amount = %d, want 10050000 (cached price + increment)", got)
		}
	})

	t.Run("limit when nothing is known", func(t *testing.T) {
		b, _ := testBot(nil, nil)
		limit, inc := int64(9_000_000), int64(50_000)
		sess := model.Session{ChatID: 1, LimitPrice: &limit, BidIncrement: &inc}

		got, err := b.resolveAmount(context.Background(), sess)
		if err != nil {
			t.Fatalf("resolveAmount failed: %v", err)
		}
		if got != 9_050_000 {
			t.Errorf("amount = %d, want 9050000 (limit + increment)", got)
		}
	})
}

func TestAnnounceMonitoring_QuotesOnlyFromFeed(t *testing.T) {
	var apiCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiCalls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cache := feed.NewCache()
	b, sender := testBot(api.NewClient(srv.URL, srv.URL), cache)
	b.store.Update(1, func(s *model.Session) {
		s.AuctionID = testAuctionID
		s.BearerToken = "tok"
	})

	// Without a fresh push the announcement carries no price, and the
	// monitor's first tick keeps sole ownership of the API fetch.
	b.announceMonitoring(1)

	price := int64(5_000_000)
	cache.Put(1, model.Snapshot{
		AuctionID:    testAuctionID,
		CurrentPrice: &price,
		IsLoggedIn:   true,
		CapturedAt:   time.Now(),
	})
	b.announceMonitoring(1)

	got := sender.texts()
	if len(got) != 2 {
		t.Fatalf("announcements sent = %d, want 2", len(got))
	}
	if strings.Contains(got[0], "Rp") {
		t.Errorf("announcement without a feed snapshot quoted a price: %q", got[0])
	}
	if !strings.Contains(got[1], "Rp 5.000.000") {
		t.Errorf("announcement with a fresh feed snapshot = %q, want the pushed price", got[1])
	}
	if n := apiCalls.Load(); n != 0 {
		t.Errorf("announce touched the API %d times, want 0", n)
	}
}

func TestOnStop_FlagsAndNotifies(t *testing.T) {
	b, sender := testBot(nil, nil)
	b.store.SetMonitoring(1, true)

	b.onStopFor(1)(monitor.ReasonAuctionEnded)

	sess, _ := b.store.Get(1)
	if sess.MonitoringActive {
		t.Error("MonitoringActive still set after stop")
	}
	if got := sender.texts(); len(got) != 1 || !strings.Contains(got[0], string(monitor.ReasonAuctionEnded)) {
		t.Errorf("stop notice = %q", got)
	}
}
