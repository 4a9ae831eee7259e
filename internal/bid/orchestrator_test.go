package bid

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dimaskresna/lelang-bot/internal/model"
)

// fakeTransport records calls and can block or fail on demand.
type fakeTransport struct {
	mu         sync.Mutex
	openCalls  int
	placeCalls int

	openErr  error
	placeErr error
	block    chan struct{} // when set, PlaceBid waits on it
}

func (f *fakeTransport) OpenBidSession(ctx context.Context, sess model.Session) error {
	f.mu.Lock()
	f.openCalls++
	f.mu.Unlock()
	return f.openErr
}

func (f *fakeTransport) PlaceBid(ctx context.Context, sess model.Session, cmd model.BidCommand) error {
	f.mu.Lock()
	f.placeCalls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.placeErr
}

func (f *fakeTransport) calls() (open, place int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.openCalls, f.placeCalls
}

// fakeNotifier counts delivered results.
type fakeNotifier struct {
	mu      sync.Mutex
	results []model.BidResult
}

func (f *fakeNotifier) BidResult(chatID int64, res model.BidResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, res)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.results)
}

func readySession() model.Session {
	return model.Session{
		ChatID:      42,
		AuctionID:   "3f0c7a9e-0000-0000-0000-000000000001",
		BearerToken: "token",
		Passkey:     "123456",
	}
}

func TestSubmitBid_Success(t *testing.T) {
	transport := &fakeTransport{}
	notifier := &fakeNotifier{}
	o := NewOrchestrator(transport, notifier, time.Second, nil)

	res := o.SubmitBid(context.Background(), readySession(), 10_050_000)
	if !res.Success {
		t.Fatalf("SubmitBid failed: %s", res.Error)
	}
	if res.Amount != 10_050_000 {
		t.Errorf("Amount = %d, want 10050000", res.Amount)
	}

	open, place := transport.calls()
	if open != 1 || place != 1 {
		t.Errorf("calls = open %d, place %d, want 1, 1", open, place)
	}
	if notifier.count() != 1 {
		t.Errorf("notifier received %d results, want 1", notifier.count())
	}
}

func TestSubmitBid_PreconditionOrder(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*model.Session)
		wantField string
	}{
		{"missing auction", func(s *model.Session) { s.AuctionID = "" }, "auction id"},
		{"missing credentials", func(s *model.Session) { s.BearerToken = ""; s.CookieHeader = "" }, "bearer token or cookies"},
		{"missing passkey", func(s *model.Session) { s.Passkey = "" }, "bidding passkey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &fakeTransport{}
			o := NewOrchestrator(transport, &fakeNotifier{}, time.Second, nil)

			sess := readySession()
			tt.mutate(&sess)

			res := o.SubmitBid(context.Background(), sess, 1)
			if res.Success {
				t.Fatal("SubmitBid succeeded despite missing precondition")
			}
			want := (&PreconditionError{Field: tt.wantField}).Error()
			if res.Error != want {
				t.Errorf("Error = %q, want %q", res.Error, want)
			}

			open, place := transport.calls()
			if open != 0 || place != 0 {
				t.Errorf("network was touched: open %d, place %d", open, place)
			}
		})
	}
}

func TestSubmitBid_CookieOnlyCredentials(t *testing.T) {
	o := NewOrchestrator(&fakeTransport{}, &fakeNotifier{}, time.Second, nil)

	sess := readySession()
	sess.BearerToken = ""
	sess.CookieHeader = "cookiesSession=abc"

	if res := o.SubmitBid(context.Background(), sess, 1); !res.Success {
		t.Errorf("cookie-only session rejected: %s", res.Error)
	}
}

func TestSubmitBid_OpenSessionFailureAborts(t *testing.T) {
	transport := &fakeTransport{openErr: errors.New("boom")}
	o := NewOrchestrator(transport, &fakeNotifier{}, time.Second, nil)

	res := o.SubmitBid(context.Background(), readySession(), 1)
	if res.Success {
		t.Fatal("SubmitBid succeeded despite open-session failure")
	}
	if _, place := transport.calls(); place != 0 {
		t.Errorf("PlaceBid was attempted after open-session failure")
	}
}

func TestSubmitBid_RejectsConcurrent(t *testing.T) {
	block := make(chan struct{})
	transport := &fakeTransport{block: block}
	notifier := &fakeNotifier{}
	o := NewOrchestrator(transport, notifier, 5*time.Second, nil)

	first := make(chan model.BidResult, 1)
	go func() {
		first <- o.SubmitBid(context.Background(), readySession(), 10_050_000)
	}()

	// Wait until the first bid is registered in flight.
	deadline := time.Now().Add(time.Second)
	for !o.InFlight(readySession().AuctionID) {
		if time.Now().After(deadline) {
			t.Fatal("first bid never became in-flight")
		}
		time.Sleep(time.Millisecond)
	}

	second := o.SubmitBid(context.Background(), readySession(), 10_100_000)
	if second.Success {
		t.Fatal("second bid succeeded while first was in flight")
	}
	if second.Error != ErrBidInFlight.Error() {
		t.Errorf("Error = %q, want %q", second.Error, ErrBidInFlight.Error())
	}

	open, _ := transport.calls()
	if open != 1 {
		t.Errorf("open-session calls = %d, want 1 (second bid must not hit the network)", open)
	}

	close(block)
	if res := <-first; !res.Success {
		t.Errorf("first bid failed: %s", res.Error)
	}

	// The slot is free again after completion.
	if res := o.SubmitBid(context.Background(), readySession(), 10_150_000); !res.Success {
		t.Errorf("follow-up bid failed: %s", res.Error)
	}
}
