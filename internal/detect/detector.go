package detect

import (
	"github.com/dimaskresna/lelang-bot/internal/model"
)

// endgameWindow is the final stretch during which countdown changes are
// worth alerting on.
const endgameWindow = 10 // minutes

// Detect compares the previous and current snapshots and returns the domain
// events the transition implies. A nil previous snapshot establishes the
// baseline and emits nothing. Rules are evaluated independently, so one
// comparison may yield several events.
//
// A nil current price means the price feed had no observation this tick;
// price rules are skipped but login and countdown rules still run.
func Detect(prev *model.Snapshot, cur model.Snapshot) []model.Event {
	if prev == nil {
		return nil
	}

	var events []model.Event

	if cur.CurrentPrice != nil && prev.CurrentPrice != nil {
		if *cur.CurrentPrice > *prev.CurrentPrice && !cur.IsOwnBid {
			events = append(events, model.NewHigherBid{
				Price:   *cur.CurrentPrice,
				Rise:    *cur.CurrentPrice - *prev.CurrentPrice,
				ByOther: true,
				LotCode: cur.LotCode,
			})
		}
		if prev.IsOwnBid && !cur.IsOwnBid {
			events = append(events, model.Outbid{
				PreviousOwn: true,
				Price:       *cur.CurrentPrice,
			})
		}
	}

	if ev, ok := endgame(prev, cur); ok {
		events = append(events, ev)
	}

	if prev.IsLoggedIn && !cur.IsLoggedIn {
		events = append(events, model.SessionExpired{})
	}

	if cur.Ended() {
		events = append(events, model.AuctionEnded{})
	}

	return events
}

// endgame fires inside the final window whenever the displayed countdown
// differs from the previous tick. The comparison is on the display string,
// not the parsed value: the alert re-arms at the page's own granularity.
func endgame(prev *model.Snapshot, cur model.Snapshot) (model.EndgameApproaching, bool) {
	if cur.Countdown == "" {
		return model.EndgameApproaching{}, false
	}
	mins, ok := model.CountdownMinutes(cur.Countdown)
	if !ok || mins <= 0 || mins > endgameWindow {
		return model.EndgameApproaching{}, false
	}
	if prev.Countdown != "" && prev.Countdown == cur.Countdown {
		return model.EndgameApproaching{}, false
	}

	remaining, _ := model.ParseCountdown(cur.Countdown)
	return model.EndgameApproaching{
		Remaining: remaining,
		Display:   cur.Countdown,
	}, true
}
