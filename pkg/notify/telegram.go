// Package notify forwards live booking and payout activity to a Telegram
// ops chat. Optional; it only activates when a bot token is configured.
package notify

import (
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"gomelclient/pkg/logger"
	"gomelclient/store"
)

type Notifier struct {
	bot  *tele.Bot
	chat tele.ChatID
	log  logger.ILogger
}

func New(token string, chatID int64, log logger.ILogger) (*Notifier, error) {
	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}
	return &Notifier{bot: b, chat: tele.ChatID(chatID), log: log}, nil
}

// Watch subscribes to store changes and forwards the push-originated ones.
// Send failures are logged and dropped; notifications are best effort.
func (n *Notifier) Watch(st *store.Store) {
	st.Subscribe(func(ch store.Change) {
		var text string
		switch ch.Kind {
		case store.ChangeBookingCreated:
			if ch.Booking == nil {
				return
			}
			text = fmt.Sprintf("🚗 New booking %s: car %s, %s → %s (₹%.0f)",
				ch.Booking.ID, ch.Booking.CarID, ch.Booking.PickupDate, ch.Booking.ReturnDate, ch.Booking.TotalCost)
		case store.ChangePayoutCreated:
			if ch.Payout == nil {
				return
			}
			text = fmt.Sprintf("💸 Payout requested %s: ₹%.0f for booking %s",
				ch.Payout.ID, ch.Payout.Amount, ch.Payout.BookingID)
		case store.ChangePayoutUpdated:
			if ch.Payout == nil {
				return
			}
			text = fmt.Sprintf("💸 Payout %s is now %s", ch.Payout.ID, ch.Payout.Status)
		default:
			return
		}

		if _, err := n.bot.Send(n.chat, text); err != nil {
			n.log.Warning("notify: telegram send failed", logger.Error(err))
		}
	})
}
