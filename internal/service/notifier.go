package service

import (
	"context"
	"time"

	"habitquest/internal/model"
	"habitquest/pkg/gameday"
	"habitquest/pkg/logger"

	"github.com/go-co-op/gocron/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// ReminderEvent is emitted when a quest's scheduled time arrives. It is pure
// side-effect signalling; the poller never mutates player or quest state.
type ReminderEvent struct {
	UserID     int64     `json:"user_id"`
	QuestID    string    `json:"quest_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ReminderSink receives reminder events; the websocket hub implements it.
type ReminderSink interface {
	Publish(ev ReminderEvent)
}

// Notifier polls once a minute for quests whose scheduled HH:MM matches the
// clock and fans the reminders out to the sink and, when configured, to the
// user's Telegram chat.
type Notifier struct {
	repo      NotifierRepository
	sink      ReminderSink
	bot       *tgbotapi.BotAPI
	scheduler gocron.Scheduler
	interval  time.Duration
	clock     func() string
}

func NewNotifier(repo NotifierRepository, sink ReminderSink, bot *tgbotapi.BotAPI, interval time.Duration) (*Notifier, error) {
	if interval <= 0 {
		interval = time.Minute
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Notifier{
		repo:      repo,
		sink:      sink,
		bot:       bot,
		scheduler: scheduler,
		interval:  interval,
		clock:     gameday.Clock,
	}, nil
}

func (n *Notifier) Start() error {
	_, err := n.scheduler.NewJob(
		gocron.DurationJob(n.interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			n.tick(ctx)
		}),
	)
	if err != nil {
		return err
	}

	n.scheduler.Start()
	return nil
}

func (n *Notifier) Stop() error {
	return n.scheduler.Shutdown()
}

func (n *Notifier) tick(ctx context.Context) {
	log := logger.Logger()

	clock := n.clock()
	quests, err := n.repo.ListQuestsScheduledAt(ctx, clock)
	if err != nil {
		log.Error("reminder scan failed", zap.String("clock", clock), zap.Error(err))
		return
	}

	today := gameday.Today()
	for _, q := range quests {
		// No reminder for a daily already done today.
		if q.CompletedToday(today) {
			continue
		}
		n.deliver(q)
	}
}

func (n *Notifier) deliver(q *model.Quest) {
	log := logger.Logger()

	ev := ReminderEvent{
		UserID:     q.UserID,
		QuestID:    q.ID.String(),
		Title:      "Quest reminder",
		Body:       q.Title,
		OccurredAt: time.Now().UTC(),
	}

	if n.sink != nil {
		n.sink.Publish(ev)
	}

	if n.bot != nil {
		msg := tgbotapi.NewMessage(q.UserID, "⏰ "+q.Title)
		if _, err := n.bot.Send(msg); err != nil {
			log.Warn("telegram reminder failed",
				zap.Int64("user_id", q.UserID), zap.Error(err))
		}
	}

	log.Debug("reminder dispatched",
		zap.Int64("user_id", q.UserID), zap.String("quest_id", ev.QuestID))
}
