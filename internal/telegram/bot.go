package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"school-menu/internal/cache"
	"school-menu/internal/config"
	"school-menu/internal/fetcher"
	"school-menu/internal/menu"
	"school-menu/internal/metrics"
	"school-menu/internal/schoolday"
)

// Bot delivers the school menu over Telegram: any message answers with the
// menu for the current view, and an inline keyboard toggles between today and
// the next school day.
type Bot struct {
	api          *tgbotapi.BotAPI
	fetcher      *fetcher.Fetcher
	menuCache    *cache.MenuCache
	metricsStore *metrics.Store
	cfg          *config.Config

	// Stale-response guard: each fetch gets a monotonically increasing id and
	// only the latest id per chat is allowed to edit the message. A toggle
	// arriving while a fetch is in flight therefore wins over it.
	seq    atomic.Int64
	latest sync.Map // chatID -> request id
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, f *fetcher.Fetcher, c *cache.MenuCache, m *metrics.Store) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          api,
		fetcher:      f,
		menuCache:    c,
		metricsStore: m,
		cfg:          cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := len(b.cfg.TelegramAllowedUserIDs) == 0
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}
	if !isAllowed {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	if msg.Text == "/metrics" {
		b.handleMetricsRequest(msg)
		return
	}

	// Any other message answers with today's menu.
	statusText := "🍽 *Fetching menu...*"
	replyMsg := tgbotapi.NewMessage(msg.Chat.ID, statusText)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	b.sendMenu(context.Background(), msg.Chat.ID, sentMsg.MessageID, schoolday.Today)
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	parts := strings.Split(query.Data, "|")
	if len(parts) < 2 || parts[0] != "view" {
		return
	}
	view := schoolday.Today
	if parts[1] == "next" {
		view = schoolday.NextDay
	}

	// Answer callback to remove spinner
	b.api.Request(tgbotapi.NewCallback(query.ID, ""))

	edit := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, "🍽 *Fetching menu...*")
	edit.ParseMode = "Markdown"
	b.api.Send(edit)

	b.sendMenu(context.Background(), query.Message.Chat.ID, query.Message.MessageID, view)
}

// sendMenu resolves the date for a view, fetches the menu, and edits the
// placeholder message into the result (or an error block).
func (b *Bot) sendMenu(ctx context.Context, chatID int64, messageID int, view schoolday.View) {
	if b.menuCache != nil {
		b.menuCache.SweepExpired()
	}

	date, label := schoolday.Resolve(time.Now(), view)
	reqID := b.beginRequest(chatID)

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	m, err := b.fetcher.FetchMenu(ctx, date.Format(schoolday.DateLayout))
	if !b.isLatest(chatID, reqID) {
		log.Printf("Discarding stale menu response for chat %d", chatID)
		return
	}

	var finalText string
	if err != nil {
		log.Printf("Error fetching menu: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *Error fetching menu:*\n```\n%v\n```", safeErr)
	} else {
		finalText = formatMenuMessage(label, date, m)
	}

	keyboard := toggleKeyboard(view)
	edit := tgbotapi.NewEditMessageText(chatID, messageID, finalText)
	edit.ParseMode = "Markdown"
	edit.ReplyMarkup = &keyboard
	b.api.Send(edit)
}

func (b *Bot) beginRequest(chatID int64) int64 {
	id := b.seq.Add(1)
	b.latest.Store(chatID, id)
	return id
}

func (b *Bot) isLatest(chatID, reqID int64) bool {
	v, ok := b.latest.Load(chatID)
	return ok && v.(int64) == reqID
}

func toggleKeyboard(current schoolday.View) tgbotapi.InlineKeyboardMarkup {
	if current == schoolday.Today {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📅 Next school day", "view|next"),
			),
		)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Today", "view|today"),
		),
	)
}

func formatMenuMessage(label string, date time.Time, m menu.FormattedMenu) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏫 *School Menu — %s*\n", label))
	sb.WriteString(fmt.Sprintf("_%s_\n\n", date.Format("Monday, January 2, 2006")))

	sb.WriteString("🍳 *Breakfast*\n")
	sb.WriteString(m.Breakfast)
	sb.WriteString("\n\n🍕 *Lunch*\n")
	sb.WriteString(m.Lunch)

	return sb.String()
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "⛔ *Access Denied*: Admin only."))
		return
	}
	b.handleMetricsCommand(msg.Chat.ID)
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		b.api.Send(tgbotapi.NewMessage(chatID, "❌ Error fetching metrics."))
		return
	}

	health := metrics.GetSysHealth(filepath.Dir(b.cfg.DatabasePath))

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Upstream Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d requests, %d failed, avg %dms\n", d.Date, d.Requests, d.Failures, d.AvgLatencyMS))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))

	reply := tgbotapi.NewMessage(chatID, sb.String())
	reply.ParseMode = "Markdown"
	b.api.Send(reply)
}
