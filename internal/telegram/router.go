package telegram

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/monstermash2008/time-range/internal/domain"
	"github.com/monstermash2008/time-range/internal/hours"
)

// Pending state keys used in conversational flows.
const (
	pendingFrom  = "await_from_text"
	pendingTo    = "await_to_text"
	pendingRange = "await_range_text"
)

// Bot is the part of *tgbotapi.BotAPI the router uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Router wires Telegram updates to handlers and holds minimal in-memory state.
type Router struct {
	bot   Bot
	log   *zap.Logger
	hours *hours.Service
	state map[int64]string // chatID -> pending state
	mu    sync.RWMutex
}

// NewRouter creates a new Telegram router.
func NewRouter(bot Bot, log *zap.Logger, svc *hours.Service) *Router {
	return &Router{
		bot:   bot,
		log:   log,
		hours: svc,
		state: make(map[int64]string),
	}
}

func (r *Router) setPending(chatID int64, s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state[chatID] = s
}

func (r *Router) getPending(chatID int64) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state[chatID]
}

func (r *Router) clearPending(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.state, chatID)
}

// splitCommand returns "/cmd" (without any @botname suffix) and the
// trimmed argument text. Non-command text yields an empty command.
func splitCommand(text string) (cmd, args string) {
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	cmd, args, _ = strings.Cut(text, " ")
	if at := strings.IndexByte(cmd, '@'); at >= 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd), strings.TrimSpace(args)
}

// HandleUpdate routes a single update to appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil && upd.Message.Chat != nil {
		chatID := upd.Message.Chat.ID
		cmd, args := splitCommand(strings.TrimSpace(upd.Message.Text))

		switch cmd {
		case "/start":
			r.handleStart(ctx, chatID)
		case "/help":
			r.sendText(chatID, helpText)
		case "/status":
			r.handleStatus(ctx, chatID)
		case "/from":
			r.handleFieldCommand(ctx, chatID, domain.FieldFrom, args)
		case "/to":
			r.handleFieldCommand(ctx, chatID, domain.FieldTo, args)
		case "/hours":
			r.handleHoursCommand(ctx, chatID, args)
		case "/clear":
			r.handleClear(ctx, chatID)
		case "":
			r.handleFreeForm(ctx, chatID, args)
		default:
			r.sendText(chatID, "Unknown command. Try /help.")
		}
		return
	}

	if cb := upd.CallbackQuery; cb != nil && cb.Message != nil && cb.Message.Chat != nil {
		chatID := cb.Message.Chat.ID
		data := cb.Data

		switch {
		case data == "set_hours":
			r.askHoursPresets(ctx, chatID, cb.ID)
		case data == "field:from":
			r.askField(chatID, domain.FieldFrom, cb.ID)
		case data == "field:to":
			r.askField(chatID, domain.FieldTo, cb.ID)
		case strings.HasPrefix(data, "range:"):
			r.handleRangeCallback(ctx, chatID, data, cb.ID)
		default:
			// Unknown callback: acknowledge and ignore
			_ = r.answerCallback(cb.ID, "")
		}
	}
}
