package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/monstermash2008/time-range/internal/domain"
	"github.com/monstermash2008/time-range/internal/hours"
)

// --- Generic helpers ---

func (r *Router) sendText(chatID int64, text string) {
	if _, err := r.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		r.log.Warn("send failed", zap.Error(err), zap.Int64("chatID", chatID))
	}
}

func (r *Router) answerCallback(id, text string) error {
	_, err := r.bot.Request(tgbotapi.NewCallback(id, text))
	return err
}

func displayField(t *domain.Time) string {
	if t == nil {
		return emptyField
	}
	return t.String()
}

// renderReport formats the current range followed by any warnings.
func renderReport(rep hours.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, statusTitle, displayField(rep.Range.From), displayField(rep.Range.To))
	for _, m := range rep.Messages() {
		b.WriteString("\n⚠️ ")
		b.WriteString(m)
	}
	if rep.FromError || rep.ToError {
		b.WriteString("\n" + formatHint)
	}
	return b.String()
}

func (r *Router) sendReport(chatID int64, rep hours.Report) {
	msg := tgbotapi.NewMessage(chatID, renderReport(rep))
	msg.ReplyMarkup = settingsInlineKeyboard()
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Warn("send failed", zap.Error(err), zap.Int64("chatID", chatID))
	}
}

// --- Core commands ---

func (r *Router) handleStart(ctx context.Context, chatID int64) {
	if _, err := r.hours.Get(ctx, chatID); err != nil {
		r.log.Error("load hours failed", zap.Error(err))
		r.sendText(chatID, "Profile initialization error. Please try again later.")
		return
	}
	msg := tgbotapi.NewMessage(chatID, startText)
	msg.ReplyMarkup = mainMenuKeyboard()
	_, _ = r.bot.Send(msg)
}

func (r *Router) handleStatus(ctx context.Context, chatID int64) {
	rep, err := r.hours.Get(ctx, chatID)
	if err != nil {
		r.log.Error("load hours failed", zap.Error(err))
		r.sendText(chatID, "Error reading your hours.")
		return
	}
	r.sendReport(chatID, rep)
}

func (r *Router) handleClear(ctx context.Context, chatID int64) {
	r.clearPending(chatID)
	rep, err := r.hours.Clear(ctx, chatID)
	if err != nil {
		r.log.Error("clear hours failed", zap.Error(err))
		r.sendText(chatID, "Could not clear your hours.")
		return
	}
	r.sendReport(chatID, rep)
}

// --- Single field flow ---

func fieldPrompt(f domain.Field) string {
	if f == domain.FieldFrom {
		return "When does your day start? e.g. 9am"
	}
	return "When does your day end? e.g. 5pm"
}

func (r *Router) handleFieldCommand(ctx context.Context, chatID int64, f domain.Field, args string) {
	if args == "" {
		r.promptField(chatID, f)
		return
	}
	r.updateField(ctx, chatID, f, args)
}

func (r *Router) askField(chatID int64, f domain.Field, cbID string) {
	_ = r.answerCallback(cbID, "")
	r.promptField(chatID, f)
}

func (r *Router) promptField(chatID int64, f domain.Field) {
	state := pendingFrom
	if f == domain.FieldTo {
		state = pendingTo
	}
	r.setPending(chatID, state)
	r.sendText(chatID, fieldPrompt(f))
}

func (r *Router) updateField(ctx context.Context, chatID int64, f domain.Field, text string) {
	rep, err := r.hours.SetField(ctx, chatID, f, text)
	if err != nil {
		r.log.Error("set field failed", zap.Error(err), zap.String("field", string(f)))
		r.sendText(chatID, "Could not save your hours.")
		return
	}
	if rep.FromError || rep.ToError {
		r.log.Debug("unparseable time", zap.Int64("chatID", chatID), zap.String("input", text))
	}
	r.sendReport(chatID, rep)
}

// --- Range flow ---

func (r *Router) handleHoursCommand(ctx context.Context, chatID int64, args string) {
	if args == "" {
		msg := tgbotapi.NewMessage(chatID, "Choose your hours (or Custom):")
		msg.ReplyMarkup = hoursPresetsKeyboard()
		_, _ = r.bot.Send(msg)
		return
	}
	r.updateRange(ctx, chatID, args)
}

func (r *Router) askHoursPresets(ctx context.Context, chatID int64, cbID string) {
	_ = r.answerCallback(cbID, "")
	r.handleHoursCommand(ctx, chatID, "")
}

const rangePrompt = "Enter your hours as FROM-TO, e.g. 9am-5:30pm"

func (r *Router) handleRangeCallback(ctx context.Context, chatID int64, data string, cbID string) {
	_ = r.answerCallback(cbID, "")
	if data == "range:custom" {
		r.setPending(chatID, pendingRange)
		r.sendText(chatID, rangePrompt)
		return
	}
	r.updateRange(ctx, chatID, strings.TrimPrefix(data, "range:"))
}

func (r *Router) updateRange(ctx context.Context, chatID int64, text string) {
	rep, err := r.hours.SetRange(ctx, chatID, text)
	if errors.Is(err, domain.ErrRangeFormat) {
		r.sendText(chatID, "Invalid format. Example: 9am-5pm")
		return
	}
	if err != nil {
		r.log.Error("set range failed", zap.Error(err))
		r.sendText(chatID, "Could not save your hours.")
		return
	}
	r.sendReport(chatID, rep)
}

// --- Free-form dispatcher ---

func (r *Router) handleFreeForm(ctx context.Context, chatID int64, text string) {
	if text == "" {
		// Photos, stickers and other non-text messages must not clear a field.
		r.repeatPrompt(chatID)
		return
	}
	switch r.getPending(chatID) {
	case pendingFrom:
		r.clearPending(chatID)
		r.updateField(ctx, chatID, domain.FieldFrom, text)
	case pendingTo:
		r.clearPending(chatID)
		r.updateField(ctx, chatID, domain.FieldTo, text)
	case pendingRange:
		r.clearPending(chatID)
		r.updateRange(ctx, chatID, text)
	default:
		// No pending flow: ignore free-form message
	}
}

// repeatPrompt re-sends the question for the pending flow, if any, and
// leaves the flow pending.
func (r *Router) repeatPrompt(chatID int64) {
	switch r.getPending(chatID) {
	case pendingFrom:
		r.sendText(chatID, fieldPrompt(domain.FieldFrom))
	case pendingTo:
		r.sendText(chatID, fieldPrompt(domain.FieldTo))
	case pendingRange:
		r.sendText(chatID, rangePrompt)
	}
}
