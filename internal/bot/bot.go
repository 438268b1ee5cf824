// Package bot is the Telegram transport: it dispatches commands, feeds
// plain messages through the parser and replies with confirmations or
// reports. All ledger access goes through the ledger ports.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"finbot/internal/core"
	"finbot/internal/ledger"
	"finbot/internal/parser"
	"finbot/internal/render"
	"finbot/internal/stats"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	store  ledger.Store
	loc    *time.Location
	logger *slog.Logger
	now    func() time.Time
}

func New(api *tgbotapi.BotAPI, store ledger.Store, loc *time.Location, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Bot{
		api:    api,
		store:  store,
		loc:    loc,
		logger: logger,
		now:    time.Now,
	}
}

// Run consumes updates via long polling until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("Bot started in polling mode", "username", b.api.Self.UserName)
	return b.ProcessUpdates(ctx, updates)
}

// ProcessUpdates drains one update channel; both the polling and the
// webhook entrypoints feed it.
func (b *Bot) ProcessUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	var replies []string
	if msg.IsCommand() {
		replies = b.HandleCommand(ctx, msg.Command())
	} else {
		replies = []string{b.HandleText(ctx, msg.Text)}
	}

	for _, text := range replies {
		reply := tgbotapi.NewMessage(msg.Chat.ID, text)
		reply.ParseMode = tgbotapi.ModeMarkdown
		if _, err := b.api.Send(reply); err != nil {
			b.logger.Error("Failed to send reply", "chat_id", msg.Chat.ID, "error", err)
		}
	}
}

// HandleCommand computes the replies for one slash command.
func (b *Bot) HandleCommand(ctx context.Context, command string) []string {
	switch command {
	case "start":
		return []string{welcomeMessage}
	case "clearTable":
		if err := b.store.Clear(ctx); err != nil {
			b.logger.Error("Failed to clear ledger", "error", err)
			return []string{clearErrorMessage}
		}
		b.logger.Info("Ledger cleared by command")
		return []string{clearedMessage}
	case "statistics":
		return b.statistics(ctx)
	default:
		return []string{unknownCommandMessage}
	}
}

func (b *Bot) statistics(ctx context.Context) []string {
	rows, err := b.store.Snapshot(ctx)
	if err != nil {
		b.logger.Error("Failed to read ledger snapshot", "error", err)
		return []string{statsErrorMessage}
	}
	if len(rows) == 0 {
		return []string{noDataMessage}
	}

	summary := stats.Build(rows)
	if summary.DegradedCells > 0 {
		b.logger.Warn("Snapshot contained malformed cells", "degraded_cells", summary.DegradedCells, "rows", len(rows))
	}
	replies := []string{render.SummaryText(summary)}
	if breakdown := render.BreakdownText(summary); breakdown != "" {
		replies = append(replies, breakdown)
	}
	return replies
}

// HandleText classifies one free-text message and appends the resulting
// transaction. Rejections get the format help; the caller only ever sees
// one reply.
func (b *Bot) HandleText(ctx context.Context, text string) string {
	tx, err := parser.Parse(text)
	if err != nil {
		return invalidFormatMessage
	}

	row, err := core.NewRow(tx, b.now().In(b.loc))
	if err != nil {
		return invalidFormatMessage
	}

	ref, err := b.store.Append(ctx, row)
	if err != nil {
		b.logger.Error("Failed to append row", "error", err)
		return storeErrorMessage
	}
	b.logger.Info("Transaction recorded", "ref", ref)

	switch t := tx.(type) {
	case core.Credit:
		return fmt.Sprintf("✅ Crédito registrado com sucesso! ➕\n\n💰 Valor: R$ %.2f", t.Amount)
	case core.Investment:
		return fmt.Sprintf("✅ Investimento registrado com sucesso! 📈\n\n💰 Valor: R$ %.2f\n📊 Categoria: %s", t.Amount, t.Category)
	case core.Expense:
		return fmt.Sprintf("✅ Despesa registrada com sucesso! ➖\n\n💰 Valor: R$ %.2f\n💳 Tipo: %s\n🏷️ Categoria: %s\n📝 Descrição: %s",
			t.Amount, t.PaymentMethod, t.Category, t.Description)
	default:
		return storeErrorMessage
	}
}
