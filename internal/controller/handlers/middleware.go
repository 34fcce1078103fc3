package handlers

import (
	"context"

	"github.com/Freeeeeet/timetable_bot/internal/controller/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// OwnerOnly пропускает апдейты только от владельца расписания.
// ownerID == 0 отключает проверку.
func OwnerOnly(ownerID int64, logger *zap.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if ownerID == 0 {
				next(ctx, b, update)
				return
			}

			senderID := common.SenderID(update)
			if senderID == ownerID {
				next(ctx, b, update)
				return
			}

			logger.Warn("Rejected update from non-owner",
				zap.Int64("telegram_id", senderID),
				zap.Int64("update_id", update.ID))

			switch {
			case update.CallbackQuery != nil:
				common.AnswerCallbackAlert(ctx, b, update.CallbackQuery.ID, common.ErrorMessage(common.ErrNotOwner))
			case update.Message != nil:
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: update.Message.Chat.ID,
					Text:   common.ErrorMessage(common.ErrNotOwner),
				})
			}
		}
	}
}
