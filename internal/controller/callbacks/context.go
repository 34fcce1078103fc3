package callbacks

import (
	"context"

	"github.com/Freeeeeet/timetable_bot/internal/controller/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandlerContext общие данные одного нажатия
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *Handler
	Message    *models.Message
	TelegramID int64
	ChatID     int64
}

// NewHandlerContext создаёт контекст; Message может быть nil для недоступных сообщений
func NewHandlerContext(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) *HandlerContext {
	hc := &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    common.GetMessageFromCallback(callback),
		TelegramID: callback.From.ID,
	}
	if hc.Message != nil {
		hc.ChatID = hc.Message.Chat.ID
	}
	return hc
}

// RequireMessage проверяет что у нажатия есть сообщение
func (hc *HandlerContext) RequireMessage() error {
	if hc.Message == nil {
		return common.ErrNoMessage
	}
	return nil
}

// Answer отвечает на callback
func (hc *HandlerContext) Answer(text string) {
	common.AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback всплывающим окном
func (hc *HandlerContext) AnswerAlert(text string) {
	common.AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// HandleError логирует ошибку и показывает её пользователю
func (hc *HandlerContext) HandleError(err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.String("data", hc.Callback.Data),
		zap.Error(err))
	hc.AnswerAlert(common.ErrorMessage(err))
}
