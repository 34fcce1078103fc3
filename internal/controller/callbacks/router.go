package callbacks

import (
	"context"
	"errors"
	"strings"

	"github.com/Freeeeeet/timetable_bot/internal/controller/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	hc := NewHandlerContext(ctx, b, callback, h)
	data := callback.Data

	switch {
	case strings.HasPrefix(data, common.DeleteLecture):
		handleDelete(hc)
	case data == common.ShowList:
		handleShow(hc, h.Presenter.SendList)
	case data == common.ShowTimetable:
		handleShow(hc, h.Presenter.SendTimetable)
	case strings.HasPrefix(data, common.AddSkipRoom),
		strings.HasPrefix(data, common.AddDay),
		strings.HasPrefix(data, common.AddStart),
		strings.HasPrefix(data, common.AddEnd):
		handleDialogStep(hc)
	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		hc.Answer("")
	}
}

func handleShow(hc *HandlerContext, send func(ctx context.Context, b *bot.Bot, chatID int64)) {
	if err := hc.RequireMessage(); err != nil {
		hc.HandleError(err, "show")
		return
	}
	hc.Answer("")
	send(hc.Ctx, hc.Bot, hc.ChatID)
}

func handleDialogStep(hc *HandlerContext) {
	err := hc.Handler.Dialog.HandleCallback(hc.Ctx, hc.Bot, hc.Callback)
	switch {
	case errors.Is(err, common.ErrStaleDialog):
		// кнопка от старого диалога
		hc.Handler.Logger.Debug("Stale dialog button",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("data", hc.Callback.Data))
		hc.AnswerAlert(common.ErrorMessage(err))
	case err != nil:
		hc.HandleError(err, "add_dialog")
	default:
		hc.Answer("")
	}
}
