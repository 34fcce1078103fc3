package callbacks

import (
	"github.com/Freeeeeet/timetable_bot/internal/controller/common"
	"go.uber.org/zap"
)

// handleDelete удаляет занятие по кнопке del:<id> и перерисовывает список и сетку.
// Повторное нажатие на уже удалённое занятие ничего не меняет.
func handleDelete(hc *HandlerContext) {
	if err := hc.RequireMessage(); err != nil {
		hc.HandleError(err, "delete_lecture")
		return
	}

	id, err := common.ParseIDFromCallback(hc.Callback.Data)
	if err != nil {
		hc.HandleError(err, "delete_lecture")
		return
	}

	removed, err := hc.Handler.Schedule.Remove(hc.Ctx, id)
	switch {
	case err != nil:
		hc.HandleError(err, "delete_lecture")
	case !removed:
		hc.Answer(common.ErrorMessage(common.ErrLectureNotFound))
	default:
		hc.Handler.Logger.Info("Lecture deleted",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int64("lecture_id", id))
		hc.Answer("🗑️ 삭제했어요")
	}

	hc.Handler.Presenter.Refresh(hc.Ctx, hc.Bot, hc.ChatID)
}
