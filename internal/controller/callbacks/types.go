package callbacks

import (
	"context"

	"github.com/Freeeeeet/timetable_bot/internal/controller/common"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler обработчик нажатий на inline кнопки
type Handler struct {
	Schedule  *service.ScheduleService
	Presenter *common.Presenter
	Dialog    *common.AddDialog
	Logger    *zap.Logger
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	schedule *service.ScheduleService,
	presenter *common.Presenter,
	dialog *common.AddDialog,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Schedule:  schedule,
		Presenter: presenter,
		Dialog:    dialog,
		Logger:    logger,
	}
}

// HandleCallbackQuery точка входа для всех callback query
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	Route(ctx, b, callback, h)
}
