package handlers

import (
	"github.com/Freeeeeet/timetable_bot/internal/controller/common"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	schedule  *service.ScheduleService
	presenter *common.Presenter
	dialog    *common.AddDialog
	logger    *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	schedule *service.ScheduleService,
	presenter *common.Presenter,
	dialog *common.AddDialog,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		schedule:  schedule,
		presenter: presenter,
		dialog:    dialog,
		logger:    logger,
	}
}
