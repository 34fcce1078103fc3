package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/timetable_bot/internal/controller/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/formatting"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 명령어\n\n" +
	"/add - 강의 추가\n" +
	"/list - 강의 목록 (삭제 버튼 포함)\n" +
	"/timetable - 주간 시간표 보기\n" +
	"/export - 엑셀/CSV 로 내보내기\n" +
	"/cancel - 입력 취소\n" +
	"/help - 이 도움말"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	name := "👋"
	if update.Message.From != nil && update.Message.From.FirstName != "" {
		name = formatting.EscapeHTML(update.Message.From.FirstName)
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"안녕하세요, "+name+"!\n\n"+
			"월~금 9:00-17:00 주간 시간표를 만들어 드려요.\n\n"+helpText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleAdd начинает диалог добавления занятия
func (h *Handlers) HandleAdd(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.dialog.Start(ctx, b, update.Message.Chat.ID, update.Message.From.ID)
}

// HandleList обрабатывает команду /list
func (h *Handlers) HandleList(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.presenter.SendList(ctx, b, update.Message.Chat.ID)
}

// HandleTimetable обрабатывает команду /timetable
func (h *Handlers) HandleTimetable(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.presenter.SendTimetable(ctx, b, update.Message.Chat.ID)
}

// HandleExport отправляет xlsx и csv
func (h *Handlers) HandleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if h.schedule.Count() == 0 {
		h.sendMessage(ctx, b, chatID, formatting.EmptyListMessage)
		return
	}

	if err := h.presenter.SendExport(ctx, b, chatID); err != nil {
		h.logger.Error("Failed to export timetable",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
	}
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	if !h.dialog.Cancel(update.Message.From.ID) {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ 취소할 입력이 없어요.")
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ 취소했어요.\n\n/help 로 명령어를 볼 수 있어요.")
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" || update.Message.From == nil {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	if !h.dialog.HandleText(ctx, b, update.Message) {
		h.logger.Debug("No active dialog, ignoring message",
			zap.Int64("telegram_id", update.Message.From.ID))
	}
}
