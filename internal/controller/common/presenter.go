package common

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Freeeeeet/timetable_bot/internal/controller/formatting"
	"github.com/Freeeeeet/timetable_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/grid"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/render"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Presenter перерисовывает список и сетку целиком после каждого изменения
type Presenter struct {
	schedule *service.ScheduleService
	renderer *render.ImageRenderer
	logger   *zap.Logger
}

func NewPresenter(schedule *service.ScheduleService, renderer *render.ImageRenderer, logger *zap.Logger) *Presenter {
	return &Presenter{
		schedule: schedule,
		renderer: renderer,
		logger:   logger,
	}
}

// Refresh отправляет список и сетку заново
func (p *Presenter) Refresh(ctx context.Context, b *bot.Bot, chatID int64) {
	p.SendList(ctx, b, chatID)
	p.SendTimetable(ctx, b, chatID)
}

// SendList отправляет карточки занятий с кнопками удаления.
// Длинный список уходит несколькими сообщениями, у каждого свои кнопки.
func (p *Presenter) SendList(ctx context.Context, b *bot.Bot, chatID int64) {
	pages := formatting.PaginateLectureList(p.schedule.List(), formatting.MaxMessageLength)

	for i, page := range pages {
		params := &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      page.Text,
			ParseMode: models.ParseModeHTML,
		}
		if kb := ListKeyboard(page.Lectures, i == len(pages)-1); kb.Len() > 0 {
			params.ReplyMarkup = kb.Build()
		}

		if _, err := b.SendMessage(ctx, params); err != nil {
			p.logger.Error("Failed to send lecture list",
				zap.Int64("chat_id", chatID),
				zap.Int("page", i+1),
				zap.Int("pages", len(pages)),
				zap.Error(err))
			return
		}
	}
}

// SendTimetable отправляет картинку сетки; при ошибке рендера отправляет текстовую сетку
func (p *Presenter) SendTimetable(ctx context.Context, b *bot.Bot, chatID int64) {
	lectures := p.schedule.List()
	g := grid.Build(lectures)
	markup := TimetableKeyboard(g)

	imageData, err := p.renderer.Render(g, lectures)
	if err != nil {
		p.logger.Error("Failed to render timetable image", zap.Error(err))
		p.sendTextGrid(ctx, b, chatID, g, markup)
		return
	}

	params := &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: "timetable.png", Data: bytes.NewReader(imageData)},
		Caption:     fmt.Sprintf("🗓 시간표 (강의 %d개)", len(lectures)),
		ReplyMarkup: markup,
	}

	if _, err := b.SendPhoto(ctx, params); err != nil {
		p.logger.Error("Failed to send timetable photo",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		p.sendTextGrid(ctx, b, chatID, g, markup)
	}
}

func (p *Presenter) sendTextGrid(ctx context.Context, b *bot.Bot, chatID int64, g *grid.Grid, markup *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        formatting.FormatGridText(g),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		p.logger.Error("Failed to send text timetable",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// SendExport отправляет xlsx и csv выгрузки
func (p *Presenter) SendExport(ctx context.Context, b *bot.Bot, chatID int64) error {
	lectures := p.schedule.List()

	xlsx, err := render.XLSX(grid.Build(lectures), lectures)
	if err != nil {
		return fmt.Errorf("build xlsx: %w", err)
	}
	csv, err := render.CSV(lectures)
	if err != nil {
		return fmt.Errorf("build csv: %w", err)
	}

	files := []struct {
		name string
		data []byte
	}{
		{"timetable.xlsx", xlsx},
		{"lectures.csv", csv},
	}

	for _, f := range files {
		_, err := b.SendDocument(ctx, &bot.SendDocumentParams{
			ChatID:   chatID,
			Document: &models.InputFileUpload{Filename: f.name, Data: bytes.NewReader(f.data)},
		})
		if err != nil {
			return fmt.Errorf("send %s: %w", f.name, err)
		}
	}

	p.logger.Info("Export sent",
		zap.Int64("chat_id", chatID),
		zap.Int("lectures", len(lectures)))

	return nil
}

// ListKeyboard по кнопке удаления на каждую карточку страницы;
// под последней страницей ещё переход к сетке
func ListKeyboard(lectures []*model.Lecture, last bool) *keyboard.Builder {
	kb := keyboard.NewBuilder()
	for _, l := range lectures {
		kb.Row(keyboard.Button(fmt.Sprintf("🗑️ 삭제: %s", l.Name), DeleteData(l.ID)))
	}
	if last && len(lectures) > 0 {
		kb.Row(keyboard.Button("🗓 시간표 보기", ShowTimetable))
	}
	return kb
}

// TimetableKeyboard кнопки удаления для каждой ячейки-метки и переход к списку
func TimetableKeyboard(g *grid.Grid) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()
	for _, c := range g.Labels() {
		kb.Row(keyboard.Button(formatting.FormatLabelButton(c), DeleteData(c.Label.LectureID)))
	}
	kb.Row(keyboard.Button("📋 목록", ShowList))
	return kb.Build()
}
