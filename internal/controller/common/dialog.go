package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/timetable_bot/internal/controller/formatting"
	"github.com/Freeeeeet/timetable_bot/internal/controller/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/Freeeeeet/timetable_bot/internal/grid"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// EmptyClassroom ввод, означающий "без аудитории"
const EmptyClassroom = "-"

// AddDialog диалог добавления занятия: название → аудитория → день → начало → конец.
// Шаги с кнопками и шаги с текстом ведут в одни и те же переходы.
type AddDialog struct {
	schedule  *service.ScheduleService
	states    *state.Manager
	presenter *Presenter
	logger    *zap.Logger
}

func NewAddDialog(schedule *service.ScheduleService, states *state.Manager, presenter *Presenter, logger *zap.Logger) *AddDialog {
	return &AddDialog{
		schedule:  schedule,
		states:    states,
		presenter: presenter,
		logger:    logger,
	}
}

// Start начинает новый диалог, старый черновик выбрасывается
func (d *AddDialog) Start(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	draft := d.states.Begin(userID, state.StateAddName)

	d.logger.Info("Add dialog started",
		zap.Int64("telegram_id", userID),
		zap.String("draft", draft))

	d.send(ctx, b, chatID, "📝 새 강의 추가\n\n"+
		"1/5 강의 이름을 입력해주세요.\n\n"+
		"취소하려면 /cancel", nil)
}

// Active идёт ли у пользователя диалог
func (d *AddDialog) Active(userID int64) bool {
	return d.states.GetState(userID) != state.StateNone
}

// Cancel сбрасывает диалог, false если его не было
func (d *AddDialog) Cancel(userID int64) bool {
	if !d.Active(userID) {
		return false
	}
	d.states.ClearState(userID)
	return true
}

// HandleText обрабатывает текстовый ввод для текущего шага.
// Возвращает false если диалога нет.
func (d *AddDialog) HandleText(ctx context.Context, b *bot.Bot, msg *models.Message) bool {
	if msg.From == nil {
		return false
	}
	userID := msg.From.ID
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch d.states.GetState(userID) {
	case state.StateAddName:
		d.acceptName(ctx, b, chatID, userID, text)
	case state.StateAddClassroom:
		if text == EmptyClassroom {
			text = ""
		}
		d.acceptClassroom(ctx, b, chatID, userID, text)
	case state.StateAddDay:
		day := model.Weekday(text)
		if !day.IsValid() {
			d.send(ctx, b, chatID, "요일은 아래 버튼으로 골라주세요.", d.dayKeyboard(d.states.Draft(userID)))
			return true
		}
		d.acceptDay(ctx, b, chatID, userID, day)
	case state.StateAddStart:
		d.acceptStart(ctx, b, chatID, userID, normalizeClock(text))
	case state.StateAddEnd:
		d.acceptEnd(ctx, b, chatID, userID, normalizeClock(text))
	default:
		return false
	}
	return true
}

// HandleCallback обрабатывает кнопки шагов add_*
func (d *AddDialog) HandleCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) error {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		return ErrNoMessage
	}
	userID := callback.From.ID
	chatID := msg.Chat.ID
	data := callback.Data

	switch {
	case strings.HasPrefix(data, AddSkipRoom):
		draft, _, err := ParseDraftCallback(data, AddSkipRoom)
		if err != nil {
			return err
		}
		if !d.states.IsCurrent(userID, draft, state.StateAddClassroom) {
			return ErrStaleDialog
		}
		d.acceptClassroom(ctx, b, chatID, userID, "")

	case strings.HasPrefix(data, AddDay):
		draft, value, err := ParseDraftCallback(data, AddDay)
		if err != nil {
			return err
		}
		day, err := ParseDayIndex(value)
		if err != nil {
			return err
		}
		if !d.states.IsCurrent(userID, draft, state.StateAddDay) {
			return ErrStaleDialog
		}
		d.acceptDay(ctx, b, chatID, userID, day)

	case strings.HasPrefix(data, AddStart):
		draft, value, err := ParseDraftCallback(data, AddStart)
		if err != nil {
			return err
		}
		start, err := ParseClockData(value)
		if err != nil {
			return err
		}
		if !d.states.IsCurrent(userID, draft, state.StateAddStart) {
			return ErrStaleDialog
		}
		d.acceptStart(ctx, b, chatID, userID, start.String())

	case strings.HasPrefix(data, AddEnd):
		draft, value, err := ParseDraftCallback(data, AddEnd)
		if err != nil {
			return err
		}
		end, err := ParseClockData(value)
		if err != nil {
			return err
		}
		if !d.states.IsCurrent(userID, draft, state.StateAddEnd) {
			return ErrStaleDialog
		}
		d.acceptEnd(ctx, b, chatID, userID, end.String())

	default:
		return ErrInvalidFormat
	}

	return nil
}

func (d *AddDialog) acceptName(ctx context.Context, b *bot.Bot, chatID, userID int64, name string) {
	d.states.SetData(userID, state.KeyName, name)
	d.states.SetState(userID, state.StateAddClassroom)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("건너뛰기", DraftData(AddSkipRoom, d.states.Draft(userID), ""))).
		Build()

	d.send(ctx, b, chatID, fmt.Sprintf("✅ 강의 이름: %s\n\n"+
		"2/5 강의실을 입력해주세요. 없으면 \"%s\" 또는 건너뛰기.",
		formatting.EscapeHTML(name), EmptyClassroom), kb)
}

func (d *AddDialog) acceptClassroom(ctx context.Context, b *bot.Bot, chatID, userID int64, classroom string) {
	d.states.SetData(userID, state.KeyClassroom, classroom)
	d.states.SetState(userID, state.StateAddDay)

	d.send(ctx, b, chatID, "3/5 요일을 골라주세요.", d.dayKeyboard(d.states.Draft(userID)))
}

func (d *AddDialog) acceptDay(ctx context.Context, b *bot.Bot, chatID, userID int64, day model.Weekday) {
	d.states.SetData(userID, state.KeyDay, string(day))
	d.states.SetState(userID, state.StateAddStart)

	d.send(ctx, b, chatID, fmt.Sprintf("✅ 요일: %s\n\n"+
		"4/5 시작 시간을 고르거나 HH:MM 으로 입력해주세요.", day),
		StartKeyboard(d.states.Draft(userID)))
}

func (d *AddDialog) acceptStart(ctx context.Context, b *bot.Bot, chatID, userID int64, start string) {
	d.states.SetData(userID, state.KeyStart, start)
	d.states.SetState(userID, state.StateAddEnd)

	d.send(ctx, b, chatID, fmt.Sprintf("✅ 시작: %s\n\n"+
		"5/5 종료 시간을 고르거나 HH:MM 으로 입력해주세요.", formatting.EscapeHTML(start)),
		EndKeyboard(d.states.Draft(userID), start))
}

func (d *AddDialog) acceptEnd(ctx context.Context, b *bot.Bot, chatID, userID int64, end string) {
	input := service.LectureInput{
		Name:      d.states.GetString(userID, state.KeyName),
		Classroom: d.states.GetString(userID, state.KeyClassroom),
		Day:       model.Weekday(d.states.GetString(userID, state.KeyDay)),
		StartTime: d.states.GetString(userID, state.KeyStart),
		EndTime:   end,
	}
	d.states.ClearState(userID)

	lecture, err := d.schedule.Add(ctx, input)
	if err != nil {
		// запись уже в памяти, не сохранилось только хранилище
		d.logger.Error("Failed to persist new lecture",
			zap.Int64("telegram_id", userID),
			zap.Error(err))
		d.send(ctx, b, chatID, "⚠️ 강의는 추가했지만 저장에 실패했어요. 잠시 후 다시 시도해주세요.", nil)
	} else {
		d.logger.Info("Lecture added via dialog",
			zap.Int64("telegram_id", userID),
			zap.Int64("lecture_id", lecture.ID))
		d.send(ctx, b, chatID, "✅ 강의를 추가했어요!\n\n"+formatting.FormatLectureCard(lecture), nil)
	}

	d.presenter.Refresh(ctx, b, chatID)
}

func (d *AddDialog) dayKeyboard(draft string) *models.InlineKeyboardMarkup {
	buttons := make([]models.InlineKeyboardButton, 0, len(model.Weekdays))
	for i, day := range model.Weekdays {
		buttons = append(buttons, keyboard.Button(string(day), DraftData(AddDay, draft, fmt.Sprint(i))))
	}
	return keyboard.NewBuilder().Row(buttons...).Build()
}

// StartKeyboard кнопки начала: каждый слот сетки
func StartKeyboard(draft string) *models.InlineKeyboardMarkup {
	buttons := make([]models.InlineKeyboardButton, 0, grid.SlotsPerDay)
	for slot := 0; slot < grid.SlotsPerDay; slot++ {
		t := grid.SlotTime(slot)
		buttons = append(buttons, keyboard.Button(t.String(), DraftData(AddStart, draft, ClockData(t))))
	}
	return keyboard.NewBuilder().Wrap(4, buttons...).Build()
}

// EndKeyboard кнопки конца: границы слотов после начала, до 17:00 включительно.
// Если начало не распознано, предлагаются все границы.
func EndKeyboard(draft, start string) *models.InlineKeyboardMarkup {
	from := grid.StartHour * 60
	if s, err := model.ParseClock(start); err == nil {
		from = s.Minutes()
	}

	var buttons []models.InlineKeyboardButton
	for slot := 1; slot <= grid.SlotsPerDay; slot++ {
		t := grid.SlotTime(slot)
		if t.Minutes() <= from {
			continue
		}
		buttons = append(buttons, keyboard.Button(t.String(), DraftData(AddEnd, draft, ClockData(t))))
	}
	return keyboard.NewBuilder().Wrap(4, buttons...).Build()
}

// normalizeClock приводит "9:5" к "09:05"; нераспознанный ввод остаётся как есть
func normalizeClock(text string) string {
	c, err := model.ParseClock(text)
	if err != nil {
		return text
	}
	return c.String()
}

func (d *AddDialog) send(ctx context.Context, b *bot.Bot, chatID int64, text string, markup *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if markup != nil && len(markup.InlineKeyboard) > 0 {
		params.ReplyMarkup = markup
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		d.logger.Error("Failed to send dialog message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}
