package common

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"sync"
	"testing"

	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/render"
	"github.com/Freeeeeet/timetable_bot/internal/repository"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sentRequest struct {
	method string
	text   string
}

// fakeTelegram отвечает ok на любой метод Bot API и запоминает запросы
type fakeTelegram struct {
	mu   sync.Mutex
	sent []sentRequest
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := sentRequest{method: path.Base(r.URL.Path)}

	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "multipart/"):
		if err := r.ParseMultipartForm(32 << 20); err == nil {
			req.text = r.FormValue("text")
		}
	case strings.HasPrefix(contentType, "application/json"):
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			req.text, _ = body["text"].(string)
		}
	}

	f.mu.Lock()
	f.sent = append(f.sent, req)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if req.method == "answerCallbackQuery" {
		io.WriteString(w, `{"ok":true,"result":true}`)
		return
	}
	io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":100,"type":"private"}}}`)
}

func (f *fakeTelegram) requests() []sentRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentRequest(nil), f.sent...)
}

func (f *fakeTelegram) lastText() string {
	reqs := f.requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].method == "sendMessage" {
			return reqs[i].text
		}
	}
	return ""
}

func newTestBot(t *testing.T) (*fakeTelegram, *bot.Bot) {
	t.Helper()

	api := &fakeTelegram{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	b, err := bot.New("123456:test-token", bot.WithServerURL(srv.URL), bot.WithSkipGetMe())
	require.NoError(t, err)
	return api, b
}

type dialogFixture struct {
	ctx      context.Context
	api      *fakeTelegram
	bot      *bot.Bot
	schedule *service.ScheduleService
	states   *state.Manager
	dialog   *AddDialog
	chatID   int64
	userID   int64
}

func newDialogFixture(t *testing.T) *dialogFixture {
	api, b := newTestBot(t)

	renderer, err := render.NewImageRenderer("")
	require.NoError(t, err)

	logger := zap.NewNop()
	schedule := service.NewScheduleService(repository.NewMemoryBlobRepository(), "", logger)
	states := state.NewManager()
	presenter := NewPresenter(schedule, renderer, logger)

	return &dialogFixture{
		ctx:      context.Background(),
		api:      api,
		bot:      b,
		schedule: schedule,
		states:   states,
		dialog:   NewAddDialog(schedule, states, presenter, logger),
		chatID:   100,
		userID:   42,
	}
}

func (f *dialogFixture) text(s string) bool {
	return f.dialog.HandleText(f.ctx, f.bot, &models.Message{
		From: &models.User{ID: f.userID},
		Chat: models.Chat{ID: f.chatID},
		Text: s,
	})
}

func (f *dialogFixture) press(data string) error {
	return f.dialog.HandleCallback(f.ctx, f.bot, &models.CallbackQuery{
		ID:   "cb-1",
		From: models.User{ID: f.userID},
		Data: data,
		Message: models.MaybeInaccessibleMessage{
			Message: &models.Message{Chat: models.Chat{ID: f.chatID}},
		},
	})
}

func (f *dialogFixture) step() state.UserState {
	return f.states.GetState(f.userID)
}

func TestAddDialog_TextAndButtons(t *testing.T) {
	f := newDialogFixture(t)

	// без диалога текст не обрабатывается
	assert.False(t, f.text("자료구조"))

	f.dialog.Start(f.ctx, f.bot, f.chatID, f.userID)
	draft := f.states.Draft(f.userID)
	require.NotEmpty(t, draft)
	assert.Equal(t, state.StateAddName, f.step())

	require.True(t, f.text("  자료구조  "))
	assert.Equal(t, state.StateAddClassroom, f.step())
	assert.Contains(t, f.api.lastText(), "자료구조")

	require.True(t, f.text(EmptyClassroom))
	assert.Equal(t, state.StateAddDay, f.step())

	// день только кнопкой, шаг не меняется
	require.True(t, f.text("Wednesday"))
	assert.Equal(t, state.StateAddDay, f.step())
	assert.Contains(t, f.api.lastText(), "버튼")

	require.NoError(t, f.press(DraftData(AddDay, draft, "2")))
	assert.Equal(t, state.StateAddStart, f.step())

	// кнопка уже пройденного шага
	assert.ErrorIs(t, f.press(DraftData(AddDay, draft, "0")), ErrStaleDialog)
	assert.Equal(t, state.StateAddStart, f.step())

	require.NoError(t, f.press(DraftData(AddStart, draft, ClockData(model.ClockTime{Hour: 10, Minute: 30}))))
	assert.Equal(t, state.StateAddEnd, f.step())

	require.True(t, f.text("12:0"))
	assert.Equal(t, state.StateNone, f.step())

	lectures := f.schedule.List()
	require.Len(t, lectures, 1)
	assert.Equal(t, "자료구조", lectures[0].Name)
	assert.Empty(t, lectures[0].Classroom)
	assert.Equal(t, model.Wednesday, lectures[0].Day)
	assert.Equal(t, "10:30", lectures[0].StartTime)
	assert.Equal(t, "12:00", lectures[0].EndTime)

	// после добавления: карточка, список и сетка
	var methods []string
	for _, r := range f.api.requests() {
		methods = append(methods, r.method)
	}
	assert.Contains(t, methods, "sendPhoto")

	var added bool
	for _, r := range f.api.requests() {
		if strings.Contains(r.text, "강의를 추가했어요") {
			added = true
		}
	}
	assert.True(t, added)
	assert.Contains(t, f.api.lastText(), "내 강의 (1)")

	// кнопки завершённого диалога устарели
	assert.ErrorIs(t, f.press(DraftData(AddEnd, draft, "1300")), ErrStaleDialog)
	assert.Len(t, f.schedule.List(), 1)
}

func TestAddDialog_ButtonsOnly(t *testing.T) {
	f := newDialogFixture(t)

	f.dialog.Start(f.ctx, f.bot, f.chatID, f.userID)
	draft := f.states.Draft(f.userID)

	require.True(t, f.text("Operating Systems"))
	require.NoError(t, f.press(DraftData(AddSkipRoom, draft, "")))
	require.NoError(t, f.press(DraftData(AddDay, draft, "4")))
	require.NoError(t, f.press(DraftData(AddStart, draft, "0900")))
	require.NoError(t, f.press(DraftData(AddEnd, draft, "1030")))

	lectures := f.schedule.List()
	require.Len(t, lectures, 1)
	assert.Equal(t, model.Friday, lectures[0].Day)
	assert.Empty(t, lectures[0].Classroom)
	assert.Equal(t, "09:00", lectures[0].StartTime)
	assert.Equal(t, "10:30", lectures[0].EndTime)
}

func TestAddDialog_RestartDropsOldDraft(t *testing.T) {
	f := newDialogFixture(t)

	f.dialog.Start(f.ctx, f.bot, f.chatID, f.userID)
	old := f.states.Draft(f.userID)
	require.True(t, f.text("A"))

	f.dialog.Start(f.ctx, f.bot, f.chatID, f.userID)
	assert.NotEqual(t, old, f.states.Draft(f.userID))
	assert.Equal(t, state.StateAddName, f.step())

	assert.ErrorIs(t, f.press(DraftData(AddSkipRoom, old, "")), ErrStaleDialog)
	assert.Equal(t, state.StateAddName, f.step())

	assert.True(t, f.dialog.Cancel(f.userID))
	assert.False(t, f.dialog.Cancel(f.userID))
	assert.False(t, f.text("B"))
	assert.Empty(t, f.schedule.List())
}
