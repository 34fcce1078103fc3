package state

import (
	"sync"

	"github.com/google/uuid"
)

// Manager управляет состояниями пользователей
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

// Begin начинает новый диалог: сбрасывает старые данные и выдаёт id черновика.
// id попадает в callback data кнопок, чтобы кнопки старых диалогов игнорировались.
func (sm *Manager) Begin(telegramID int64, state UserState) string {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	draft := uuid.NewString()
	sm.states[telegramID] = &UserData{
		State: state,
		Data:  map[string]interface{}{KeyDraft: draft},
	}
	return draft
}

// Draft возвращает id черновика текущего диалога
func (sm *Manager) Draft(telegramID int64) string {
	v, ok := sm.GetData(telegramID, KeyDraft)
	if !ok {
		return ""
	}
	draft, _ := v.(string)
	return draft
}

// IsCurrent проверяет что кнопка относится к текущему диалогу и шагу
func (sm *Manager) IsCurrent(telegramID int64, draft string, state UserState) bool {
	return draft != "" && sm.Draft(telegramID) == draft && sm.GetState(telegramID) == state
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние пользователя
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		// Если состояние None, удаляем запись
		delete(sm.states, telegramID)
		return
	}

	if _, exists := sm.states[telegramID]; !exists {
		sm.states[telegramID] = &UserData{
			State: state,
			Data:  make(map[string]interface{}),
		}
	} else {
		sm.states[telegramID].State = state
	}
}

// GetData получает временные данные пользователя
func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// GetString получает строковые данные, пустая строка если нет
func (sm *Manager) GetString(telegramID int64, key string) string {
	v, ok := sm.GetData(telegramID, key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// SetData устанавливает временные данные пользователя
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.states[telegramID]; !exists {
		// Создаём запись если её нет
		sm.states[telegramID] = &UserData{
			State: StateNone,
			Data:  make(map[string]interface{}),
		}
	}
	sm.states[telegramID].Data[key] = value
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}
