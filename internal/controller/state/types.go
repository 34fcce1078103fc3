package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояния диалога добавления занятия
	StateAddName      UserState = "add_name"
	StateAddClassroom UserState = "add_classroom"
	StateAddDay       UserState = "add_day"
	StateAddStart     UserState = "add_start"
	StateAddEnd       UserState = "add_end"
)

// Ключи временных данных диалога
const (
	KeyDraft     = "draft"
	KeyName      = "name"
	KeyClassroom = "classroom"
	KeyDay       = "day"
	KeyStart     = "start"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
