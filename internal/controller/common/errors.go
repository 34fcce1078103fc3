package common

import "errors"

// Общие ошибки для обработчиков
var (
	ErrNoMessage       = errors.New("no message in callback")
	ErrInvalidFormat   = errors.New("invalid callback format")
	ErrLectureNotFound = errors.New("lecture not found")
	ErrStaleDialog     = errors.New("dialog is no longer active")
	ErrNotOwner        = errors.New("user is not the timetable owner")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoMessage):
		return "❌ 메시지를 처리할 수 없어요"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ 잘못된 요청이에요"
	case errors.Is(err, ErrLectureNotFound):
		return "이미 삭제된 강의예요"
	case errors.Is(err, ErrStaleDialog):
		return "⌛ 지난 입력이에요. /add 로 다시 시작해주세요"
	case errors.Is(err, ErrNotOwner):
		return "🔒 이 시간표는 주인만 사용할 수 있어요"
	default:
		return "❌ 오류가 발생했어요. 잠시 후 다시 시도해주세요"
	}
}
