package formatting

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/Freeeeeet/timetable_bot/internal/grid"
	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// EmptyListMessage сообщение для пустого списка
const EmptyListMessage = "아직 추가된 강의가 없어요! /add 로 강의를 추가해보세요."

// MaxMessageLength лимит Telegram на текст сообщения, в UTF-16 единицах
const MaxMessageLength = 4096

// maxFieldRunes длиннее название и аудитория в карточке обрезаются,
// чтобы одна карточка всегда помещалась в сообщение
const maxFieldRunes = 200

// LecturePage одно сообщение списка и занятия в нём
type LecturePage struct {
	Text     string
	Lectures []*model.Lecture
}

// FormatLectureCard карточка одного занятия
func FormatLectureCard(l *model.Lecture) string {
	return fmt.Sprintf(
		"📖 <b>%s</b>\n"+
			"<b>강의실:</b> %s\n"+
			"<b>요일:</b> %s요일\n"+
			"<b>시간:</b> %s ~ %s",
		EscapeHTML(clip(l.Name, maxFieldRunes)),
		EscapeHTML(clip(l.Classroom, maxFieldRunes)),
		EscapeHTML(string(l.Day)),
		EscapeHTML(l.StartTime),
		EscapeHTML(l.EndTime),
	)
}

// PaginateLectureList раскладывает карточки по сообщениям не длиннее limit.
// Пустой список даёт одну страницу с EmptyListMessage.
func PaginateLectureList(lectures []*model.Lecture, limit int) []LecturePage {
	if len(lectures) == 0 {
		return []LecturePage{{Text: EmptyListMessage}}
	}

	const sep = "\n\n"
	// заголовок с номером страницы не длиннее этого
	budget := limit - textLength(listHeader(len(lectures), len(lectures), len(lectures))+sep)

	var (
		groups [][]*model.Lecture
		bodies []string
		cur    []*model.Lecture
		body   strings.Builder
		size   int
	)
	flush := func() {
		groups = append(groups, cur)
		bodies = append(bodies, body.String())
		cur = nil
		body.Reset()
		size = 0
	}

	for _, l := range lectures {
		card := FormatLectureCard(l)
		cardSize := textLength(card)
		if len(cur) > 0 {
			cardSize += textLength(sep)
		}
		if len(cur) > 0 && size+cardSize > budget {
			flush()
			cardSize = textLength(card)
		}
		if len(cur) > 0 {
			body.WriteString(sep)
		}
		body.WriteString(card)
		size += cardSize
		cur = append(cur, l)
	}
	flush()

	pages := make([]LecturePage, len(groups))
	for i := range groups {
		header := listHeader(len(lectures), i+1, len(groups))
		pages[i] = LecturePage{
			Text:     header + sep + bodies[i],
			Lectures: groups[i],
		}
	}
	return pages
}

func listHeader(total, page, pages int) string {
	if pages == 1 {
		return fmt.Sprintf("📚 <b>내 강의 (%d)</b>", total)
	}
	return fmt.Sprintf("📚 <b>내 강의 (%d)</b> %d/%d", total, page, pages)
}

// textLength длина в UTF-16 единицах, как её считает Telegram
func textLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func clip(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes-1]) + "…"
}

// FormatGridText текстовая версия сетки (моноширинный блок)
// ■ метка, ▒ продолжение, · пусто
func FormatGridText(g *grid.Grid) string {
	var sb strings.Builder
	sb.WriteString("<pre>")
	sb.WriteString("      ")
	for _, d := range model.Weekdays {
		sb.WriteString(" " + string(d))
	}
	sb.WriteString("\n")

	for s, row := range g.Rows() {
		sb.WriteString(grid.SlotTime(s).String())
		sb.WriteString(" ")
		for _, c := range row {
			switch c.Kind() {
			case grid.CellLabel:
				sb.WriteString("  ■")
			case grid.CellContinuation:
				sb.WriteString("  ▒")
			default:
				sb.WriteString("  ·")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("</pre>")

	return sb.String()
}

// FormatLabelButton подпись кнопки удаления для ячейки-метки
func FormatLabelButton(c *grid.Cell) string {
	return fmt.Sprintf("🗑 %s %s %s", c.Day, c.Time, c.Label.Text)
}

// EscapeHTML экранирует текст для ParseMode HTML
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

var htmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
