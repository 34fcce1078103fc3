package keyboard

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
)

func TestBuilder_Wrap(t *testing.T) {
	var buttons []models.InlineKeyboardButton
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		buttons = append(buttons, Button(s, "cb:"+s))
	}

	kb := NewBuilder().Wrap(2, buttons...).Row(Button("x", "cb:x")).Build()

	assert.Len(t, kb.InlineKeyboard, 4)
	assert.Len(t, kb.InlineKeyboard[0], 2)
	assert.Len(t, kb.InlineKeyboard[2], 1)
	assert.Equal(t, "cb:e", kb.InlineKeyboard[2][0].CallbackData)
	assert.Equal(t, "x", kb.InlineKeyboard[3][0].Text)
}

func TestBuilder_EmptyRowSkipped(t *testing.T) {
	b := NewBuilder().Row()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 1, NewBuilder().Wrap(0, Button("a", "a")).Len())
}
