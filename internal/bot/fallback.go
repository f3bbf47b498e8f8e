package bot

import (
	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/m3rciful/specialtybot/core/telegram/helpers"
)

// UnknownText answers free text with a hint to use /start.
func (b *Bot) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, startHint)
	}
}

// UnknownDocument answers uploads the same way as free text.
func (b *Bot) UnknownDocument() tele.HandlerFunc {
	return b.UnknownText()
}

// UnknownCallback treats a button without the nav unique, such as one from an
// older keyboard, as a malformed token.
func (b *Bot) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		_ = c.Respond()
		var data string
		if cb := c.Callback(); cb != nil {
			data = cb.Data
		}
		return b.show(c, data)
	}
}
