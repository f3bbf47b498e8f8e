// Package callbacks splits inline button data into the handler unique and
// the payload.
package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Split returns the unique and payload of cb. telebot encodes button data as
// "\f<unique>|<payload>"; data without the leading \f is all unique.
func Split(cb *tele.Callback) (unique, payload string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	unique, payload, _ = strings.Cut(strings.TrimPrefix(cb.Data, "\f"), "|")
	return strings.TrimSpace(unique), payload
}

// Payload is the payload of the callback on c.
func Payload(c tele.Context) string {
	_, payload := Split(c.Callback())
	return payload
}
