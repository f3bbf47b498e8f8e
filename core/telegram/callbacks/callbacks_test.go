package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestSplit(t *testing.T) {
	cases := map[string]struct {
		cb      *tele.Callback
		unique  string
		payload string
	}{
		"nil":          {nil, "", ""},
		"button":       {&tele.Callback{Data: "\fnav|course_3_0"}, "nav", "course_3_0"},
		"no payload":   {&tele.Callback{Data: "\fnav"}, "nav", ""},
		"pipe in data": {&tele.Callback{Data: "\fnav|a|b"}, "nav", "a|b"},
		"pre-split":    {&tele.Callback{Unique: "nav", Data: "semester_2"}, "nav", "semester_2"},
		"plain data":   {&tele.Callback{Data: "main_menu"}, "main_menu", ""},
	}
	for name, tc := range cases {
		unique, payload := Split(tc.cb)
		if unique != tc.unique || payload != tc.payload {
			t.Fatalf("%s: Split = (%q, %q), want (%q, %q)", name, unique, payload, tc.unique, tc.payload)
		}
	}
}
