package middleware

import (
	"testing"
	"time"

	tele "gopkg.in/telebot.v4"
)

type fakeContext struct {
	tele.Context
	upd       tele.Update
	user      *tele.User
	values    map[string]any
	responded int
}

func newContext(userID int64, upd tele.Update) *fakeContext {
	c := &fakeContext{upd: upd, values: map[string]any{}}
	if userID != 0 {
		c.user = &tele.User{ID: userID}
	}
	return c
}

func (f *fakeContext) Update() tele.Update        { return f.upd }
func (f *fakeContext) Sender() *tele.User         { return f.user }
func (f *fakeContext) Chat() *tele.Chat           { return nil }
func (f *fakeContext) Callback() *tele.Callback   { return f.upd.Callback }
func (f *fakeContext) Get(key string) any         { return f.values[key] }
func (f *fakeContext) Set(key string, v any)      { f.values[key] = v }
func (f *fakeContext) Respond(...*tele.CallbackResponse) error {
	f.responded++
	return nil
}

func counting(n *int) tele.HandlerFunc {
	return func(tele.Context) error {
		*n++
		return nil
	}
}

func TestUpdateKind(t *testing.T) {
	cases := map[string]tele.Update{
		"callback":     {Callback: &tele.Callback{}},
		"message":      {Message: &tele.Message{}},
		"inline_query": {Query: &tele.Query{}},
		"other":        {},
	}
	for want, upd := range cases {
		if got := UpdateKind(upd); got != want {
			t.Fatalf("UpdateKind = %q, want %q", got, want)
		}
	}
}

func TestAdminOnly(t *testing.T) {
	var allowed, rejected int
	h := AdminOnly(5, counting(&rejected))(counting(&allowed))

	for _, id := range []int64{5, 6, 0} {
		if err := h(newContext(id, tele.Update{Message: &tele.Message{}})); err != nil {
			t.Fatalf("handler: %v", err)
		}
	}
	if allowed != 1 || rejected != 2 {
		t.Fatalf("allowed=%d rejected=%d", allowed, rejected)
	}
	if IsAdmin(&tele.User{ID: 5}, 0) {
		t.Fatal("zero admin id must reject everyone")
	}
}

func TestRateLimitPerUser(t *testing.T) {
	now := time.Unix(0, 0)
	l := &limiter{interval: time.Second, now: func() time.Time { return now }, seen: map[int64]time.Time{}}
	var served int
	h := rateLimit(l, []string{"callback"})(counting(&served))
	msg := tele.Update{Message: &tele.Message{}}

	_ = h(newContext(1, msg))
	_ = h(newContext(1, msg))
	_ = h(newContext(2, msg))
	if served != 2 {
		t.Fatalf("served = %d, want 2", served)
	}

	cb := newContext(1, tele.Update{Callback: &tele.Callback{}})
	_ = h(cb)
	if served != 3 || cb.responded != 0 {
		t.Fatalf("excluded callback: served=%d responded=%d", served, cb.responded)
	}

	now = now.Add(time.Second)
	_ = h(newContext(1, msg))
	if served != 4 {
		t.Fatalf("served after interval = %d, want 4", served)
	}
}

func TestRateLimitAnswersDroppedCallback(t *testing.T) {
	now := time.Unix(0, 0)
	l := &limiter{interval: time.Second, now: func() time.Time { return now }, seen: map[int64]time.Time{}}
	var served int
	h := rateLimit(l, nil)(counting(&served))
	upd := tele.Update{Callback: &tele.Callback{Data: "\fnav|main_menu"}}

	_ = h(newContext(1, upd))
	dropped := newContext(1, upd)
	_ = h(dropped)
	if served != 1 || dropped.responded != 1 {
		t.Fatalf("served=%d responded=%d", served, dropped.responded)
	}
}

func TestRecoverReturnsError(t *testing.T) {
	h := Recover(func(tele.Context) error { panic("boom") })
	err := h(newContext(1, tele.Update{}))
	if err == nil {
		t.Fatal("panic was not turned into an error")
	}
}
