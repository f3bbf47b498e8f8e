package router

import (
	"errors"
	"fmt"
	"testing"

	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/specialtybot/core/telegram"
)

type fakeContext struct {
	tele.Context
	text      string
	cb        *tele.Callback
	user      *tele.User
	values    map[string]any
	responded int
}

func (f *fakeContext) Text() string             { return f.text }
func (f *fakeContext) Callback() *tele.Callback { return f.cb }
func (f *fakeContext) Sender() *tele.User       { return f.user }
func (f *fakeContext) Chat() *tele.Chat         { return nil }
func (f *fakeContext) Update() tele.Update      { return tele.Update{ID: 3, Callback: f.cb} }
func (f *fakeContext) Get(key string) any       { return f.values[key] }
func (f *fakeContext) Set(key string, v any)    { f.values[key] = v }
func (f *fakeContext) Respond(...*tele.CallbackResponse) error {
	f.responded++
	return nil
}

func newContext() *fakeContext {
	return &fakeContext{values: map[string]any{}, user: &tele.User{ID: 7}}
}

func record(calls *[]string, name string) tele.HandlerFunc {
	return func(tele.Context) error {
		*calls = append(*calls, name)
		return nil
	}
}

func testRegistry(t *testing.T, calls *[]string) *tg.Registry {
	t.Helper()
	reg := tg.NewRegistry()
	for _, err := range []error{
		reg.RegisterCommand("/start", tg.Command{Handler: record(calls, "start"), Description: "menu"}),
		reg.RegisterCommand("/usage", tg.Command{Handler: record(calls, "usage"), Description: "usage", AdminOnly: true}),
		reg.RegisterCallback("nav", record(calls, "nav")),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	reg.SetCallbackNotFound(record(calls, "not_found"))
	return reg
}

func TestCommandsGuardAdminOnly(t *testing.T) {
	var calls []string
	routes := Commands(testRegistry(t, &calls), 1, record(&calls, "rejected"))
	byName := map[any]tele.HandlerFunc{}
	for _, r := range routes {
		byName[r.Endpoint] = r.Handler
	}

	_ = byName["/start"](newContext())
	_ = byName["/usage"](newContext())
	admin := newContext()
	admin.user = &tele.User{ID: 1}
	_ = byName["/usage"](admin)

	if fmt.Sprint(calls) != "[start rejected usage]" {
		t.Fatalf("calls = %v", calls)
	}
}

func TestCallbacksDispatchByUnique(t *testing.T) {
	var calls []string
	route := Callbacks(testRegistry(t, &calls))
	if route.Endpoint != tele.OnCallback {
		t.Fatalf("endpoint = %v", route.Endpoint)
	}

	known := newContext()
	known.cb = &tele.Callback{Data: "\fnav|objectives"}
	_ = route.Handler(known)
	unknown := newContext()
	unknown.cb = &tele.Callback{Data: "\flegacy|1"}
	_ = route.Handler(unknown)

	if fmt.Sprint(calls) != "[nav not_found]" {
		t.Fatalf("calls = %v", calls)
	}
	if known.responded != 1 || unknown.responded != 0 {
		t.Fatalf("responded known=%d unknown=%d", known.responded, unknown.responded)
	}
}

func TestTextRunsPublicCommandsOnly(t *testing.T) {
	var calls []string
	routes := Text(testRegistry(t, &calls), record(&calls, "hint"), record(&calls, "doc"))
	onText := routes[0].Handler

	for _, text := range []string{"start", "usage", "hello"} {
		c := newContext()
		c.text = text
		_ = onText(c)
	}
	_ = routes[1].Handler(newContext())

	if fmt.Sprint(calls) != "[start hint hint doc]" {
		t.Fatalf("calls = %v", calls)
	}
}

type codedErr struct{}

func (codedErr) Error() string { return "bad token" }
func (codedErr) Code() string  { return "invalid_token" }

func TestSummarizedReturnsHandlerError(t *testing.T) {
	want := fmt.Errorf("show: %w", codedErr{})
	h := summarized("nav", func(tele.Context) error { return want })
	if err := h(newContext()); !errors.Is(err, want) {
		t.Fatalf("err = %v", err)
	}
	if got := errorCode(want); got != "invalid_token" {
		t.Fatalf("errorCode = %q", got)
	}
	if got := errorCode(errors.New("x")); got != "internal" {
		t.Fatalf("errorCode = %q", got)
	}
}

func TestHandlerName(t *testing.T) {
	cases := map[string]string{"": "unknown", "/Start": "start", " nav ": "nav", "Main Menu": "main_menu"}
	for in, want := range cases {
		if got := handlerName(in); got != want {
			t.Fatalf("handlerName(%q) = %q, want %q", in, got, want)
		}
	}
}
