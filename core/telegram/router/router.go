// Package router turns a Registry into telebot routes. Every routed handler
// logs one handler.handled line and feeds the handler latency histogram.
package router

import (
	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/specialtybot/core/telegram"
	"github.com/m3rciful/specialtybot/core/telegram/callbacks"
	"github.com/m3rciful/specialtybot/core/telegram/middleware"
)

// Commands returns a route per registered command. Admin-only commands pass
// other users to reject.
func Commands(reg *tg.Registry, adminID int64, reject tele.HandlerFunc) []tg.Route {
	names := reg.CommandNames()
	routes := make([]tg.Route, 0, len(names))
	for _, name := range names {
		cmd, _ := reg.Command(name)
		h := summarized(handlerName(name), cmd.Handler)
		if cmd.AdminOnly {
			h = middleware.AdminOnly(adminID, reject)(h)
		}
		routes = append(routes, tg.Route{Endpoint: name, Handler: h})
	}
	return routes
}

// Callbacks routes inline button presses by unique. The press is answered
// before the handler runs; unknown uniques go to reg.CallbackNotFound.
func Callbacks(reg *tg.Registry) tg.Route {
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler: func(c tele.Context) error {
			unique, _ := callbacks.Split(c.Callback())
			h, ok := reg.Callback(unique)
			if !ok {
				return summarized("callback.not_found", reg.CallbackNotFound())(c)
			}
			_ = c.Respond()
			return summarized("callback."+handlerName(unique), h)(c)
		},
	}
}

// Text routes free text and uploads. Text naming a public command, with or
// without its slash, runs that command.
func Text(reg *tg.Registry, unknownText, unknownDocument tele.HandlerFunc) []tg.Route {
	onText := func(c tele.Context) error {
		if cmd, ok := reg.Command(c.Text()); ok && !cmd.AdminOnly {
			return summarized(handlerName(c.Text()), cmd.Handler)(c)
		}
		return summarized("unknown_text", unknownText)(c)
	}
	return []tg.Route{
		{Endpoint: tele.OnText, Handler: onText},
		{Endpoint: tele.OnDocument, Handler: summarized("unknown_document", unknownDocument)},
	}
}
