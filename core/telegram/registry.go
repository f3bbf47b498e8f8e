package telegram

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Command is a slash command and its menu entry.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	// AdminOnly commands run only for the configured admin and never appear in the menu.
	AdminOnly bool
	Hidden    bool
}

// Registry collects commands and callback handlers before Run. It is not
// safe for registration after Run starts.
type Registry struct {
	commands  map[string]Command
	callbacks map[string]tele.HandlerFunc
	notFound  tele.HandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{
		commands:  map[string]Command{},
		callbacks: map[string]tele.HandlerFunc{},
		notFound: func(c tele.Context) error {
			return c.Respond(&tele.CallbackResponse{Text: "This button is no longer supported."})
		},
	}
}

// RegisterCommand adds name, which must start with a slash.
func (r *Registry) RegisterCommand(name string, cmd Command) error {
	switch {
	case !strings.HasPrefix(name, "/") || len(name) < 2:
		return fmt.Errorf("telegram: command %q must start with /", name)
	case cmd.Handler == nil:
		return fmt.Errorf("telegram: command %s has no handler", name)
	case cmd.Description == "":
		return fmt.Errorf("telegram: command %s has no description", name)
	}
	if _, dup := r.commands[name]; dup {
		return fmt.Errorf("telegram: command %s registered twice", name)
	}
	r.commands[name] = cmd
	return nil
}

// Command looks name up with or without its leading slash.
func (r *Registry) Command(name string) (Command, bool) {
	name = strings.TrimSpace(name)
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	cmd, ok := r.commands[name]
	return cmd, ok
}

// CommandNames lists every registered command, sorted.
func (r *Registry) CommandNames() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MenuCommands lists the commands shown in the Telegram command menu.
func (r *Registry) MenuCommands() []tele.Command {
	var menu []tele.Command
	for _, name := range r.CommandNames() {
		cmd := r.commands[name]
		if cmd.Hidden || cmd.AdminOnly {
			continue
		}
		menu = append(menu, tele.Command{Text: strings.TrimPrefix(name, "/"), Description: cmd.Description})
	}
	return menu
}

// RegisterCallback binds the inline buttons created with unique to h.
func (r *Registry) RegisterCallback(unique string, h tele.HandlerFunc) error {
	if unique == "" || h == nil {
		return errors.New("telegram: callback needs a unique and a handler")
	}
	if _, dup := r.callbacks[unique]; dup {
		return fmt.Errorf("telegram: callback %s registered twice", unique)
	}
	r.callbacks[unique] = h
	return nil
}

func (r *Registry) Callback(unique string) (tele.HandlerFunc, bool) {
	h, ok := r.callbacks[unique]
	return h, ok
}

// SetCallbackNotFound replaces the handler for buttons with an unregistered unique.
func (r *Registry) SetCallbackNotFound(h tele.HandlerFunc) {
	if h != nil {
		r.notFound = h
	}
}

func (r *Registry) CallbackNotFound() tele.HandlerFunc {
	return r.notFound
}
