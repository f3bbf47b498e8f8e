// Package view renders menu screens into text plus button options.
// Every function here is pure: the same screen and content always yield the
// same view.
package view

import (
	"fmt"

	"github.com/m3rciful/specialtybot/internal/content"
	"github.com/m3rciful/specialtybot/internal/menu"
)

const (
	maxLabelRunes = 30
	cutLabelRunes = 27
	ellipsis      = "..."
)

// Option is a button of a rendered view.
type Option struct {
	Label string
	Token string
}

// View is the text and options shown for a screen.
type View struct {
	Text    string
	Options []Option
}

// Label shortens button labels longer than 30 runes to 27 runes plus "...".
func Label(s string) string {
	r := []rune(s)
	if len(r) <= maxLabelRunes {
		return s
	}
	return string(r[:cutLabelRunes]) + ellipsis
}

// Options converts graph edges into button options.
func Options(edges []menu.Edge) []Option {
	opts := make([]Option, 0, len(edges))
	for _, e := range edges {
		opts = append(opts, Option{Label: Label(e.Label), Token: menu.Encode(e.To)})
	}
	return opts
}

// Render produces the view of s. It fails only when s references content that
// does not exist.
func Render(s menu.Screen, c *content.Content) (View, error) {
	edges, err := menu.Edges(s, c)
	if err != nil {
		return View{}, err
	}

	var text string
	switch s.Kind {
	case menu.MainMenu:
		text = MainMenuText
	case menu.SpecialtyInfo:
		text = SpecialtyInfo(c)
	case menu.CurriculumMenu:
		text = CurriculumMenuText
	case menu.SemesterView:
		sem, err := c.Semester(s.Semester)
		if err != nil {
			return View{}, err
		}
		text = SemesterInfo(s.Semester, sem)
	case menu.CourseDetail:
		course, err := c.Course(s.Semester, s.Course)
		if err != nil {
			return View{}, err
		}
		text = CourseDetails(course)
	case menu.Objectives:
		text = Objectives(c)
	case menu.Employability:
		text = Employability(c)
	case menu.FurtherStudy:
		text = FurtherStudy(c)
	case menu.Statistics:
		text = Statistics(c)
	default:
		return View{}, fmt.Errorf("view: no renderer for %s", s.Kind)
	}
	return View{Text: text, Options: Options(edges)}, nil
}

// Welcome is the view sent on session start.
func Welcome() View {
	return View{Text: WelcomeText, Options: Options(menu.MainEdges())}
}

// Invalid is the fallback view for tokens that resolve to no screen.
func Invalid() View {
	return View{Text: InvalidText, Options: Options(menu.MainEdges())}
}
