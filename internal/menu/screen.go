// Package menu defines the navigation graph of the bot: the screens a user can
// reach, the tokens carried by inline buttons, and the edges between screens.
package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/specialtybot/internal/content"
)

// Kind enumerates the screens of the menu graph.
type Kind uint8

const (
	// Invalid is the zero Kind; it is never produced by Decode.
	Invalid Kind = iota
	MainMenu
	SpecialtyInfo
	CurriculumMenu
	SemesterView
	CourseDetail
	Objectives
	Employability
	FurtherStudy
	Statistics
)

const sep = "_"

var kindNames = map[Kind]string{
	MainMenu:       "main_menu",
	SpecialtyInfo:  "specialty_info",
	CurriculumMenu: "curriculum_menu",
	SemesterView:   "semester",
	CourseDetail:   "course",
	Objectives:     "objectives",
	Employability:  "employability",
	FurtherStudy:   "further_study",
	Statistics:     "statistics",
}

var namesToKind = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// String returns the token name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// arity is the number of integer parameters the kind carries in its token.
func (k Kind) arity() int {
	switch k {
	case SemesterView:
		return 1
	case CourseDetail:
		return 2
	default:
		return 0
	}
}

// Screen is a node of the menu graph. Semester is 1-based and only meaningful
// for SemesterView and CourseDetail; Course is 0-based and only meaningful for
// CourseDetail.
type Screen struct {
	Kind     Kind
	Semester int
	Course   int
}

// Main returns the main menu screen.
func Main() Screen { return Screen{Kind: MainMenu} }

// Semester returns the semester view of semester n.
func Semester(n int) Screen { return Screen{Kind: SemesterView, Semester: n} }

// Course returns the detail screen of course i of semester n.
func Course(n, i int) Screen { return Screen{Kind: CourseDetail, Semester: n, Course: i} }

// Of returns a parameterless screen of kind k.
func Of(k Kind) Screen { return Screen{Kind: k} }

// ErrInvalidToken is returned by Decode for tokens that name no screen.
var ErrInvalidToken = errors.New("menu: invalid token")

// TokenError describes why a token was rejected.
type TokenError struct {
	Token  string
	Reason string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("menu: invalid token %q: %s", e.Token, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidToken) hold.
func (e *TokenError) Is(target error) bool { return target == ErrInvalidToken }

// Code is picked up by the router as err_code.
func (e *TokenError) Code() string { return "invalid_token" }

// Encode renders s as a callback token: "statistics", "semester_3", "course_3_0".
func Encode(s Screen) string {
	name := s.Kind.String()
	switch s.Kind.arity() {
	case 1:
		return name + sep + strconv.Itoa(s.Semester)
	case 2:
		return name + sep + strconv.Itoa(s.Semester) + sep + strconv.Itoa(s.Course)
	default:
		return name
	}
}

// Decode parses a token produced by Encode. Semester numbers must be within
// 1..content.SemesterCount; course indices are only checked for sign here,
// their upper bound depends on the content and is checked on lookup.
func Decode(token string) (Screen, error) {
	if token == "" {
		return Screen{}, &TokenError{Token: token, Reason: "empty"}
	}
	kind, rest, err := splitKind(token)
	if err != nil {
		return Screen{}, err
	}

	var params []string
	if rest != "" {
		params = strings.Split(rest, sep)
	}
	if len(params) != kind.arity() {
		return Screen{}, &TokenError{Token: token, Reason: fmt.Sprintf("%s takes %d parameter(s)", kind, kind.arity())}
	}
	nums := make([]int, len(params))
	for i, p := range params {
		n, err := parseIndex(p)
		if err != nil {
			return Screen{}, &TokenError{Token: token, Reason: err.Error()}
		}
		nums[i] = n
	}

	s := Screen{Kind: kind}
	if kind.arity() >= 1 {
		s.Semester = nums[0]
		if s.Semester < 1 || s.Semester > content.SemesterCount {
			return Screen{}, &TokenError{Token: token, Reason: "semester out of range"}
		}
	}
	if kind.arity() == 2 {
		s.Course = nums[1]
	}
	return s, nil
}

// splitKind matches the longest known name that prefixes token. Names contain
// the separator themselves ("main_menu"), so a plain split is ambiguous.
func splitKind(token string) (Kind, string, error) {
	if k, ok := namesToKind[token]; ok {
		return k, "", nil
	}
	for i := len(token) - 1; i > 0; i-- {
		if token[i] != sep[0] {
			continue
		}
		if k, ok := namesToKind[token[:i]]; ok && k.arity() > 0 {
			return k, token[i+1:], nil
		}
	}
	return Invalid, "", &TokenError{Token: token, Reason: "unknown screen"}
}

// parseIndex accepts canonical non-negative decimals only, so that every
// accepted token is exactly what Encode would produce.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || strconv.Itoa(n) != s {
		return 0, fmt.Errorf("bad parameter %q", s)
	}
	return n, nil
}
