package menu

import (
	"fmt"

	"github.com/m3rciful/specialtybot/internal/content"
)

// Edge is a navigation option leading from one screen to another.
type Edge struct {
	Label string
	To    Screen
}

const (
	labelBackMain      = "Back to Main Menu"
	labelBackSemesters = "Back to Semesters"
	labelBackCourses   = "Back to Semester Courses"
)

// mainEdges is the fixed option order of the main menu.
var mainEdges = []Edge{
	{Label: "Specialty Information", To: Of(SpecialtyInfo)},
	{Label: "Curriculum", To: Of(CurriculumMenu)},
	{Label: "Objectives and Competencies", To: Of(Objectives)},
	{Label: "Employability", To: Of(Employability)},
	{Label: "Further Study Pathways", To: Of(FurtherStudy)},
	{Label: "Program Statistics", To: Of(Statistics)},
}

// MainEdges returns the options of the main menu.
func MainEdges() []Edge {
	return append([]Edge(nil), mainEdges...)
}

// Edges returns the outgoing edges of s in display order. Labels are raw
// (course names are not truncated here). Screens whose parameters are not
// backed by c return a *content.NotFoundError.
func Edges(s Screen, c *content.Content) ([]Edge, error) {
	switch s.Kind {
	case MainMenu:
		return MainEdges(), nil

	case CurriculumMenu:
		edges := make([]Edge, 0, content.SemesterCount+1)
		for n := 1; n <= content.SemesterCount; n++ {
			edges = append(edges, Edge{Label: fmt.Sprintf("Semester %d", n), To: Semester(n)})
		}
		return append(edges, Edge{Label: labelBackMain, To: Main()}), nil

	case SemesterView:
		sem, err := c.Semester(s.Semester)
		if err != nil {
			return nil, err
		}
		edges := make([]Edge, 0, len(sem.Courses)+2)
		for i, course := range sem.Courses {
			edges = append(edges, Edge{Label: course.Name, To: Course(s.Semester, i)})
		}
		return append(edges,
			Edge{Label: labelBackSemesters, To: Of(CurriculumMenu)},
			Edge{Label: labelBackMain, To: Main()},
		), nil

	case CourseDetail:
		if _, err := c.Course(s.Semester, s.Course); err != nil {
			return nil, err
		}
		return []Edge{
			{Label: labelBackCourses, To: Semester(s.Semester)},
			{Label: labelBackSemesters, To: Of(CurriculumMenu)},
			{Label: labelBackMain, To: Main()},
		}, nil

	case SpecialtyInfo, Objectives, Employability, FurtherStudy, Statistics:
		return []Edge{{Label: labelBackMain, To: Main()}}, nil

	default:
		return nil, &TokenError{Token: Encode(s), Reason: "unknown screen"}
	}
}

// Reachable walks the graph from the main menu and returns every screen
// reachable through edges, in breadth-first order.
func Reachable(c *content.Content) ([]Screen, error) {
	seen := map[Screen]bool{Main(): true}
	queue := []Screen{Main()}
	var out []Screen
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		out = append(out, s)
		edges, err := Edges(s, c)
		if err != nil {
			return nil, fmt.Errorf("menu: edges of %s: %w", Encode(s), err)
		}
		for _, e := range edges {
			if seen[e.To] {
				continue
			}
			seen[e.To] = true
			queue = append(queue, e.To)
		}
	}
	return out, nil
}
