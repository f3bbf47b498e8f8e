package view

import (
	"fmt"
	"strings"

	"github.com/m3rciful/specialtybot/internal/content"
)

// Fixed texts.
const (
	WelcomeText = `Welcome to the University Specialty Information Bot.

This bot provides detailed information about the Applied Mathematics for Artificial Intelligence and Data Science program.

Use the buttons below to navigate through the information.`

	MainMenuText       = "Main Menu. Select an option:"
	CurriculumMenuText = "Select a semester to view courses:"
	InvalidText        = "Invalid option. Returning to main menu."
	HelpText           = "Use /start to open the main menu, then navigate with the buttons under the message."
)

// SpecialtyInfo renders university metadata and the program overview.
func SpecialtyInfo(c *content.Content) string {
	var b strings.Builder
	b.WriteString("UNIVERSITY INFORMATION\n\n")
	fmt.Fprintf(&b, "University: %s\n", c.University)
	fmt.Fprintf(&b, "Faculty: %s\n", c.Faculty)
	fmt.Fprintf(&b, "Department: %s\n", c.Department)
	fmt.Fprintf(&b, "Domain: %s\n", c.Domain)
	fmt.Fprintf(&b, "Field: %s\n", c.Field)
	fmt.Fprintf(&b, "Specialty: %s\n", c.Specialty)

	b.WriteString("\nACADEMIC DETAILS\n\n")
	fmt.Fprintf(&b, "Academic Year: %s\n", c.AcademicYear)
	fmt.Fprintf(&b, "Degree Type: %s\n", c.DegreeType)
	fmt.Fprintf(&b, "Duration: %s\n", c.Duration)
	fmt.Fprintf(&b, "Total Credits: %s\n", c.TotalCredits)

	o := c.Overview
	b.WriteString("\nPROGRAM OVERVIEW\n\n")
	fmt.Fprintf(&b, "Description: %s\n", o.Description)
	fmt.Fprintf(&b, "Structure: %s\n", o.Structure)
	fmt.Fprintf(&b, "Weekly Hours: %s\n", o.WeeklyHours)
	fmt.Fprintf(&b, "Total Hours: %s", o.TotalHours)
	return b.String()
}

// Objectives renders objectives, targeted profiles and competencies.
func Objectives(c *content.Content) string {
	var b strings.Builder
	b.WriteString("PROGRAM OBJECTIVES\n\n")
	writeNumbered(&b, c.Objectives)

	b.WriteString("\nTARGETED PROFILES\n\n")
	writeNumbered(&b, c.TargetedProfiles)

	b.WriteString("\nCOMPETENCIES\n\n")
	comp := c.Competencies
	b.WriteString("Mathematical Skills:\n")
	writeBullets(&b, comp.Mathematical)
	b.WriteString("\nComputational Skills:\n")
	writeBullets(&b, comp.Computational)
	b.WriteString("\nData Science Skills:\n")
	writeBullets(&b, comp.DataScience)
	b.WriteString("\nSoft Skills:\n")
	writeBullets(&b, comp.Soft)
	return strings.TrimRight(b.String(), "\n")
}

// Employability renders regional and national job opportunities.
func Employability(c *content.Content) string {
	var b strings.Builder
	b.WriteString("EMPLOYMENT OPPORTUNITIES\n\n")

	r := c.Employability.Regional
	b.WriteString("REGIONAL OPPORTUNITIES (Ouargla Region)\n\n")
	writeSection(&b, "Energy Sector", r.EnergySector)
	writeSection(&b, "Technology Initiatives", r.TechnologyInitiatives)
	writeSection(&b, "Education & Research", r.EducationResearch)

	n := c.Employability.National
	b.WriteString("NATIONAL OPPORTUNITIES\n\n")
	writeSection(&b, "Technology & IT", n.TechnologyIT)
	writeSection(&b, "Public Sector", n.PublicSector)
	writeSection(&b, "Finance & Banking", n.FinanceBanking)
	writeSection(&b, "International Companies", n.InternationalCompanies)
	return strings.TrimRight(b.String(), "\n")
}

// FurtherStudy renders the pathways available after graduation.
func FurtherStudy(c *content.Content) string {
	f := c.FurtherStudy
	var b strings.Builder
	b.WriteString("FURTHER STUDY PATHWAYS\n\n")
	b.WriteString("MASTERS PROGRAMS\n")
	writeBullets(&b, f.MastersPrograms)
	b.WriteString("\nINTERDISCIPLINARY FIELDS\n")
	writeBullets(&b, f.InterdisciplinaryFields)
	b.WriteString("\nPROFESSIONAL CERTIFICATIONS\n")
	writeBullets(&b, f.ProfessionalCertifications)
	b.WriteString("\nRESEARCH & ACADEMIA\n")
	fmt.Fprintf(&b, "- %s", f.ResearchAcademia)
	return b.String()
}

// Statistics renders teaching hours, credit distribution, staff and resources.
// Total contact hours are recomputed from the stored hour totals.
func Statistics(c *content.Content) string {
	s := c.Statistics
	var b strings.Builder
	b.WriteString("PROGRAM STATISTICS\n\n")

	b.WriteString("TEACHING HOURS\n")
	fmt.Fprintf(&b, "- Lecture Hours: %s\n", s.LectureHours)
	fmt.Fprintf(&b, "- Tutorial Hours: %s\n", s.TutorialHours)
	fmt.Fprintf(&b, "- Practical Hours: %s\n", s.PracticalHours)
	fmt.Fprintf(&b, "- Personal Work Hours: %s\n", s.PersonalWorkHours)
	fmt.Fprintf(&b, "- Total Contact Hours: %s\n", s.ContactHours())

	b.WriteString("\nCREDITS DISTRIBUTION\n")
	fmt.Fprintf(&b, "- Fundamental Units: %s credits (%s%%)\n", s.Credits.Fundamental, s.Percentages.Fundamental)
	fmt.Fprintf(&b, "- Methodological Units: %s credits (%s%%)\n", s.Credits.Methodological, s.Percentages.Methodological)
	fmt.Fprintf(&b, "- Discovery Units: %s credits (%s%%)\n", s.Credits.Discovery, s.Percentages.Discovery)
	fmt.Fprintf(&b, "- Transversal Units: %s credits (%s%%)\n", s.Credits.Transversal, s.Percentages.Transversal)

	st := c.Staff
	b.WriteString("\nTEACHING STAFF\n")
	fmt.Fprintf(&b, "- Professors: %d\n", st.Professors)
	fmt.Fprintf(&b, "- Associate Professors A: %d\n", st.AssociateProfessorsA)
	fmt.Fprintf(&b, "- Associate Professors B: %d\n", st.AssociateProfessorsB)
	fmt.Fprintf(&b, "- Assistant Professors A: %d\n", st.AssistantProfessorsA)
	fmt.Fprintf(&b, "- Total Teaching Staff: %d\n", st.Total)

	res := c.Resources
	b.WriteString("\nMATERIAL RESOURCES\n")
	fmt.Fprintf(&b, "- Laboratory: %s", res.Laboratory)
	// Only the first inventory line is shown.
	if len(res.Equipment) > 0 {
		eq := res.Equipment[0]
		fmt.Fprintf(&b, "\n- Equipment: %d %ss", eq.Quantity, eq.Item)
	}
	return b.String()
}

// SemesterInfo renders the course list of semester n.
func SemesterInfo(n int, sem *content.Semester) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SEMESTER %d\n\n", n)
	fmt.Fprintf(&b, "Total Credits: %d\n", sem.TotalCredits)
	fmt.Fprintf(&b, "Total Hours: %s\n\n", sem.TotalHours)
	b.WriteString("COURSES:\n")
	for i, course := range sem.Courses {
		fmt.Fprintf(&b, "%d. %s (%s) - %d credits\n", i+1, course.Name, course.Code, course.Credits)
	}
	b.WriteString("\nClick on any course to see detailed information.")
	return b.String()
}

// CourseDetails renders a single course. Evaluation and note are emitted only
// when the course declares them.
func CourseDetails(course *content.Course) string {
	var b strings.Builder
	b.WriteString("COURSE DETAILS\n\n")
	fmt.Fprintf(&b, "Code: %s\n", course.Code)
	fmt.Fprintf(&b, "Name: %s\n", course.Name)
	fmt.Fprintf(&b, "Type: %s\n", course.Type)
	fmt.Fprintf(&b, "Credits: %d\n", course.Credits)
	fmt.Fprintf(&b, "Coefficient: %d\n", course.Coefficient)

	v := course.Volume
	b.WriteString("\nTEACHING VOLUME (hours per week)\n")
	fmt.Fprintf(&b, "- Lecture: %s\n", v.Lecture)
	fmt.Fprintf(&b, "- Tutorial: %s\n", v.Tutorial)
	fmt.Fprintf(&b, "- Practical: %s\n", v.Practical)
	fmt.Fprintf(&b, "- Personal Work: %s\n", v.PersonalWork)
	fmt.Fprintf(&b, "- Total Hours: %s\n", v.TotalHours)

	fmt.Fprintf(&b, "\nOBJECTIVES\n%s\n", course.Objectives)
	fmt.Fprintf(&b, "\nPREREQUISITES\n%s\n", course.Prerequisites)

	b.WriteString("\nCOURSE CONTENT\n")
	writeNumbered(&b, course.Content)

	if ev := course.Evaluation; ev != nil {
		b.WriteString("\nEVALUATION")
		fmt.Fprintf(&b, "\n- Continuous Assessment: %s%%", ev.Continuous)
		fmt.Fprintf(&b, "\n- Final Exam: %s%%", ev.Exam)
		b.WriteString("\n")
	}

	b.WriteString("\nREFERENCES")
	for _, ref := range course.References {
		fmt.Fprintf(&b, "\n- %s", ref)
	}

	if course.Note != "" {
		fmt.Fprintf(&b, "\n\nNOTE: %s", course.Note)
	}
	return b.String()
}

func writeNumbered(b *strings.Builder, items []string) {
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func writeSection(b *strings.Builder, title, body string) {
	fmt.Fprintf(b, "%s:\n- %s\n\n", title, body)
}
