// Package content holds the immutable program dataset served by the bot.
//
// The tree is decoded once at startup and shared read-only by every handler.
// Lookups that can fail (semester keys, course indices) return *NotFoundError.
package content

// SemesterCount is the number of semesters every curriculum must declare.
const SemesterCount = 6

// Content is the root of the program dataset.
type Content struct {
	University   string `json:"university" yaml:"university" validate:"required"`
	Faculty      string `json:"faculty" yaml:"faculty"`
	Department   string `json:"department" yaml:"department"`
	Domain       string `json:"domain" yaml:"domain"`
	Field        string `json:"field" yaml:"field"`
	Specialty    string `json:"specialty" yaml:"specialty" validate:"required"`
	AcademicYear Text   `json:"academic_year" yaml:"academic_year"`
	DegreeType   string `json:"degree_type" yaml:"degree_type"`
	Duration     Text   `json:"duration" yaml:"duration"`
	TotalCredits Text   `json:"total_credits" yaml:"total_credits"`

	Overview         ProgramOverview   `json:"program_overview" yaml:"program_overview"`
	Objectives       []string          `json:"objectives" yaml:"objectives" validate:"dive,required"`
	TargetedProfiles []string          `json:"targeted_profiles" yaml:"targeted_profiles" validate:"dive,required"`
	Competencies     Competencies      `json:"competencies" yaml:"competencies"`
	Employability    Employability     `json:"employability" yaml:"employability"`
	FurtherStudy     FurtherStudy      `json:"further_study_pathways" yaml:"further_study_pathways"`
	Statistics       ProgramStatistics `json:"program_statistics" yaml:"program_statistics"`
	Staff            StaffSummary      `json:"teaching_staff_summary" yaml:"teaching_staff_summary"`
	Resources        MaterialResources `json:"material_resources" yaml:"material_resources"`

	Curriculum map[string]Semester `json:"curriculum" yaml:"curriculum" validate:"required,dive"`
}

// ProgramOverview describes the program in a few free-form lines.
type ProgramOverview struct {
	Description string `json:"description" yaml:"description"`
	Structure   string `json:"structure" yaml:"structure"`
	WeeklyHours Text   `json:"weekly_hours" yaml:"weekly_hours"`
	TotalHours  Text   `json:"total_hours" yaml:"total_hours"`
}

// Competencies groups the skills a graduate is expected to acquire.
type Competencies struct {
	Mathematical  []string `json:"mathematical_skills" yaml:"mathematical_skills"`
	Computational []string `json:"computational_skills" yaml:"computational_skills"`
	DataScience   []string `json:"data_science_skills" yaml:"data_science_skills"`
	Soft          []string `json:"soft_skills" yaml:"soft_skills"`
}

// Employability lists job opportunities per scope.
type Employability struct {
	Regional RegionalOpportunities `json:"regional" yaml:"regional"`
	National NationalOpportunities `json:"national" yaml:"national"`
}

// RegionalOpportunities are jobs available in the university's region.
type RegionalOpportunities struct {
	EnergySector          string `json:"energy_sector" yaml:"energy_sector"`
	TechnologyInitiatives string `json:"technology_initiatives" yaml:"technology_initiatives"`
	EducationResearch     string `json:"education_research" yaml:"education_research"`
}

// NationalOpportunities are jobs available nationwide.
type NationalOpportunities struct {
	TechnologyIT           string `json:"technology_it" yaml:"technology_it"`
	PublicSector           string `json:"public_sector" yaml:"public_sector"`
	FinanceBanking         string `json:"finance_banking" yaml:"finance_banking"`
	InternationalCompanies string `json:"international_companies" yaml:"international_companies"`
}

// FurtherStudy lists the pathways open after graduation.
type FurtherStudy struct {
	MastersPrograms            []string `json:"masters_programs" yaml:"masters_programs"`
	InterdisciplinaryFields    []string `json:"interdisciplinary_fields" yaml:"interdisciplinary_fields"`
	ProfessionalCertifications []string `json:"professional_certifications" yaml:"professional_certifications"`
	ResearchAcademia           string   `json:"research_academia" yaml:"research_academia"`
}

// ProgramStatistics aggregates teaching hours and credit distribution.
// Contact hours are never stored; they are derived by ContactHours.
type ProgramStatistics struct {
	LectureHours      Number `json:"total_lecture_hours" yaml:"total_lecture_hours"`
	TutorialHours     Number `json:"total_tutorial_hours" yaml:"total_tutorial_hours"`
	PracticalHours    Number `json:"total_practical_hours" yaml:"total_practical_hours"`
	PersonalWorkHours Number `json:"total_personal_work_hours" yaml:"total_personal_work_hours"`

	Credits     UnitDistribution `json:"credits_distribution" yaml:"credits_distribution"`
	Percentages UnitDistribution `json:"percentage_distribution" yaml:"percentage_distribution"`
}

// ContactHours sums lecture, tutorial and practical hours.
func (s ProgramStatistics) ContactHours() Number {
	return s.LectureHours + s.TutorialHours + s.PracticalHours
}

// UnitDistribution splits a quantity across teaching unit categories.
type UnitDistribution struct {
	Fundamental    Number `json:"fundamental" yaml:"fundamental"`
	Methodological Number `json:"methodological" yaml:"methodological"`
	Discovery      Number `json:"discovery" yaml:"discovery"`
	Transversal    Number `json:"transversal" yaml:"transversal"`
}

// StaffSummary counts the teaching staff by rank.
type StaffSummary struct {
	Professors           int `json:"professors" yaml:"professors"`
	AssociateProfessorsA int `json:"associate_professors_a" yaml:"associate_professors_a"`
	AssociateProfessorsB int `json:"associate_professors_b" yaml:"associate_professors_b"`
	AssistantProfessorsA int `json:"assistant_professors_a" yaml:"assistant_professors_a"`
	Total                int `json:"total" yaml:"total"`
}

// MaterialResources describes labs and equipment.
type MaterialResources struct {
	Laboratory string      `json:"laboratory" yaml:"laboratory"`
	Equipment  []Equipment `json:"equipment" yaml:"equipment" validate:"dive"`
}

// Equipment is a single inventory line.
type Equipment struct {
	Item     string `json:"item" yaml:"item" validate:"required"`
	Quantity int    `json:"quantity" yaml:"quantity" validate:"gte=0"`
}

// Semester is one entry of the curriculum.
type Semester struct {
	TotalCredits int      `json:"total_credits" yaml:"total_credits"`
	TotalHours   Text     `json:"total_hours" yaml:"total_hours"`
	Courses      []Course `json:"courses" yaml:"courses" validate:"required,dive"`
}

// Course is a teaching unit of a semester.
type Course struct {
	Code          string      `json:"code" yaml:"code" validate:"required"`
	Name          string      `json:"name" yaml:"name" validate:"required"`
	Type          string      `json:"type" yaml:"type"`
	Credits       int         `json:"credits" yaml:"credits" validate:"gte=0"`
	Coefficient   int         `json:"coefficient" yaml:"coefficient" validate:"gte=0"`
	Volume        Volume      `json:"volume" yaml:"volume"`
	Objectives    string      `json:"objectives" yaml:"objectives"`
	Prerequisites string      `json:"prerequisites" yaml:"prerequisites"`
	Content       []string    `json:"content" yaml:"content"`
	Evaluation    *Evaluation `json:"evaluation,omitempty" yaml:"evaluation,omitempty"`
	References    []string    `json:"references" yaml:"references"`
	Note          string      `json:"note,omitempty" yaml:"note,omitempty"`
}

// Volume is the weekly teaching load of a course.
type Volume struct {
	Lecture      Number `json:"lecture" yaml:"lecture"`
	Tutorial     Number `json:"tutorial" yaml:"tutorial"`
	Practical    Number `json:"practical" yaml:"practical"`
	PersonalWork Number `json:"personal_work" yaml:"personal_work"`
	TotalHours   Number `json:"total_hours" yaml:"total_hours"`
}

// Evaluation splits the final grade between continuous assessment and exam.
type Evaluation struct {
	Continuous Number `json:"continuous" yaml:"continuous" validate:"gte=0,lte=100"`
	Exam       Number `json:"exam" yaml:"exam" validate:"gte=0,lte=100"`
}
