// Package planner measures how ready a candidate is for a job title and
// suggests courses for the gaps.
package planner

import (
	"strings"

	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/utils"
)

// DefaultTopCourses is the usual number of courses listed per skill.
const DefaultTopCourses = 3

type jobSkills struct {
	title  string
	skills []string
}

// Titles are matched in this order when falling back to substring search.
var defaultJobs = []jobSkills{
	{"data scientist", []string{
		"python", "pandas", "numpy", "sql", "machine learning", "scikit-learn",
		"statistics", "data visualization", "deep learning",
	}},
	{"hr executive", []string{
		"hr", "recruitment", "onboarding", "payroll", "employee relations", "excel",
	}},
	{"software engineer", []string{
		"python", "java", "git", "rest", "docker", "kubernetes", "react",
	}},
}

var defaultCourses = map[string][]string{
	"python":           {"Python for Everybody (Coursera)", "Complete Python Bootcamp (Udemy)"},
	"pandas":           {"Data Manipulation with pandas (DataCamp)"},
	"machine learning": {"Machine Learning by Andrew Ng (Coursera)"},
	"deep learning":    {"Deep Learning Specialization (Coursera)"},
	"sql":              {"SQL for Data Science (Coursera)"},
	"excel":            {"Excel Skills for Business (Coursera)"},
	"payroll":          {"Payroll Management Essentials (Udemy)"},
	"recruitment":      {"Recruiting Foundations (LinkedIn Learning)"},
}

// Catalog is the read-only title→skills and skill→courses lookup.
type Catalog struct {
	jobs    []jobSkills
	courses map[string][]string
}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog {
	return &Catalog{jobs: defaultJobs, courses: defaultCourses}
}

// Titles lists the known job titles.
func (c *Catalog) Titles() []string {
	titles := make([]string, 0, len(c.jobs))
	for _, j := range c.jobs {
		titles = append(titles, j.title)
	}
	return titles
}

// RequiredSkills returns the skills for title: an exact (case-insensitive)
// title first, else the first known title contained in it, else nothing.
func (c *Catalog) RequiredSkills(title string) []string {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return []string{}
	}

	for _, j := range c.jobs {
		if j.title == t {
			return clone(j.skills)
		}
	}
	for _, j := range c.jobs {
		if strings.Contains(t, j.title) {
			return clone(j.skills)
		}
	}
	return []string{}
}

// RecommendCourses maps every skill to at most topN courses, so a
// non-positive topN yields empty lists for mapped skills. Unmapped skills
// get a generic search hint. Keys keep the caller's spelling.
func (c *Catalog) RecommendCourses(skills []string, topN int) map[string][]string {
	topN = max(topN, 0)

	recs := make(map[string][]string, len(skills))
	for _, s := range skills {
		courses, ok := c.courses[strings.ToLower(strings.TrimSpace(s))]
		if !ok {
			recs[s] = []string{"No specific course mapped, search Coursera/Udemy for " + s}
			continue
		}
		if len(courses) > topN {
			courses = courses[:topN]
		}
		recs[s] = clone(courses)
	}
	return recs
}

// Report is the readiness of a candidate for a set of required skills.
type Report struct {
	MatchedSkills []string `json:"matched_skills" mapstructure:"matched_skills"`
	MissingSkills []string `json:"missing_skills" mapstructure:"missing_skills"`
	ReadinessPct  float64  `json:"readiness_pct" mapstructure:"readiness_pct"`
}

// EvaluateReadiness compares skills case-insensitively. Matched and missing
// keep the order of required. No requirements means 0% readiness.
func EvaluateReadiness(candidateSkills, required []string) Report {
	report := Report{MatchedSkills: []string{}, MissingSkills: []string{}}
	if len(required) == 0 {
		return report
	}

	owned := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		owned[strings.ToLower(s)] = struct{}{}
	}

	for _, s := range required {
		s = strings.ToLower(s)
		if _, ok := owned[s]; ok {
			report.MatchedSkills = append(report.MatchedSkills, s)
		} else {
			report.MissingSkills = append(report.MissingSkills, s)
		}
	}

	report.ReadinessPct = utils.Round2(100 * float64(len(report.MatchedSkills)) / float64(len(required)))
	return report
}

func clone(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}
