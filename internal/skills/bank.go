// Package skills holds the curated skill vocabularies, the job domain
// classifier and the phrase matcher that pulls known skills out of text.
package skills

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Domain is a coarse subject-matter tag of a job description.
type Domain string

const (
	DomainHR      Domain = "HR"
	DomainIT      Domain = "IT"
	DomainFinance Domain = "FINANCE"
	DomainGeneral Domain = "GENERAL"
)

// Domains lists every tag in classification priority order.
var Domains = []Domain{DomainHR, DomainIT, DomainFinance, DomainGeneral}

// HR, IT and FINANCE overlap on purpose ("advanced excel", "pivot").
var (
	hrSkills = []string{
		"hr", "human resources", "recruitment", "talent acquisition", "onboarding",
		"payroll", "payroll management", "employee relations", "hr operations",
		"compensation", "benefits", "excel", "advanced excel", "vlookup", "pivot",
		"hris", "hrms", "attendance", "policies", "performance management",
		"interviewing", "employee engagement",
	}

	itSkills = []string{
		"python", "pandas", "numpy", "scikit-learn", "tensorflow", "pytorch",
		"nlp", "natural language processing", "sql", "aws", "azure", "docker",
		"flask", "django", "rest", "java", "c++", "git", "linux", "spark", "hadoop",
		"react", "node", "javascript", "typescript", "kubernetes",
	}

	financeSkills = []string{
		"accounting", "gst", "tax", "auditing", "finance", "ledger", "tally",
		"financial analysis", "reconciliation", "payables", "receivables",
		"ms-excel", "advanced excel", "pivot", "budgeting", "forecasting",
	}
)

type phrase struct {
	text    string
	pattern *regexp.Regexp
}

// Bank is an immutable vocabulary of lowercase skill phrases kept in
// longest-first order.
type Bank struct {
	domain  Domain
	phrases []phrase
}

// NewBank builds a bank from raw phrases. Phrases are lowercased, trimmed and
// deduplicated; blank entries are dropped.
func NewBank(domain Domain, raw []string) *Bank {
	seen := make(map[string]struct{}, len(raw))
	texts := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		texts = append(texts, s)
	}

	sort.SliceStable(texts, func(i, j int) bool {
		if len(texts[i]) != len(texts[j]) {
			return len(texts[i]) > len(texts[j])
		}
		return texts[i] < texts[j]
	})

	phrases := make([]phrase, 0, len(texts))
	for _, text := range texts {
		phrases = append(phrases, phrase{text: text, pattern: boundaryPattern(text)})
	}

	return &Bank{domain: domain, phrases: phrases}
}

// boundaryPattern anchors a phrase with \b on every edge that is a word
// character. An edge like the "++" of "c++" gets no anchor, otherwise the
// phrase could never match before a space.
func boundaryPattern(text string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("(?i)")
	runes := []rune(text)
	if isWordRune(runes[0]) {
		b.WriteString(`\b`)
	}
	b.WriteString(regexp.QuoteMeta(text))
	if isWordRune(runes[len(runes)-1]) {
		b.WriteString(`\b`)
	}
	return regexp.MustCompile(b.String())
}

func isWordRune(r rune) bool {
	return r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// Domain returns the tag the bank was built for.
func (b *Bank) Domain() Domain {
	return b.domain
}

// Phrases returns a copy of the bank phrases in traversal order.
func (b *Bank) Phrases() []string {
	out := make([]string, 0, len(b.phrases))
	for _, p := range b.phrases {
		out = append(out, p.text)
	}
	return out
}

// Len reports the number of phrases in the bank.
func (b *Bank) Len() int {
	return len(b.phrases)
}

// Contains reports whether the lowercase phrase belongs to the bank.
func (b *Bank) Contains(skill string) bool {
	skill = strings.ToLower(strings.TrimSpace(skill))
	for _, p := range b.phrases {
		if p.text == skill {
			return true
		}
	}
	return false
}

// Extract returns the bank phrases found in text, sorted ascending.
// Each phrase is an independent word-boundary test, so a short phrase may
// match alongside a longer one that contains it.
func (b *Bank) Extract(text string) []string {
	found := make([]string, 0)
	if b == nil || strings.TrimSpace(text) == "" {
		return found
	}

	for _, p := range b.phrases {
		if p.pattern.MatchString(text) {
			found = append(found, p.text)
		}
	}

	sort.Strings(found)
	return found
}

// Registry maps every domain to its bank. It is built once and only read afterwards.
type Registry struct {
	banks map[Domain]*Bank
}

// NewRegistry builds the curated HR, IT and FINANCE banks plus the GENERAL
// bank, which is their union.
func NewRegistry() *Registry {
	general := make([]string, 0, len(hrSkills)+len(itSkills)+len(financeSkills))
	general = append(general, hrSkills...)
	general = append(general, itSkills...)
	general = append(general, financeSkills...)

	return &Registry{banks: map[Domain]*Bank{
		DomainHR:      NewBank(DomainHR, hrSkills),
		DomainIT:      NewBank(DomainIT, itSkills),
		DomainFinance: NewBank(DomainFinance, financeSkills),
		DomainGeneral: NewBank(DomainGeneral, general),
	}}
}

// Bank returns the bank for domain, falling back to GENERAL for unknown tags.
func (r *Registry) Bank(domain Domain) *Bank {
	if bank, ok := r.banks[domain]; ok {
		return bank
	}
	return r.banks[DomainGeneral]
}

// General returns the union bank.
func (r *Registry) General() *Bank {
	return r.banks[DomainGeneral]
}
