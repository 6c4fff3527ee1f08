package skills

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBank_LowercasesDeduplicatesAndOrdersByLength(t *testing.T) {
	bank := NewBank(DomainIT, []string{"SQL", "sql", " Machine Learning ", "", "go"})

	assert.Equal(t, []string{"machine learning", "sql", "go"}, bank.Phrases())
	assert.Equal(t, 3, bank.Len())
	assert.True(t, bank.Contains("Machine learning"))
	assert.False(t, bank.Contains("rust"))
	assert.Equal(t, DomainIT, bank.Domain())
}

func TestExtract_WordBoundaries(t *testing.T) {
	bank := NewRegistry().Bank(DomainIT)

	got := bank.Extract("Built REST services in Python; deployed with Docker on AWS.")
	assert.Equal(t, []string{"aws", "docker", "python", "rest"}, got)

	// "javascript" must not yield "java", "restful" must not yield "rest".
	got = bank.Extract("javascript and restful apis")
	assert.Equal(t, []string{"javascript"}, got)
}

func TestExtract_MultiWordAndSubPhrases(t *testing.T) {
	bank := NewRegistry().Bank(DomainHR)

	got := bank.Extract("Handled Payroll Management and advanced Excel reporting")
	assert.Equal(t, []string{"advanced excel", "excel", "payroll", "payroll management"}, got)
}

func TestExtract_PunctuatedPhrases(t *testing.T) {
	bank := NewRegistry().General()

	assert.Equal(t, []string{"c++"}, bank.Extract("Strong C++ background"))
	assert.Contains(t, bank.Extract("MS-Excel expert"), "ms-excel")
	assert.Contains(t, bank.Extract("used scikit-learn daily"), "scikit-learn")
}

func TestExtract_EmptyText(t *testing.T) {
	bank := NewRegistry().General()

	got := bank.Extract("   ")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtract_SubsetSortedAndUnique(t *testing.T) {
	registry := NewRegistry()
	texts := []string{
		"python python PYTHON sql Sql",
		"HR executive with HRIS, HRMS and payroll; tally and gst for accounts",
		"tensorflow pytorch natural language processing nlp kubernetes",
	}

	for _, domain := range Domains {
		bank := registry.Bank(domain)
		for _, text := range texts {
			got := bank.Extract(text)
			assert.True(t, sort.StringsAreSorted(got))

			seen := map[string]bool{}
			for _, s := range got {
				assert.False(t, seen[s], "duplicate %q", s)
				seen[s] = true
				assert.True(t, bank.Contains(s), "%q not in %s bank", s, domain)
			}
		}
	}
}

func TestRegistry_GeneralIsUnion(t *testing.T) {
	registry := NewRegistry()
	general := registry.General()

	for _, domain := range []Domain{DomainHR, DomainIT, DomainFinance} {
		for _, s := range registry.Bank(domain).Phrases() {
			assert.True(t, general.Contains(s), "GENERAL misses %q from %s", s, domain)
		}
	}

	// Shared vocabulary is kept in both banks and appears once in GENERAL.
	assert.True(t, registry.Bank(DomainHR).Contains("pivot"))
	assert.True(t, registry.Bank(DomainFinance).Contains("pivot"))
	assert.Equal(t, 1, count(general.Phrases(), "advanced excel"))

	assert.Same(t, general, registry.Bank(Domain("LEGAL")))
}

func count(items []string, target string) int {
	n := 0
	for _, s := range items {
		if s == target {
			n++
		}
	}
	return n
}
