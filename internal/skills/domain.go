package skills

import "strings"

type domainSignals struct {
	domain   Domain
	keywords []string
}

// Checked top to bottom. HR wins over IT and FINANCE when both appear.
var signals = []domainSignals{
	{DomainHR, []string{"hr", "human resources", "recruit", "talent", "onboard", "payroll", "employee relations", "hris"}},
	{DomainIT, []string{"developer", "engineer", "software", "python", "java", "machine learning", "ml", "devops", "frontend", "backend", "react", "node"}},
	{DomainFinance, []string{"account", "gst", "tax", "finance", "audit", "auditor", "tally", "accounts payable", "accounts receivable"}},
}

// DetectDomain classifies a job description by plain substring presence of
// trigger keywords. Empty or unmatched text is GENERAL.
func DetectDomain(text string) Domain {
	if text == "" {
		return DomainGeneral
	}

	lower := strings.ToLower(text)
	for _, s := range signals {
		for _, kw := range s.keywords {
			if strings.Contains(lower, kw) {
				return s.domain
			}
		}
	}

	return DomainGeneral
}
