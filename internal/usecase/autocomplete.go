package usecase

import (
	"strings"
	"unicode/utf8"

	"github.com/salesai/backend/internal/domain"
)

// MinQueryLength is the number of characters a query needs before it is matched
const MinQueryLength = 2

// MatchCompanies returns, in catalog order, every profile whose name or any
// keyword token contains query case-insensitively. Queries shorter than
// MinQueryLength characters match nothing.
func MatchCompanies(query string, companies []domain.CompanyProfile) []domain.CompanyProfile {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil
	}

	needle := strings.ToLower(query)
	var matched []domain.CompanyProfile
	for _, c := range companies {
		if companyContains(c, needle) {
			matched = append(matched, c)
		}
	}
	return matched
}

func companyContains(c domain.CompanyProfile, needle string) bool {
	if strings.Contains(strings.ToLower(c.Name), needle) {
		return true
	}
	for _, k := range c.KeywordTokens {
		if strings.Contains(strings.ToLower(k), needle) {
			return true
		}
	}
	return false
}
