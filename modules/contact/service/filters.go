package service

import (
	"agenda-api/modules/contact/dto"
	"agenda-api/modules/contact/entity"
	"sort"
	"strings"
)

const autocompleteLimit = 10

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Search matches term case-insensitively against name, email and company.
// An empty term matches nothing.
func Search(contacts []entity.Contact, term string) []entity.Contact {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]entity.Contact, 0)
	if term == "" {
		return out
	}

	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(deref(c.Email)), term) ||
			strings.Contains(strings.ToLower(deref(c.Company)), term) {
			out = append(out, c)
		}
	}
	return out
}

func ByCompany(contacts []entity.Contact, company string) []entity.Contact {
	company = strings.TrimSpace(company)
	out := make([]entity.Contact, 0)
	for _, c := range contacts {
		if company != "" && strings.EqualFold(strings.TrimSpace(deref(c.Company)), company) {
			out = append(out, c)
		}
	}
	return out
}

func Stats(contacts []entity.Contact) dto.ContactStats {
	stats := dto.ContactStats{Total: len(contacts)}
	companies := make(map[string]struct{})

	for _, c := range contacts {
		if company := strings.TrimSpace(deref(c.Company)); company != "" {
			stats.WithCompany++
			companies[strings.ToLower(company)] = struct{}{}
		}
		if deref(c.Email) != "" {
			stats.WithEmail++
		}
		if deref(c.Phone) != "" {
			stats.WithPhone++
		}
	}

	stats.UniqueCompanies = len(companies)
	return stats
}

// Autocomplete suggests contacts for an attendee field, prefix matches first.
func Autocomplete(contacts []entity.Contact, term string) []dto.Suggestion {
	matches := Search(contacts, term)
	lower := strings.ToLower(strings.TrimSpace(term))

	isPrefix := func(c entity.Contact) bool {
		return strings.HasPrefix(strings.ToLower(c.Name), lower) || strings.HasPrefix(strings.ToLower(deref(c.Email)), lower)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return isPrefix(matches[i]) && !isPrefix(matches[j])
	})

	if len(matches) > autocompleteLimit {
		matches = matches[:autocompleteLimit]
	}

	out := make([]dto.Suggestion, 0, len(matches))
	for _, c := range matches {
		label := c.Name
		if email := deref(c.Email); email != "" {
			label += " <" + email + ">"
		}
		out = append(out, dto.Suggestion{ID: c.ID, Label: label, Email: deref(c.Email)})
	}
	return out
}
