package intl

import (
	"golang.org/x/text/language"
)

type SupportedLanguage struct {
	Code        string
	VerboseName string
	Tag         language.Tag
}

var (
	allSupportedLanguages = []SupportedLanguage{
		{
			Code:        "en",
			VerboseName: "English",
			Tag:         language.English,
		},
		{
			Code:        "id",
			VerboseName: "Bahasa Indonesia",
			Tag:         language.Indonesian,
		},
	}

	SupportedLanguages = allSupportedLanguages
)

// GetSupportedLanguages filters the known languages by code. An empty
// whitelist returns all of them.
func GetSupportedLanguages(whitelist []string) []SupportedLanguage {
	if len(whitelist) == 0 {
		return allSupportedLanguages
	}

	allowed := make(map[string]bool, len(whitelist))
	for _, code := range whitelist {
		allowed[code] = true
	}

	filtered := make([]SupportedLanguage, 0, len(whitelist))
	for _, lang := range allSupportedLanguages {
		if allowed[lang.Code] {
			filtered = append(filtered, lang)
		}
	}
	return filtered
}
