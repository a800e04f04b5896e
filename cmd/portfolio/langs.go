package main

import "github.com/Amorizz/portfolio/internal/content"

// parseLangs turns the optional language argument into the list of languages to process.
func parseLangs(args []string) ([]content.Lang, error) {
	if len(args) == 0 {
		return content.SupportedLangs(), nil
	}
	lang, err := content.ParseLang(args[0])
	if err != nil {
		return nil, err
	}
	return []content.Lang{lang}, nil
}
