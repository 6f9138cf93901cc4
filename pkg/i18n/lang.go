package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// DefaultLanguage is used when nothing better can be negotiated.
const DefaultLanguage = "en"

// maxAcceptLanguageLength bounds the header size that is parsed.
const maxAcceptLanguageLength = 4096

type weightedLang struct {
	lang string
	q    float64
}

func parseAcceptLanguageHeader(header string) []weightedLang {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var langs []weightedLang
	for part := range strings.SplitSeq(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
				q = parsed
			}
		}
		langs = append(langs, weightedLang{lang: tag, q: q})
	}

	slices.SortStableFunc(langs, func(a, b weightedLang) int {
		return cmp.Compare(b.q, a.q)
	})
	return langs
}

// ParseAcceptLanguage picks the best supported language for an
// Accept-Language header. Exact tags win over base-language matches
// ("de-AT" falls back to "de"), and defaultLang is returned otherwise.
func ParseAcceptLanguage(header string, supported []string, defaultLang string) string {
	if header == "" || len(supported) == 0 {
		return defaultLang
	}

	normalized := make([]string, len(supported))
	for i, lang := range supported {
		normalized[i] = strings.ToLower(lang)
	}
	langs := parseAcceptLanguageHeader(header)

	for _, l := range langs {
		if i := slices.Index(normalized, l.lang); i >= 0 {
			return supported[i]
		}
	}
	for _, l := range langs {
		if base, _, ok := strings.Cut(l.lang, "-"); ok {
			if i := slices.Index(normalized, base); i >= 0 {
				return supported[i]
			}
		}
	}
	return defaultLang
}
