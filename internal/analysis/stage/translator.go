package stage

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jansunwai/jansunwai-backend/internal/analysis/domain"
)

// phraseEntry is one row of the phrase dictionary. Entries are applied in
// slice order so the output is deterministic.
type phraseEntry struct {
	english string
	variants map[domain.Language]string
}

var phraseTable = []phraseEntry{
	{
		english: "water problem",
		variants: map[domain.Language]string{
			domain.LanguageEnglish: "water problem",
			domain.LanguageHindi:   "पानी की समस्या",
			domain.LanguageTamil:   "தண்ணீர் பிரச்சனை",
		},
	},
	{
		english: "electricity issue",
		variants: map[domain.Language]string{
			domain.LanguageEnglish: "electricity issue",
			domain.LanguageHindi:   "बिजली की समस्या",
			domain.LanguageTamil:   "மின்சார பிரச்சனை",
		},
	},
	{
		english: "road maintenance",
		variants: map[domain.Language]string{
			domain.LanguageEnglish: "road maintenance",
			domain.LanguageHindi:   "सड़क रखरखाव",
			domain.LanguageTamil:   "சாலை பராமரிப்பு",
		},
	},
}

// Translate normalizes text between supported languages using the phrase
// dictionary. Identical source and target is a no-op that returns the text
// verbatim. Phrases outside the dictionary pass through untranslated.
func Translate(text string, source, target domain.Language) domain.Translation {
	if source == target {
		return domain.Translation{
			OriginalText:   text,
			TranslatedText: text,
			SourceLanguage: source,
			TargetLanguage: target,
		}
	}

	translated := text
	for _, entry := range phraseTable {
		if source == domain.LanguageEnglish {
			if strings.Contains(strings.ToLower(text), entry.english) {
				translated = replaceFold(translated, entry.english, entry.variants[target])
			}
			continue
		}
		phrase, ok := entry.variants[source]
		if !ok || !strings.Contains(text, phrase) {
			continue
		}
		replacement := entry.english
		if target != domain.LanguageEnglish {
			replacement = entry.variants[target]
		}
		translated = strings.Replace(translated, phrase, replacement, 1)
	}

	return domain.Translation{
		OriginalText:   text,
		TranslatedText: translated,
		SourceLanguage: source,
		TargetLanguage: target,
	}
}

// replaceFold replaces every case-insensitive occurrence of old in s.
// old must already be lower-case. Matching is rune by rune so byte
// offsets stay valid even where lowering changes a rune's encoded
// length (Turkish dotted I, for example).
func replaceFold(s, old, new string) string {
	if old == "" {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if n, ok := foldPrefixLen(s[i:], old); ok {
			b.WriteString(new)
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// foldPrefixLen reports whether s starts with a case-insensitive match
// of old, and if so how many bytes of s the match covers.
func foldPrefixLen(s, old string) (int, bool) {
	n := 0
	for _, want := range old {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 || unicode.ToLower(r) != want {
			return 0, false
		}
		n += size
	}
	return n, true
}
