package language

import "strings"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // English name
	native  string   // Endonym, used in prompts and reply labels
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "eng", "", "English", "English", []string{"english"}},
	{"ko", "kor", "", "Korean", "한국어", []string{"korean", "한국어"}},
	{"ja", "jpn", "", "Japanese", "日本語", []string{"japanese"}},
	{"zh", "zho", "chi", "Chinese", "中文", []string{"chinese"}},
	{"es", "spa", "", "Spanish", "Español", []string{"spanish"}},
	{"fr", "fra", "fre", "French", "Français", []string{"french"}},
	{"de", "deu", "ger", "German", "Deutsch", []string{"german"}},
	{"it", "ita", "", "Italian", "Italiano", []string{"italian"}},
	{"pt", "por", "", "Portuguese", "Português", []string{"portuguese"}},
	{"ru", "rus", "", "Russian", "Русский", []string{"russian"}},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// ToISO2 converts any recognized language code or word to ISO 639-1 (2-letter).
// Returns empty string for unrecognized input.
// If the input is already a 2-letter code (even if unknown), it passes through.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// DisplayName returns the English name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// NativeName returns the language's own name, falling back to DisplayName.
func NativeName(code string) string {
	if e := lookup(code); e != nil {
		return e.native
	}
	return DisplayName(code)
}
