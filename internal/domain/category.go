package domain

import (
	"strings"
	"unicode"
)

// Category is stored and transported as an integer. The set of categories and
// their subcategories is a static configuration table, not user data.
type Category int

const (
	CategoryLanguage Category = iota
	CategoryTechnology
	CategoryCourseSubjects
	CategoryLaw
	CategoryMedical
	CategoryMilitary
)

var categoryNames = map[Category]string{
	CategoryLanguage:       "Language",
	CategoryTechnology:     "Technology",
	CategoryCourseSubjects: "Course Subjects",
	CategoryLaw:            "Law",
	CategoryMedical:        "Medical",
	CategoryMilitary:       "Military",
}

// subcategories holds the canonical (unspaced) subcategory names per category.
var subcategories = map[Category][]string{
	CategoryLanguage:       {"Spanish", "French", "German", "Japanese", "Mandarin", "English"},
	CategoryTechnology:     {"Programming", "Cybersecurity", "Networking", "ArtificialIntelligence", "Databases"},
	CategoryCourseSubjects: {"Mathematics", "Physics", "Chemistry", "Biology", "History", "Geography"},
	CategoryLaw:            {"CriminalLaw", "ContractLaw", "ConstitutionalLaw", "InternationalLaw"},
	CategoryMedical:        {"Anatomy", "Pharmacology", "Physiology", "Pathology"},
	CategoryMilitary:       {"Ranks", "Tactics", "MilitaryHistory", "Equipment"},
}

func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Subcategories returns the display-normalized subcategory names for c.
func (c Category) Subcategories() []string {
	canon := subcategories[c]
	out := make([]string, len(canon))
	for i, s := range canon {
		out[i] = NormalizeSubcategory(s)
	}
	return out
}

// ValidSubcategory checks sub against the category's closed list.
// Spacing differences are ignored so both "ArtificialIntelligence" and
// "Artificial Intelligence" resolve to the same entry.
func ValidSubcategory(c Category, sub string) bool {
	_, ok := CanonicalSubcategory(c, sub)
	return ok
}

// CanonicalSubcategory resolves sub against c's closed list, ignoring spacing
// and letter case, and returns the display-normalized table entry. Input
// casing never leaks into storage: "spanish" resolves to "Spanish" and
// "artificialintelligence" to "Artificial Intelligence". The second return is
// false when sub matches no entry.
func CanonicalSubcategory(c Category, sub string) (string, bool) {
	key := strings.ReplaceAll(sub, " ", "")
	for _, s := range subcategories[c] {
		if strings.EqualFold(s, key) {
			return NormalizeSubcategory(s), true
		}
	}
	return "", false
}

// NormalizeSubcategory inserts a space before interior capital letters so
// canonical names render consistently ("MilitaryHistory" -> "Military History").
// Already-spaced input is left intact.
func NormalizeSubcategory(sub string) string {
	var b strings.Builder
	runes := []rune(sub)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && runes[i-1] != ' ' {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Categories returns the full static table keyed by integer value, for the
// presentation layer to render pickers from.
func Categories() map[Category][]string {
	out := make(map[Category][]string, len(subcategories))
	for c := range subcategories {
		out[c] = c.Subcategories()
	}
	return out
}
