package lang

import (
	"sort"
	"strings"
)

// Default is the language every unknown code resolves to.
const Default = "en"

type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

// table is read-only after init.
var table = map[string]Language{
	"en": {Code: "en", Name: "English", NativeName: "English"},
	"hi": {Code: "hi", Name: "Hindi", NativeName: "हिंदी"},
	"te": {Code: "te", Name: "Telugu", NativeName: "తెలుగు"},
	"ta": {Code: "ta", Name: "Tamil", NativeName: "தமிழ்"},
	"bn": {Code: "bn", Name: "Bengali", NativeName: "বাংলা"},
	"mr": {Code: "mr", Name: "Marathi", NativeName: "मराठी"},
	"gu": {Code: "gu", Name: "Gujarati", NativeName: "ગુજરાતી"},
	"kn": {Code: "kn", Name: "Kannada", NativeName: "ಕನ್ನಡ"},
	"ml": {Code: "ml", Name: "Malayalam", NativeName: "മലയാളം"},
	"pa": {Code: "pa", Name: "Punjabi", NativeName: "ਪੰਜਾਬੀ"},
	"or": {Code: "or", Name: "Odia", NativeName: "ଓଡ଼ିଆ"},
	"ur": {Code: "ur", Name: "Urdu", NativeName: "اردو"},
}

// Resolve maps a requested code onto a supported one. Region suffixes
// ("hi-IN", "en_US") are dropped and matching ignores case. Anything
// unknown becomes Default.
func Resolve(code string) string {
	c := strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(c, "-_"); i >= 0 {
		c = c[:i]
	}
	if l, ok := table[c]; ok {
		return l.Code
	}
	return Default
}

func IsSupported(code string) bool {
	_, ok := table[code]
	return ok
}

// All returns the supported languages ordered by code.
func All() []Language {
	out := make([]Language, 0, len(table))
	for _, l := range table {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
