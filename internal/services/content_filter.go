package services

import "regexp"

// Words that trip the advisory content filter. Matches flag the report for
// review; they never reject a submission.
var bannedWords = []string{
	"spam", "scam", "scammer", "phishing", "malware",
	"fuck", "shit", "asshole", "bastard", "bitch",
}

// ContentFilter screens report descriptions for obvious junk: banned words,
// links, and contact info. Patterns are compiled once at construction.
type ContentFilter struct {
	bannedRegexps []*regexp.Regexp
	urlPattern    *regexp.Regexp
	emailPattern  *regexp.Regexp
	phonePattern  *regexp.Regexp
}

func NewContentFilter() *ContentFilter {
	f := &ContentFilter{
		bannedRegexps: make([]*regexp.Regexp, 0, len(bannedWords)),
		urlPattern:    regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`),
		emailPattern:  regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`),
		phonePattern:  regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}|\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`),
	}
	for _, word := range bannedWords {
		f.bannedRegexps = append(f.bannedRegexps, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
	}
	return f
}

// Check returns false with a reason when the text trips a pattern.
func (f *ContentFilter) Check(text string) (bool, string) {
	if text == "" {
		return true, ""
	}
	for _, re := range f.bannedRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_language"
		}
	}
	if f.urlPattern.MatchString(text) {
		return false, "url_not_allowed"
	}
	if f.emailPattern.MatchString(text) || f.phonePattern.MatchString(text) {
		return false, "contact_info_not_allowed"
	}
	return true, ""
}
