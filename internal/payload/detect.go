package payload

import (
	"regexp"
	"strings"
)

var (
	schemeURL  = regexp.MustCompile(`(?i)^https?://`)
	bareDomain = regexp.MustCompile(`(?i)^[a-z0-9]+([\-.][a-z0-9]+)*\.[a-z]{2,5}(:[0-9]{1,5})?(/.*)?$`)
	emailLike  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneChars = regexp.MustCompile(`^[+\d\s\-.()]+$`)
	isoDate    = regexp.MustCompile(`^\d{4}[-/]\d{2}[-/]\d{2}$`)
)

// Detect guesses the content type of text. A non-empty urlHint always wins.
// Structural markers (WIFI:, BEGIN:VCARD, BEGIN:VEVENT) are checked before
// the loose email and phone heuristics, and plain text is the fallback.
func Detect(text, urlHint string) Kind {
	s := strings.TrimSpace(text)

	if urlHint != "" {
		return KindURL
	}
	if schemeURL.MatchString(s) || bareDomain.MatchString(s) {
		return KindURL
	}
	if strings.HasPrefix(s, "WIFI:") {
		return KindWiFi
	}
	if strings.Contains(s, "BEGIN:VCARD") {
		return KindVCard
	}
	if strings.Contains(s, "BEGIN:VEVENT") {
		return KindEvent
	}
	if emailLike.MatchString(s) {
		return KindEmail
	}
	if looksLikePhone(s) {
		return KindPhone
	}
	return KindText
}

// looksLikePhone accepts + digits space - . ( ) with 7 to 15 digits, except
// ISO dates, which would otherwise pass the digit count.
func looksLikePhone(s string) bool {
	if !phoneChars.MatchString(s) || isoDate.MatchString(s) {
		return false
	}
	n := len(digitsOnly(s))
	return n >= 7 && n <= 15
}

// Parse detects the kind of text and recovers the matching record. URL and
// text records carry the trimmed input; when urlHint is set it is the URL.
func Parse(text, urlHint string) (Kind, Record) {
	kind := Detect(text, urlHint)
	s := strings.TrimSpace(text)
	switch kind {
	case KindURL:
		if urlHint != "" {
			return kind, URLRecord{URL: urlHint}
		}
		return kind, URLRecord{URL: s}
	case KindWiFi:
		return kind, ParseWiFi(s)
	case KindVCard:
		return kind, ParseVCard(s)
	case KindEvent:
		return kind, ParseEvent(s)
	case KindEmail:
		return kind, ParseEmail(s)
	case KindPhone:
		return kind, ParsePhone(s)
	}
	return KindText, TextRecord{Text: s}
}
