package payload

import (
	"net/url"
	"regexp"
	"strings"
	"sync"
)

// ParseEmail recovers address, subject and body from a mailto: URI or a
// bare address.
func ParseEmail(s string) EmailRecord {
	s = strings.TrimSpace(s)
	rest, ok := cutPrefixFold(s, "mailto:")
	if !ok {
		return EmailRecord{Address: s}
	}
	addr, query, _ := strings.Cut(rest, "?")
	rec := EmailRecord{Address: unescapeComponent(addr)}
	if values, err := url.ParseQuery(query); err == nil {
		rec.Subject = values.Get("subject")
		rec.Body = values.Get("body")
	}
	return rec
}

// ParsePhone strips a tel: scheme; anything else is returned trimmed.
func ParsePhone(s string) PhoneRecord {
	s = strings.TrimSpace(s)
	if rest, ok := cutPrefixFold(s, "tel:"); ok {
		return PhoneRecord{Number: rest}
	}
	return PhoneRecord{Number: s}
}

// ParseSMS accepts sms:<number>[?body=...] and SMSTO:<number>:<message>;
// anything else is taken as a bare number, like ParsePhone.
func ParseSMS(s string) SMSRecord {
	s = strings.TrimSpace(s)
	if rest, ok := cutPrefixFold(s, "smsto:"); ok {
		number, message, _ := strings.Cut(rest, ":")
		return SMSRecord{Number: number, Message: message}
	}
	rest, ok := cutPrefixFold(s, "sms:")
	if !ok {
		return SMSRecord{Number: s}
	}
	number, query, _ := strings.Cut(rest, "?")
	return SMSRecord{Number: number, Message: queryParam(query, "body")}
}

// ParseWhatsApp recovers the number and prefilled text of a wa.me link.
func ParseWhatsApp(s string) WhatsAppRecord {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || !strings.EqualFold(strings.TrimPrefix(u.Host, "www."), "wa.me") {
		return WhatsAppRecord{}
	}
	return WhatsAppRecord{
		Number:  strings.Trim(u.Path, "/"),
		Message: queryParam(u.RawQuery, "text"),
	}
}

// ParseWiFi scans the ;-separated K:value fields of a WIFI: string. Hidden
// is true only when the literal H:true occurs.
func ParseWiFi(s string) WiFiRecord {
	body := strings.TrimPrefix(strings.TrimSpace(s), "WIFI:")
	rec := WiFiRecord{Hidden: strings.Contains(s, "H:true")}
	for _, field := range strings.Split(body, ";") {
		key, value, ok := strings.Cut(field, ":")
		if !ok {
			continue
		}
		switch key {
		case "S":
			if rec.SSID == "" {
				rec.SSID = value
			}
		case "P":
			if rec.Password == "" {
				rec.Password = value
			}
		case "T":
			if rec.Encryption == "" {
				rec.Encryption = Encryption(value)
			}
		}
	}
	return rec
}

// ParseVCard extracts single-line properties from vCard text. Folded
// continuation lines are not joined.
func ParseVCard(s string) VCardRecord {
	n := strings.Split(property(s, "N"), ";")
	adr := strings.Split(property(s, "ADR"), ";")

	rec := VCardRecord{
		LastName:     field(n, 0),
		FirstName:    field(n, 1),
		FullName:     property(s, "FN"),
		Organization: property(s, "ORG"),
		Title:        property(s, "TITLE"),
		Mobile:       property(s, "TEL;TYPE=CELL"),
		Phone:        property(s, "TEL;TYPE=WORK"),
		Email:        property(s, "EMAIL"),
		Website:      property(s, "URL"),
		// po box;extended;street;city;region;zip;country
		Street:  field(adr, 2),
		City:    field(adr, 3),
		Zip:     field(adr, 5),
		Country: field(adr, 6),
	}
	if rec.Mobile == "" {
		rec.Mobile = property(s, "TEL")
		if rec.Mobile == rec.Phone {
			rec.Mobile = ""
		}
	}
	if rec.FullName == "" {
		rec.FullName = strings.TrimSpace(rec.FirstName + " " + rec.LastName)
	}
	if rec.FirstName == "" && rec.LastName == "" {
		rec.FirstName = rec.FullName
	}
	return rec
}

var veventBlock = regexp.MustCompile(`(?is)BEGIN:VEVENT(.*?)END:VEVENT`)

// ParseEvent reads the first VEVENT in s. Times come back as zone-less
// "2006-01-02T15:04" strings; seconds are dropped.
func ParseEvent(s string) EventRecord {
	block := s
	if m := veventBlock.FindStringSubmatch(s); m != nil {
		block = m[1]
	}
	return EventRecord{
		Title:       property(block, "SUMMARY"),
		Location:    property(block, "LOCATION"),
		Start:       localNaive(property(block, "DTSTART")),
		End:         localNaive(property(block, "DTEND")),
		Description: property(block, "DESCRIPTION"),
	}
}

var icalStamp = regexp.MustCompile(`(\d{4})(\d{2})(\d{2})T(\d{2})(\d{2})`)

func localNaive(v string) string {
	m := icalStamp.FindStringSubmatch(v)
	if m == nil {
		return ""
	}
	return m[1] + "-" + m[2] + "-" + m[3] + "T" + m[4] + ":" + m[5]
}

var propertyPatterns sync.Map // key -> *regexp.Regexp

func propertyPattern(key string) *regexp.Regexp {
	if re, ok := propertyPatterns.Load(key); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?mi)^` + regexp.QuoteMeta(key) + `(?:;[^:\n]*)*:(.*)$`)
	actual, _ := propertyPatterns.LoadOrStore(key, re)
	return actual.(*regexp.Regexp)
}

// property returns the value of the first line "KEY[;params]:value",
// matched case-insensitively, or "".
func property(s, key string) string {
	m := propertyPattern(key).FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func field(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

// queryParam decodes one parameter of a raw query, treating '+' literally
// as encodeURIComponent output does.
func queryParam(rawQuery, key string) string {
	for _, kv := range strings.Split(rawQuery, "&") {
		k, v, _ := strings.Cut(kv, "=")
		if k == key {
			return unescapeComponent(v)
		}
	}
	return ""
}

func unescapeComponent(s string) string {
	if v, err := url.PathUnescape(s); err == nil {
		return v
	}
	return s
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
