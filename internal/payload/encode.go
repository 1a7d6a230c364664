package payload

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Email builds a mailto: URI. Subject and body are form-encoded and only
// present when non-empty.
func Email(address, subject, body string) string {
	var params []string
	if subject != "" {
		params = append(params, "subject="+url.QueryEscape(subject))
	}
	if body != "" {
		params = append(params, "body="+url.QueryEscape(body))
	}
	if len(params) == 0 {
		return "mailto:" + address
	}
	return "mailto:" + address + "?" + strings.Join(params, "&")
}

// Phone builds a tel: URI; the number is kept verbatim.
func Phone(number string) string {
	return "tel:" + number
}

// SMS builds an sms: URI with an optional body.
func SMS(number, message string) string {
	if message == "" {
		return "sms:" + number
	}
	return "sms:" + number + "?body=" + encodeURIComponent(message)
}

// WhatsApp builds a wa.me click-to-chat link. Everything but digits is
// stripped from number.
func WhatsApp(number, message string) string {
	link := "https://wa.me/" + digitsOnly(number)
	if message == "" {
		return link
	}
	return link + "?text=" + encodeURIComponent(message)
}

// WiFi builds the positional WIFI: network configuration string. Values
// are not escaped.
func WiFi(ssid, password string, encryption Encryption, hidden bool) string {
	return "WIFI:S:" + ssid + ";T:" + string(encryption) + ";P:" + password + ";H:" + strconv.FormatBool(hidden) + ";;"
}

// VCard builds newline-joined vCard 3.0 text.
func VCard(r VCardRecord) string {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"N:" + r.LastName + ";" + r.FirstName + ";;;",
		"FN:" + r.FirstName + " " + r.LastName,
	}
	if r.Organization != "" {
		lines = append(lines, "ORG:"+r.Organization)
	}
	if r.Title != "" {
		lines = append(lines, "TITLE:"+r.Title)
	}
	if r.Mobile != "" {
		lines = append(lines, "TEL;TYPE=CELL:"+r.Mobile)
	}
	if r.Phone != "" {
		lines = append(lines, "TEL;TYPE=WORK:"+r.Phone)
	}
	if r.Email != "" {
		lines = append(lines, "EMAIL;TYPE=WORK:"+r.Email)
	}
	if r.Website != "" {
		lines = append(lines, "URL:"+r.Website)
	}
	if r.Street != "" || r.City != "" || r.Zip != "" || r.Country != "" {
		lines = append(lines, "ADR;TYPE=WORK:;;"+r.Street+";"+r.City+";;"+r.Zip+";"+r.Country)
	}
	lines = append(lines, "END:VCARD")
	return strings.Join(lines, "\n")
}

// Event builds a VEVENT, interpreting start and end in time.Local.
func Event(r EventRecord) string {
	return EventIn(r, time.Local)
}

// EventIn builds a VEVENT whose DTSTART/DTEND are r.Start and r.End read as
// wall-clock times in loc and written in UTC basic format. The zone is not
// carried in the output, so ParseEvent cannot restore the original wall
// clock unless loc is UTC.
func EventIn(r EventRecord, loc *time.Location) string {
	lines := []string{
		"BEGIN:VEVENT",
		"SUMMARY:" + r.Title,
		"DTSTART:" + utcBasic(r.Start, loc),
		"DTEND:" + utcBasic(r.End, loc),
	}
	if r.Location != "" {
		lines = append(lines, "LOCATION:"+r.Location)
	}
	if r.Description != "" {
		lines = append(lines, "DESCRIPTION:"+r.Description)
	}
	lines = append(lines, "END:VEVENT")
	return strings.Join(lines, "\n")
}

const icalBasicUTC = "20060102T150405Z"

var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// utcBasic returns "" when s is not a recognised datetime.
func utcBasic(s string, loc *time.Location) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(icalBasicUTC)
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC().Format(icalBasicUTC)
		}
	}
	return ""
}

func digitsOnly(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// encodeURIComponent escapes everything except A-Z a-z 0-9 and -_.!~*'()
// so links match what browsers and messaging apps produce.
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if uriUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func uriUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
