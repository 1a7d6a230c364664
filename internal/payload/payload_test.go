package payload

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	testCases := []struct {
		name    string
		address string
		subject string
		body    string
		want    string
	}{
		{name: "subject and body", address: "a@b.com", subject: "Hi", body: "Body", want: "mailto:a@b.com?subject=Hi&body=Body"},
		{name: "address only", address: "a@b.com", want: "mailto:a@b.com"},
		{name: "body only", address: "a@b.com", body: "x y", want: "mailto:a@b.com?body=x+y"},
		{name: "escaped subject", address: "a@b.com", subject: "R&D?", want: "mailto:a@b.com?subject=R%26D%3F"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Email(tc.address, tc.subject, tc.body))
		})
	}
}

func TestParseEmailRoundTrip(t *testing.T) {
	in := EmailRecord{Address: "team@example.com", Subject: "Hello there", Body: "Line & more"}
	require.Equal(t, in, ParseEmail(in.Payload()))
	require.Equal(t, EmailRecord{Address: "plain@example.com"}, ParseEmail("plain@example.com"))
}

func TestPhoneAndSMS(t *testing.T) {
	require.Equal(t, "tel:+15555555555", Phone("+15555555555"))
	require.Equal(t, "sms:+1234", SMS("+1234", ""))
	require.Equal(t, "sms:+1234?body=Hello%20World", SMS("+1234", "Hello World"))

	require.Equal(t, PhoneRecord{Number: "+1234567890"}, ParsePhone("tel:+1234567890"))
	require.Equal(t, PhoneRecord{Number: "+1234567890"}, ParsePhone("+1234567890"))

	require.Equal(t, SMSRecord{Number: "+1234567890"}, ParseSMS("sms:+1234567890"))
	require.Equal(t, SMSRecord{Number: "+1234567890", Message: "Hello World"}, ParseSMS("sms:+1234567890?body=Hello%20World"))
	require.Equal(t, SMSRecord{Number: "+1234", Message: "on my way"}, ParseSMS("SMSTO:+1234:on my way"))
	require.Equal(t, SMSRecord{Number: "+1234567890"}, ParseSMS("  +1234567890 "))
	require.Equal(t, SMSRecord{}, ParseSMS(""))
}

func TestWhatsApp(t *testing.T) {
	require.Equal(t, "https://wa.me/12345678900?text=Hello%20World", WhatsApp("+1 (234) 567-8900", "Hello World"))
	require.Equal(t, "https://wa.me/12345", WhatsApp("12-345", ""))

	require.Equal(t, WhatsAppRecord{Number: "1234567890"}, ParseWhatsApp("https://wa.me/1234567890"))
	require.Equal(t, WhatsAppRecord{Number: "1234567890", Message: "Hello World"}, ParseWhatsApp("https://wa.me/1234567890?text=Hello%20World"))
	require.Equal(t, WhatsAppRecord{}, ParseWhatsApp("invalid"))
	require.Equal(t, WhatsAppRecord{}, ParseWhatsApp("https://example.com/123"))
}

func TestWiFiTemplate(t *testing.T) {
	for _, enc := range []Encryption{EncryptionWPA, EncryptionWEP, EncryptionNone} {
		for _, hidden := range []bool{true, false} {
			ssid, password := "Office Net", "s3cr3t!"
			got := WiFi(ssid, password, enc, hidden)
			h := "false"
			if hidden {
				h = "true"
			}
			require.Equal(t, "WIFI:S:"+ssid+";T:"+string(enc)+";P:"+password+";H:"+h+";;", got)

			rec := ParseWiFi(got)
			require.Equal(t, ssid, rec.SSID)
			require.Equal(t, password, rec.Password)
			require.Equal(t, enc, rec.Encryption)
			require.Equal(t, hidden, rec.Hidden)
		}
	}
	require.Equal(t, "WIFI:S:MyNetwork;T:WPA;P:password123;H:false;;", WiFi("MyNetwork", "password123", EncryptionWPA, false))
}

func TestParseWiFiFieldOrder(t *testing.T) {
	rec := ParseWiFi("WIFI:T:WEP;S:Cafe;P:pa:ss;;")
	require.Equal(t, WiFiRecord{SSID: "Cafe", Password: "pa:ss", Encryption: EncryptionWEP}, rec)

	require.Equal(t, WiFiRecord{}, ParseWiFi("garbage"))
}

func TestVCard(t *testing.T) {
	got := VCard(VCardRecord{
		FirstName:    "John",
		LastName:     "Doe",
		Organization: "Acme Corp",
		Email:        "john@example.com",
		Mobile:       "1234567890",
	})
	lines := strings.Split(got, "\n")
	require.Equal(t, "BEGIN:VCARD", lines[0])
	require.Equal(t, "VERSION:3.0", lines[1])
	require.Equal(t, "N:Doe;John;;;", lines[2])
	require.Equal(t, "FN:John Doe", lines[3])
	require.Contains(t, lines, "ORG:Acme Corp")
	require.Contains(t, lines, "EMAIL;TYPE=WORK:john@example.com")
	require.Contains(t, lines, "TEL;TYPE=CELL:1234567890")
	require.Equal(t, "END:VCARD", lines[len(lines)-1])
	require.NotContains(t, got, "ADR")
}

func TestVCardRoundTrip(t *testing.T) {
	in := VCardRecord{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Organization: "Analytical Engines",
		Title:        "Programmer",
		Mobile:       "+44 1234",
		Phone:        "+44 5678",
		Email:        "ada@example.org",
		Website:      "https://example.org",
		Street:       "12 St James's Square",
		City:         "London",
		Zip:          "SW1Y",
		Country:      "UK",
	}
	out := ParseVCard(VCard(in))
	in.FullName = "Ada Lovelace"
	require.Equal(t, in, out)
}

func TestParseVCardTolerance(t *testing.T) {
	text := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Dr. Grace Hopper\r\nTEL;VALUE=uri;TYPE=voice:tel:+1-555\r\nEMAIL;TYPE=INTERNET;TYPE=PREF:grace@navy.mil\r\nEND:VCARD"
	rec := ParseVCard(text)
	require.Equal(t, "Dr. Grace Hopper", rec.FullName)
	require.Equal(t, "Dr. Grace Hopper", rec.FirstName)
	require.Equal(t, "tel:+1-555", rec.Mobile)
	require.Equal(t, "grace@navy.mil", rec.Email)
	require.Empty(t, rec.City)

	require.Equal(t, VCardRecord{}, ParseVCard("not a card"))
}

func TestEventIn(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	got := EventIn(EventRecord{
		Title:    "Launch",
		Start:    "2024-03-10T09:30",
		End:      "2024-03-10T11:00",
		Location: "Hall 2",
	}, berlin)
	require.Equal(t, strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:Launch",
		"DTSTART:20240310T083000Z",
		"DTEND:20240310T100000Z",
		"LOCATION:Hall 2",
		"END:VEVENT",
	}, "\n"), got)

	bad := EventIn(EventRecord{Title: "x", Start: "soon"}, time.UTC)
	require.Contains(t, bad, "DTSTART:\n")
}

func TestParseEvent(t *testing.T) {
	in := EventRecord{Title: "Standup", Location: "Room 1", Start: "2024-01-02T09:00", End: "2024-01-02T09:15", Description: "Daily"}
	require.Equal(t, in, ParseEvent(EventIn(in, time.UTC)))

	cal := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"BEGIN:VTIMEZONE",
		"DTSTART:19700101T000000",
		"END:VTIMEZONE",
		"BEGIN:VEVENT",
		"SUMMARY:Review",
		"DTSTART;TZID=Europe/Berlin:20240501T143015",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")
	rec := ParseEvent(cal)
	require.Equal(t, "Review", rec.Title)
	require.Equal(t, "2024-05-01T14:30", rec.Start)
	require.Empty(t, rec.End)
}

func TestDetect(t *testing.T) {
	testCases := []struct {
		text string
		hint string
		want Kind
	}{
		{text: "https://google.com", want: KindURL},
		{text: "google.com", want: KindURL},
		{text: "example.co.uk/path?q=1", want: KindURL},
		{text: "anything at all", hint: "https://x.io", want: KindURL},
		{text: "WIFI:S:Net;T:WPA;P:pw;;", want: KindWiFi},
		{text: "BEGIN:VCARD\nVN:John", want: KindVCard},
		{text: "BEGIN:VCALENDAR\nBEGIN:VEVENT\nEND:VEVENT", want: KindEvent},
		{text: "john@example.com", want: KindEmail},
		{text: "+1-555-555-5555", want: KindPhone},
		{text: "+1234567890", want: KindPhone},
		{text: "123-456-7890", want: KindPhone},
		{text: "2024-01-01", want: KindText},
		{text: "2024/01/01", want: KindText},
		{text: "12345", want: KindText},
		{text: "Hello World", want: KindText},
		{text: "", want: KindText},
	}
	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			require.Equal(t, tc.want, Detect(tc.text, tc.hint))
		})
	}
}

func TestParseDispatch(t *testing.T) {
	kind, rec := Parse("  WIFI:S:Home;T:nopass;P:;H:true;;  ", "")
	require.Equal(t, KindWiFi, kind)
	require.Equal(t, WiFiRecord{SSID: "Home", Encryption: EncryptionNone, Hidden: true}, rec)

	kind, rec = Parse("see you", "https://example.com")
	require.Equal(t, KindURL, kind)
	require.Equal(t, URLRecord{URL: "https://example.com"}, rec)

	kind, rec = Parse("+49 30 1234567", "")
	require.Equal(t, KindPhone, kind)
	require.Equal(t, PhoneRecord{Number: "+49 30 1234567"}, rec)

	kind, rec = Parse("just words", "")
	require.Equal(t, KindText, kind)
	require.Equal(t, "just words", rec.Payload())
}

func TestNewRecord(t *testing.T) {
	for _, k := range []Kind{KindURL, KindText, KindEmail, KindPhone, KindSMS, KindWhatsApp, KindWiFi, KindVCard, KindEvent} {
		r, ok := NewRecord(k)
		require.True(t, ok)
		require.Equal(t, k, r.Kind())
	}
	_, ok := NewRecord("fax")
	require.False(t, ok)
}

func TestPropertyPatternCached(t *testing.T) {
	require.Same(t, propertyPattern("FN"), propertyPattern("FN"))
	require.NotSame(t, propertyPattern("FN"), propertyPattern("N"))
	require.Equal(t, "Jane Roe", property("BEGIN:VCARD\nfn;CHARSET=UTF-8:Jane Roe\nEND:VCARD", "FN"))
}
