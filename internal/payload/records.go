// Package payload encodes structured records into the text formats QR
// scanners understand, and recovers records from those texts.
//
// Every function in this package is total: malformed input degrades to a
// record with empty fields, never an error.
package payload

// Kind names a payload content type.
type Kind string

const (
	KindURL      Kind = "url"
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindPhone    Kind = "phone"
	KindSMS      Kind = "sms"
	KindWhatsApp Kind = "whatsapp"
	KindWiFi     Kind = "wifi"
	KindVCard    Kind = "vcard"
	KindEvent    Kind = "event"
)

// Encryption is the T field of a WIFI: payload.
type Encryption string

const (
	EncryptionWPA  Encryption = "WPA"
	EncryptionWEP  Encryption = "WEP"
	EncryptionNone Encryption = "nopass"
)

// Record is one structured payload variant.
type Record interface {
	Kind() Kind
	Payload() string
}

type URLRecord struct {
	URL string `json:"url"`
}

type TextRecord struct {
	Text string `json:"text"`
}

type EmailRecord struct {
	Address string `json:"address"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type PhoneRecord struct {
	Number string `json:"number"`
}

type SMSRecord struct {
	Number  string `json:"number"`
	Message string `json:"message"`
}

type WhatsAppRecord struct {
	Number  string `json:"number"`
	Message string `json:"message"`
}

type WiFiRecord struct {
	SSID       string     `json:"ssid"`
	Password   string     `json:"password"`
	Encryption Encryption `json:"encryption"`
	Hidden     bool       `json:"hidden"`
}

// VCardRecord is the contact subset carried in a vCard 3.0 payload.
// FullName is only filled by ParseVCard; encoding derives FN from the
// first and last name.
type VCardRecord struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	FullName     string `json:"fullName,omitempty"`
	Organization string `json:"organization"`
	Title        string `json:"title"`
	Mobile       string `json:"mobile"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Website      string `json:"website"`
	Street       string `json:"street"`
	City         string `json:"city"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
}

// EventRecord holds local, zone-less datetimes ("2006-01-02T15:04").
type EventRecord struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
}

func (URLRecord) Kind() Kind      { return KindURL }
func (TextRecord) Kind() Kind     { return KindText }
func (EmailRecord) Kind() Kind    { return KindEmail }
func (PhoneRecord) Kind() Kind    { return KindPhone }
func (SMSRecord) Kind() Kind      { return KindSMS }
func (WhatsAppRecord) Kind() Kind { return KindWhatsApp }
func (WiFiRecord) Kind() Kind     { return KindWiFi }
func (VCardRecord) Kind() Kind    { return KindVCard }
func (EventRecord) Kind() Kind    { return KindEvent }

func (r URLRecord) Payload() string      { return r.URL }
func (r TextRecord) Payload() string     { return r.Text }
func (r EmailRecord) Payload() string    { return Email(r.Address, r.Subject, r.Body) }
func (r PhoneRecord) Payload() string    { return Phone(r.Number) }
func (r SMSRecord) Payload() string      { return SMS(r.Number, r.Message) }
func (r WhatsAppRecord) Payload() string { return WhatsApp(r.Number, r.Message) }
func (r WiFiRecord) Payload() string     { return WiFi(r.SSID, r.Password, r.Encryption, r.Hidden) }
func (r VCardRecord) Payload() string    { return VCard(r) }
func (r EventRecord) Payload() string    { return Event(r) }

// NewRecord returns an empty record of the given kind, for decoding
// caller-supplied fields into. ok is false for unknown kinds.
func NewRecord(k Kind) (r Record, ok bool) {
	switch k {
	case KindURL:
		return &URLRecord{}, true
	case KindText:
		return &TextRecord{}, true
	case KindEmail:
		return &EmailRecord{}, true
	case KindPhone:
		return &PhoneRecord{}, true
	case KindSMS:
		return &SMSRecord{}, true
	case KindWhatsApp:
		return &WhatsAppRecord{}, true
	case KindWiFi:
		return &WiFiRecord{}, true
	case KindVCard:
		return &VCardRecord{}, true
	case KindEvent:
		return &EventRecord{}, true
	}
	return nil, false
}
