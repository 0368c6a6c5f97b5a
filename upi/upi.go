// Package upi builds and validates UPI deep-link payment payloads of the
// upi://pay form, the strings that payment QR symbols carry.
package upi

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	// Scheme is the deep link prefix every payload starts with.
	Scheme = "upi://pay"

	// DefaultCurrency is used when an intent carries no currency.
	DefaultCurrency = "INR"

	// MaxAmount is the largest accepted transaction amount.
	MaxAmount = 1_000_000

	// MaxNameLength bounds the payee display name.
	MaxNameLength = 100

	// MaxNoteLength bounds the free-form transaction note.
	MaxNoteLength = 100

	minLocalPartLength = 3
)

var (
	vpaPattern     = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+$`)
	ifscPattern    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	accountPattern = regexp.MustCompile(`^\d{9,18}$`)
)

// ValidationError reports a single rejected intent field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("upi: invalid %s: %s", e.Field, e.Reason)
}

// PaymentIntent describes one payment request. Handle and Name are
// mandatory, everything else optional. A zero Amount means the payer fills
// the amount in.
type PaymentIntent struct {
	Handle   string  // payee VPA, e.g. alice@bank
	Name     string  // payee display name
	Amount   float64 // rupees, at most two decimal places
	Currency string  // defaults to INR
	Note     string  // transaction note shown to the payer
	Ref      string  // transaction reference for reconciliation
}

// Validate checks every field of the intent and returns the first
// violation as a *ValidationError.
func (p PaymentIntent) Validate() error {
	if err := ValidateHandle(p.Handle); err != nil {
		return err
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(name) > MaxNameLength {
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("longer than %d characters", MaxNameLength)}
	}
	if p.Amount != 0 {
		if p.Amount < 0 {
			return &ValidationError{Field: "amount", Reason: "must be positive"}
		}
		if p.Amount > MaxAmount {
			return &ValidationError{Field: "amount", Reason: fmt.Sprintf("exceeds %d", MaxAmount)}
		}
		if !hasAtMostTwoDecimals(p.Amount) {
			return &ValidationError{Field: "amount", Reason: "more than two decimal places"}
		}
	}
	if p.Currency != "" && !isCurrencyCode(p.Currency) {
		return &ValidationError{Field: "currency", Reason: "must be 3 ASCII letters"}
	}
	if len(p.Note) > MaxNoteLength {
		return &ValidationError{Field: "note", Reason: fmt.Sprintf("longer than %d characters", MaxNoteLength)}
	}
	return nil
}

// isCurrencyCode reports whether s is a 3-letter ISO 4217 style code.
func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// ValidateHandle checks a virtual payment address. The local part must be
// at least three characters long.
func ValidateHandle(handle string) error {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return &ValidationError{Field: "handle", Reason: "must not be empty"}
	}
	if !vpaPattern.MatchString(handle) {
		return &ValidationError{Field: "handle", Reason: "must look like name@provider"}
	}
	local := handle[:strings.Index(handle, "@")]
	if len(local) < minLocalPartLength {
		return &ValidationError{Field: "handle", Reason: fmt.Sprintf("local part shorter than %d characters", minLocalPartLength)}
	}
	return nil
}

// ValidateIFSC checks a bank branch IFSC code, e.g. HDFC0001234.
func ValidateIFSC(code string) error {
	if !ifscPattern.MatchString(code) {
		return &ValidationError{Field: "ifsc", Reason: "must be 4 letters, a zero and 6 alphanumerics"}
	}
	return nil
}

// ValidateAccountNumber checks a bank account number, 9 to 18 digits.
func ValidateAccountNumber(account string) error {
	if !accountPattern.MatchString(account) {
		return &ValidationError{Field: "account", Reason: "must be 9 to 18 digits"}
	}
	return nil
}

// BankAccountVPA derives the NPCI account-addressing VPA for a bank account
// and branch, validating both inputs.
func BankAccountVPA(account, ifsc string) (string, error) {
	if err := ValidateAccountNumber(account); err != nil {
		return "", err
	}
	if err := ValidateIFSC(ifsc); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s@%s.ifsc.npci", account, ifsc), nil
}

// Build validates the intent and renders the deep link. Parameters appear
// in a fixed order so equal intents always produce byte-identical payloads.
func Build(p PaymentIntent) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(Scheme)

	params := make([][2]string, 0, 6)
	params = append(params, [2]string{"pa", strings.TrimSpace(p.Handle)})
	params = append(params, [2]string{"pn", strings.TrimSpace(p.Name)})
	if p.Amount != 0 {
		params = append(params, [2]string{"am", strconv.FormatFloat(p.Amount, 'f', 2, 64)})
	}
	cu := p.Currency
	if cu == "" {
		cu = DefaultCurrency
	}
	params = append(params, [2]string{"cu", cu})
	if p.Note != "" {
		params = append(params, [2]string{"tn", p.Note})
	}
	if p.Ref != "" {
		params = append(params, [2]string{"tr", p.Ref})
	}

	for i, kv := range params {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(kv[0])
		sb.WriteByte('=')
		sb.WriteString(escape(kv[1]))
	}
	return sb.String(), nil
}

// Parse reverses Build: it splits a upi://pay deep link back into a
// PaymentIntent. The intent is validated before being returned.
func Parse(payload string) (PaymentIntent, error) {
	var p PaymentIntent
	rest, ok := strings.CutPrefix(payload, Scheme+"?")
	if !ok {
		return p, &ValidationError{Field: "payload", Reason: "missing upi://pay prefix"}
	}
	for _, pair := range strings.Split(rest, "&") {
		k, v, found := strings.Cut(pair, "=")
		if !found {
			return p, &ValidationError{Field: "payload", Reason: "malformed parameter " + pair}
		}
		dec, err := url.QueryUnescape(v)
		if err != nil {
			return p, &ValidationError{Field: "payload", Reason: "bad escape in " + k}
		}
		switch k {
		case "pa":
			p.Handle = dec
		case "pn":
			p.Name = dec
		case "am":
			amount, err := strconv.ParseFloat(dec, 64)
			if err != nil {
				return p, &ValidationError{Field: "amount", Reason: "not a number"}
			}
			p.Amount = amount
		case "cu":
			p.Currency = dec
		case "tn":
			p.Note = dec
		case "tr":
			p.Ref = dec
		}
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// hasAtMostTwoDecimals reports whether the amount survives rounding to
// paise without loss.
func hasAtMostTwoDecimals(amount float64) bool {
	s := strconv.FormatFloat(amount, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s)-i-1 <= 2
	}
	return true
}

const upperhex = "0123456789ABCDEF"

// escape percent-encodes everything but RFC 3986 unreserved characters, so
// payloads stay readable to wallet apps and url.QueryUnescape is an exact
// inverse.
func escape(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			sb.WriteByte(c)
		default:
			sb.WriteByte('%')
			sb.WriteByte(upperhex[c>>4])
			sb.WriteByte(upperhex[c&0xF])
		}
	}
	return sb.String()
}
