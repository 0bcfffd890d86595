// Package validator turns raw form input into validation states for card
// numbers, expiry dates, CVCs and IBANs.
//
// Validators never return errors: every input, however malformed, maps to a
// State.
package validator

type Status uint8

const (
	StatusEmpty Status = iota
	StatusIncomplete
	StatusInvalid
	StatusValid
)

var statusNames = [...]string{
	StatusEmpty:      "empty",
	StatusIncomplete: "incomplete",
	StatusInvalid:    "invalid",
	StatusValid:      "valid",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Reason says why a state is incomplete or invalid.
type Reason string

const (
	ReasonNone Reason = ""

	ReasonIncompleteNumber Reason = "incomplete_number"
	ReasonIncompleteExpiry Reason = "incomplete_expiry"
	ReasonIncompleteCVC    Reason = "incomplete_cvc"
	ReasonIncompleteIBAN   Reason = "incomplete_iban"

	ReasonInvalidBrand  Reason = "invalid_brand"
	ReasonInvalidLength Reason = "invalid_length"
	ReasonInvalidLuhn   Reason = "invalid_luhn"

	ReasonInvalidMonth Reason = "invalid_month"
	ReasonExpired      Reason = "expired"

	ReasonShouldStartWithCountryCode Reason = "should_start_with_country_code"
	ReasonInvalidCountryCode         Reason = "invalid_country_code"
	ReasonInvalidFormat              Reason = "invalid_format"
)

type State struct {
	Status Status `json:"status"`
	Reason Reason `json:"reason,omitempty"`
}

func Empty() State {
	return State{Status: StatusEmpty}
}

func Valid() State {
	return State{Status: StatusValid}
}

func Incomplete(reason Reason) State {
	return State{Status: StatusIncomplete, Reason: reason}
}

func Invalid(reason Reason) State {
	return State{Status: StatusInvalid, Reason: reason}
}

func (s State) String() string {
	if s.Reason == ReasonNone {
		return s.Status.String()
	}
	return s.Status.String() + "(" + string(s.Reason) + ")"
}

// digitsOnly drops every byte that is not an ASCII digit.
func digitsOnly(input string) string {
	clean := true
	for i := 0; i < len(input); i++ {
		if input[i] < '0' || input[i] > '9' {
			clean = false
			break
		}
	}
	if clean {
		return input
	}

	buf := make([]byte, 0, len(input))
	for i := 0; i < len(input); i++ {
		if input[i] >= '0' && input[i] <= '9' {
			buf = append(buf, input[i])
		}
	}
	return string(buf)
}
