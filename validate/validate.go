package validate

import (
	"regexp"
	"strings"
)

// Field identifies a form input slot. Values double as the keys of the
// per-field error map consumed by the presenter.
type Field string

const (
	// FieldFirstName is the given-name input on the signup form.
	FieldFirstName Field = "first_name"
	// FieldLastName is the family-name input on the signup form.
	FieldLastName Field = "last_name"
	// FieldGender is the gender select on the signup form.
	FieldGender Field = "gender"
	// FieldCity is the city select on the signup form.
	FieldCity Field = "city"
	// FieldRole is the optional role select on the signup form.
	FieldRole Field = "role"
	// FieldFacebookLink is the Facebook profile URL input.
	FieldFacebookLink Field = "facebook_link"
	// FieldEmail is the email input shared by signup and login.
	FieldEmail Field = "email"
	// FieldPassword is the password input shared by signup and login.
	FieldPassword Field = "password"
	// FieldMobileNumber is the mobile number input on the signup form.
	FieldMobileNumber Field = "mobile_number"
)

// Symbols is the punctuation set accepted by the password symbol rule. The
// same set is used by the strength evaluator.
const Symbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

const (
	// PasswordMinLength is the inclusive lower bound on password length.
	PasswordMinLength = 6
	// PasswordMaxLength is the inclusive upper bound on password length.
	PasswordMaxLength = 20
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	facebookPattern = regexp.MustCompile(`(?i)^(https?://(www\.)?)?facebook\.com/[a-zA-Z0-9.]+/?$`)
	mobilePattern   = regexp.MustCompile(`^09\d{9}$`)
)

// Form carries the raw signup form values. Values are trimmed by the rules
// that require trimming; callers pass them exactly as entered.
type Form struct {
	FirstName    string
	LastName     string
	Gender       string
	City         string
	Role         string
	FacebookLink string
	Email        string
	Password     string
	MobileNumber string

	// HasRole marks forms that carry a role select. The role requirement
	// only applies when the field is present on the form at all.
	HasRole bool
}

// Errors maps failing fields to their user-facing messages. A nil or empty
// map means the form passed.
type Errors map[Field]string

// OK reports whether no field failed.
func (e Errors) OK() bool {
	return len(e) == 0
}

// Registration runs every signup rule and returns all failing fields at
// once. Fields never mask each other; only the password conditions are
// ordered internally.
func Registration(form Form) Errors {
	errs := Errors{}

	if strings.TrimSpace(form.FirstName) == "" {
		errs[FieldFirstName] = "First Name is required"
	}
	if strings.TrimSpace(form.LastName) == "" {
		errs[FieldLastName] = "Last Name is required"
	}
	if strings.TrimSpace(form.Gender) == "" {
		errs[FieldGender] = "Gender is required"
	}
	if strings.TrimSpace(form.City) == "" {
		errs[FieldCity] = "City is required"
	}
	if form.HasRole && strings.TrimSpace(form.Role) == "" {
		errs[FieldRole] = "Role is required"
	}

	if link := strings.TrimSpace(form.FacebookLink); link == "" {
		errs[FieldFacebookLink] = "Facebook Link is required"
	} else if !facebookPattern.MatchString(link) {
		errs[FieldFacebookLink] = "Please enter a valid Facebook profile URL (e.g., facebook.com/yourprofile)"
	}

	if msg, ok := Email(form.Email); !ok {
		errs[FieldEmail] = msg
	}
	if msg, ok := Password(form.Password); !ok {
		errs[FieldPassword] = msg
	}
	if msg, ok := MobileNumber(form.MobileNumber); !ok {
		errs[FieldMobileNumber] = msg
	}

	return errs
}

// Login checks only email presence and format plus password presence.
// Password composition is not re-checked at login.
func Login(email, password string) Errors {
	errs := Errors{}

	if msg, ok := Email(email); !ok {
		errs[FieldEmail] = msg
	}
	if strings.TrimSpace(password) == "" {
		errs[FieldPassword] = "Password is required"
	}

	return errs
}

// Email validates presence and address shape. Returns the failure message
// and false when the value does not pass.
func Email(value string) (string, bool) {
	email := strings.TrimSpace(value)
	if email == "" {
		return "Email is required", false
	}
	if !emailPattern.MatchString(email) {
		return "Please enter a valid email address.", false
	}
	return "", true
}

// Password applies the ordered password conditions and reports the first
// failing one.
func Password(value string) (string, bool) {
	password := strings.TrimSpace(value)
	switch {
	case password == "":
		return "Password is required", false
	case len(password) < PasswordMinLength:
		return "Password must be at least 6 characters long.", false
	case len(password) > PasswordMaxLength:
		return "Password must be maximum 20 characters long.", false
	case !containsUpper(password):
		return "Password must contain at least one uppercase letter.", false
	case !ContainsSymbol(password):
		return "Password must contain at least one special character (e.g., !@#$).", false
	case !containsDigit(password):
		return "Password must contain at least one numeric digit.", false
	}
	return "", true
}

// MobileNumber validates the fixed 09-prefixed 11-digit format.
func MobileNumber(value string) (string, bool) {
	mobile := strings.TrimSpace(value)
	if mobile == "" {
		return "Mobile Number is required", false
	}
	if !mobilePattern.MatchString(mobile) {
		return "Mobile Number must be 11 digits, start with 09, and contain only numbers", false
	}
	return "", true
}

// ContainsSymbol reports whether s contains at least one rune from the
// accepted punctuation set.
func ContainsSymbol(s string) bool {
	return strings.ContainsAny(s, Symbols)
}

func containsUpper(s string) bool {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
