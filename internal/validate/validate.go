package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// US ZIP: 5 digits or ZIP+4
	reZIP    = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	reEmail  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	rePhone  = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	reCard   = regexp.MustCompile(`^\d{13,19}$`)
	reExpiry = regexp.MustCompile(`^(0[1-9]|1[0-2])/?([0-9]{4}|[0-9]{2})$`)
	reCVC    = regexp.MustCompile(`^\d{3,4}$`)
)

func Zip(s string) bool    { return reZIP.MatchString(strings.TrimSpace(s)) }
func Phone(s string) bool  { return rePhone.MatchString(strings.TrimSpace(s)) }
func Card(s string) bool   { return reCard.MatchString(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) }
func Expiry(s string) bool { return reExpiry.MatchString(strings.TrimSpace(s)) }
func CVC(s string) bool    { return reCVC.MatchString(strings.TrimSpace(s)) }

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a resource identifier (product, order, user ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Qty parses a quantity. Zero and negative values are returned as-is; callers treat
// them as removals or no-ops. Unparseable input is reported as !ok.
func Qty(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	if n > 999 {
		n = 999
	}
	return n, true
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || len(s) > 80 {
		return "", false
	}
	return s, true
}

// Password enforces the signup length window.
func Password(s string) bool {
	l := len(s)
	return l >= 6 && l <= 72 // bcrypt ignores bytes past 72
}
