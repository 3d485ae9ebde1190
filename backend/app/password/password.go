package password

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// Hasher applies a server-side pepper before bcrypt.
type Hasher struct {
	Pepper string
	Cost   int
}

func NewHasher(pepper string, cost int) *Hasher {
	return &Hasher{Pepper: pepper, Cost: cost}
}

func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain+h.Pepper), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches hashed. A malformed hash is a mismatch.
func (h *Hasher) Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain+h.Pepper)) == nil
}

const symbols = `@$!%*#?&`

var (
	allowed = regexp.MustCompile(`^[A-Za-z\d` + symbols + `]{6,20}$`)
	lower   = regexp.MustCompile(`[a-z]`)
	upper   = regexp.MustCompile(`[A-Z]`)
	digit   = regexp.MustCompile(`\d`)
	symbol  = regexp.MustCompile(`[` + symbols + `]`)
)

// ValidPolicy requires 6-20 characters from letters, digits and @$!%*#?&,
// with at least one lowercase, one uppercase, one digit and one symbol.
func ValidPolicy(pw string) bool {
	return allowed.MatchString(pw) &&
		lower.MatchString(pw) &&
		upper.MatchString(pw) &&
		digit.MatchString(pw) &&
		symbol.MatchString(pw)
}
