package validator

import (
	"regexp"
	"strings"

	"github.com/example/claude-code-profiles/internal/ccp/domain"
)

var (
	reservedNamePattern = regexp.MustCompile(`^(?i)(con|prn|aux|nul|com[1-9]|lpt[1-9])$`)
	invalidCharsPattern = regexp.MustCompile(`[<>:"/\\|?*]`)
)

// Validator validates profile names for security and cross-platform compatibility.
type Validator struct{}

// New creates a new Validator instance.
func New() *Validator {
	return &Validator{}
}

// ValidateName validates a profile name used as a filename stem.
//
// The function rejects:
//   - Empty or whitespace-only names
//   - Dot navigation (. or ..)
//   - Null bytes (path traversal attack vector)
//   - Non-printable ASCII characters
//   - Invalid filesystem characters (<>:"/\|?*)
//   - Reserved Windows filenames (CON, PRN, AUX, NUL, COM1-9, LPT1-9)
func (v *Validator) ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) == 0 {
		return domain.ErrProfileNameEmpty
	}
	if trimmed == "." || trimmed == ".." {
		return domain.ErrProfileNameDot
	}
	if strings.ContainsRune(trimmed, 0) {
		return domain.ErrProfileNameNullByte
	}
	for _, r := range trimmed {
		if r < 0x20 || r >= 0x7f {
			return domain.ErrProfileNameNonPrintable
		}
	}
	if invalidCharsPattern.MatchString(trimmed) {
		return domain.ErrProfileNameInvalidChars
	}
	if reservedNamePattern.MatchString(trimmed) {
		return domain.ErrProfileNameReserved
	}
	return nil
}

// NormalizeName trims whitespace and validates the name.
func (v *Validator) NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if err := v.ValidateName(trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}
