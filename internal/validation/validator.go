package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mmrzaf/jsonfixture/internal/domain"
	"github.com/mmrzaf/jsonfixture/internal/jsontext"
	"github.com/mmrzaf/jsonfixture/internal/registry"
)

type Validator struct {
	keyRegistry *registry.KeyNamerRegistry
}

func NewValidator(keyRegistry *registry.KeyNamerRegistry) *Validator {
	return &Validator{keyRegistry: keyRegistry}
}

// maxDelimiterLen is the C++ limit on a raw string d-char-sequence.
const maxDelimiterLen = 16

var profileNameRe = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

func IsValidProfileName(s string) bool {
	return profileNameRe.MatchString(strings.TrimSpace(s))
}

// IsValidDelimiter reports whether d can appear between R" and ( in a raw
// string literal.
func IsValidDelimiter(d string) bool {
	if len(d) > maxDelimiterLen {
		return false
	}
	for i := 0; i < len(d); i++ {
		c := d[i]
		if c <= ' ' || c >= 0x7f {
			return false
		}
		switch c {
		case '(', ')', '\\':
			return false
		}
	}
	return true
}

func (v *Validator) ValidateProfile(p *domain.Profile) error {
	if p == nil {
		return errors.New("profile is required")
	}
	if p.Name != "" && !IsValidProfileName(p.Name) {
		return fmt.Errorf("invalid profile name: %s", p.Name)
	}
	if p.Count < 0 {
		return fmt.Errorf("count must be >= 0, got %d", p.Count)
	}
	if strings.TrimSpace(p.Output) == "" {
		return errors.New("output path is required")
	}
	if !IsValidDelimiter(p.Delimiter) {
		return fmt.Errorf("invalid raw string delimiter: %q", p.Delimiter)
	}
	if _, err := jsontext.ParseStyle(p.Style); err != nil {
		return err
	}
	if v.keyRegistry != nil {
		if _, err := v.keyRegistry.Get(p.Keys); err != nil {
			return err
		}
	}
	if err := ValidateLimits(p.Limits); err != nil {
		return fmt.Errorf("limits: %w", err)
	}
	return nil
}

func ValidateLimits(l domain.Limits) error {
	if l.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0, got %d", l.MaxDepth)
	}
	if l.StringMinLen < 1 || l.StringMaxLen < l.StringMinLen {
		return fmt.Errorf("string length range [%d,%d] is invalid", l.StringMinLen, l.StringMaxLen)
	}
	if l.KeyLen < 1 {
		return fmt.Errorf("key_len must be >= 1, got %d", l.KeyLen)
	}
	if l.NumberMax < l.NumberMin {
		return fmt.Errorf("number range [%g,%g] is invalid", l.NumberMin, l.NumberMax)
	}
	if l.ContainerMin < 1 || l.ContainerMax < l.ContainerMin {
		return fmt.Errorf("container size range [%d,%d] is invalid", l.ContainerMin, l.ContainerMax)
	}
	if l.DocumentFieldsMin < 1 || l.DocumentFieldsMax < l.DocumentFieldsMin {
		return fmt.Errorf("document field range [%d,%d] is invalid", l.DocumentFieldsMin, l.DocumentFieldsMax)
	}
	return nil
}
