package core

import (
	"fmt"
	"strings"
)

// ValidateName rejects names that would escape or alias the storage directory.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

// Validate checks the document invariants that must hold before it is stored.
func (d WritingDocument) Validate() error {
	if err := ValidateName(d.Name); err != nil {
		return err
	}
	if d.FontSize == 0 {
		return fmt.Errorf("%w: font_size must be positive", ErrInvalidDocument)
	}
	return nil
}
