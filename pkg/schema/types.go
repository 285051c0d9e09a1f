package schema

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/aretw0/meihua/pkg/domain"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "int", "branch").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// IntType validates whole numbers, optionally within [Min, Max].
type IntType struct {
	Min, Max *int
}

func (t *IntType) Name() string {
	switch {
	case t.Min != nil && t.Max != nil:
		return fmt.Sprintf("int[%d..%d]", *t.Min, *t.Max)
	default:
		return "int"
	}
}

func (t *IntType) Validate(value any) error {
	n, err := AsInt(value)
	if err != nil {
		return err
	}
	if t.Min != nil && n < *t.Min {
		return fmt.Errorf("must be >= %d", *t.Min)
	}
	if t.Max != nil && n > *t.Max {
		return fmt.Errorf("must be <= %d", *t.Max)
	}
	return nil
}

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// BranchType accepts an earthly branch either as its character or as 1..12.
type BranchType struct{}

func (t *BranchType) Name() string { return "branch" }

func (t *BranchType) Validate(value any) error {
	_, err := AsBranch(value)
	return err
}

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// IntRange creates an integer validator bounded to [min, max].
func IntRange(min, max int) Type { return &IntType{Min: &min, Max: &max} }

// String creates a string type validator.
func String() Type { return &StringType{} }

// Branch creates an earthly-branch validator.
func Branch() Type { return &BranchType{} }

// AsInt converts the numeric shapes produced by JSON decoders into an int.
func AsInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("expected int, got float (not a whole number)")
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("expected int, got %q", v.String())
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected int, got %T", value)
	}
}

// AsBranch converts a branch given as a character, digit string or number.
func AsBranch(value any) (domain.Branch, error) {
	if s, ok := value.(string); ok {
		return domain.ParseBranch(s)
	}
	n, err := AsInt(value)
	if err != nil {
		return 0, err
	}
	b := domain.Branch(n)
	if !b.Valid() {
		return 0, fmt.Errorf("must be within 1..12")
	}
	return b, nil
}
