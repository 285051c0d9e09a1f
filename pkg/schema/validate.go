package schema

// Schema is a map of field names to their expected types.
type Schema map[string]Type

// Validate checks if data conforms to the schema. Every field is required.
// Returns an *AggregateError listing all failures, sorted by field name.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		return nil
	}

	var errs []error
	for fieldName, fieldType := range schema {
		value, exists := data[fieldName]
		if !exists {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
			})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		sortByKey(errs)
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ThreeNumbers is the payload shape of a three-number casting.
var ThreeNumbers = Schema{
	"n1": Int(),
	"n2": Int(),
	"n3": Int(),
}

// Calendar is the payload shape of a calendar casting.
var Calendar = Schema{
	"year_branch": Branch(),
	"month":       Int(),
	"day":         Int(),
	"hour_branch": Branch(),
}

// TrigramPair is the payload shape of a hexagram lookup.
var TrigramPair = Schema{
	"upper": IntRange(1, 8),
	"lower": IntRange(1, 8),
}
