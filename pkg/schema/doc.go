// Package schema validates loosely typed payloads (decoded JSON, MCP tool
// arguments) before they are turned into castings.
//
// A Schema maps field names to types. Numbers arriving from JSON as float64 or
// json.Number are accepted by Int as long as they are whole.
//
//	s := schema.Schema{
//	    "n1": schema.Int(),
//	    "year_branch": schema.Branch(),
//	}
//
//	if err := schema.Validate(s, args); err != nil {
//	    // errors.Is(err, domain.ErrInvalidInput) holds
//	}
package schema
