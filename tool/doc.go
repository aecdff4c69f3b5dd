// Package tool provides the registry that maps model tool calls to Go handlers.
//
// Define tool arguments as a struct with json and jsonschema tags, then
// register a typed handler with Func:
//
//	type PersonArgs struct {
//	    FirstName string `json:"firstname" jsonschema:"Vorname des Klienten"`
//	    LastName  string `json:"lastname" jsonschema:"Nachname des Klienten"`
//	}
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("get_vitalwerte", "Vitalwerte eines Klienten",
//	        func(ctx context.Context, args PersonArgs) (string, error) {
//	            return lookup(ctx, args)
//	        }),
//	)
//
// Tools come back from Registry.Tools in registration order so requests to
// the model are stable. Handler errors become error results rather than
// failing the turn; the error text is what the model sees.
package tool
