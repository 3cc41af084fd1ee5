// Package errors provides structured, actionable error messages for navkit.
//
// Errors carry a stable code, a category, a plain-language explanation and
// an optional hint on how to fix the problem. Router sentinels are mapped
// onto codes with FromRouter so the CLI and the remote bridge can present
// them consistently.
//
// # Error Codes
//
// Each error has a unique code (e.g., "N001") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Usage
//
//	err := errors.New("N020").
//	    WithLocation("navkit.json", 12).
//	    WithSuggestion(`Give each route a unique "name"`)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR N020: Duplicate route name
//	//
//	//   navkit.json:12
//	//
//	//   Two routes in the table share the same non-empty name.
//	//
//	//   Hint: Give each route a unique "name"
//	//
//	//   Learn more: https://navkit.dev/docs/errors/N020
package errors
