// Package validation checks request payloads before they leave the
// client. Struct tag validation covers configuration and typed request
// structs; the programmatic Validator covers checks that tags cannot
// express, such as cross-field rules on editing requests.
//
//	type PolishRequest struct {
//	    Text  string `json:"text" validate:"required,max=50000"`
//	    Style string `json:"style" validate:"omitempty,oneof=gentle standard thorough"`
//	}
//	err := validation.Struct(req)
package validation
