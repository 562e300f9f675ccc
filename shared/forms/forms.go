// Package forms holds presentation helpers for rendering input widgets.
package forms

const (
	baseClass    = "form-control"
	validClass   = "is-valid"
	invalidClass = "is-invalid"
)

// Field is the rendering state of one form input.
type Field struct {
	Bound     bool // the form was submitted
	HasErrors bool
	Secret    bool // password-like inputs are never marked valid
}

// InputClass returns the CSS classes for an input. Unbound fields and secret
// fields that passed validation get no state class.
func InputClass(f Field) string {
	state := ""
	switch {
	case !f.Bound:
	case f.HasErrors:
		state = invalidClass
	case !f.Secret:
		state = validClass
	}
	return baseClass + " " + state
}
