package params

import "fmt"

// Expected shapes used in ValidationError messages.
const (
	ExpectArray   = "an Array"
	ExpectBoolean = "a boolean"
	ExpectString  = "a string"
	ExpectHash    = "a Hash"
	ExpectInteger = "an Integer"
)

// ValidationError reports a parameter whose value does not have the declared
// shape. Its message reproduces the literal value and its runtime type.
type ValidationError struct {
	Parameter string
	Value     any
	Expected  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(`"%s" is not %s.  It looks to be a %s`, Inspect(e.Value), e.Expected, ClassName(e.Value))
}

// UnknownParameterError reports a parameter name that is not declared.
type UnknownParameterError struct {
	Name string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("Invalid parameter %s", e.Name)
}

// UnsupportedPlatformError is returned for any OS family other than the
// supported ones. It is raised before anything is declared.
type UnsupportedPlatformError struct {
	Module   string
	OSFamily string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("The %s module is not supported on a %s based system.", e.Module, e.OSFamily)
}
