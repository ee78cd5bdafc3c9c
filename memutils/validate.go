package memutils

// Validatable is anything DebugValidate can check, such as a buffer layout
type Validatable interface {
	Validate() error
}
