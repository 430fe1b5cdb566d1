package docerr

// Contract violations

func Contract(message string) *Error {
	return New(CategoryContract, message)
}

// PageFinalized reports a mutation attempted on a page that was already handed off.
func PageFinalized(operation string) *Error {
	return New(CategoryContract, "page already handed off").
		WithContext("operation", operation)
}

// Output

// OutputFailure is the DocumentOutputFailure kind: the printer could not write
// the finished document.
func OutputFailure(cause error) *Error {
	e := Wrap(cause, CategoryOutput, "document output failed")
	e.Retryable = true
	return e
}

// Model

func CyclicHierarchy(name string) *Error {
	return New(CategoryModel, "cyclic superclass chain").WithContext("class", name)
}

func HierarchyTooDeep(name string, limit int) *Error {
	return New(CategoryModel, "superclass chain exceeds maximum depth").
		WithContext("class", name).
		WithContext("limit", limit)
}

// Resources

func MissingMessage(key, lang string) *Error {
	return New(CategoryResource, "message not found").
		WithContext("key", key).
		WithContext("language", lang)
}

// Config

func ConfigInvalid(field, reason string) *Error {
	return New(CategoryConfig, "invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}
