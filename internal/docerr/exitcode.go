package docerr

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetCategory(err) {
	case CategoryConfig:
		return 7
	case CategoryModel, CategoryResource:
		return 2
	case CategoryOutput:
		return 11
	default:
		return 10
	}
}
