package docerr

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "without cause",
			err:      New(CategoryModel, "unknown class"),
			expected: "model: unknown class",
		},
		{
			name:     "with cause",
			err:      Wrap(fmt.Errorf("disk full"), CategoryOutput, "document output failed"),
			expected: "output: document output failed: disk full",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.err.Error())
		})
	}
}

func TestSentinels(t *testing.T) {
	cause := fmt.Errorf("broken pipe")
	out := fmt.Errorf("hand-off: %w", OutputFailure(cause))

	assert.ErrorIs(t, out, ErrOutputFailure)
	assert.ErrorIs(t, out, cause)
	assert.NotErrorIs(t, out, ErrContractViolation)
	assert.True(t, IsRetryable(out))

	assert.ErrorIs(t, PageFinalized("CloseFooter"), ErrContractViolation)
	assert.False(t, IsRetryable(Contract("x")))
}

func TestCategoryHelpers(t *testing.T) {
	err := fmt.Errorf("load: %w", CyclicHierarchy("a.B"))
	assert.True(t, IsCategory(err, CategoryModel))
	assert.Equal(t, CategoryModel, GetCategory(err))
	assert.Equal(t, CategoryInternal, GetCategory(stdErrors.New("plain")))

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "a.B", e.Context["class"])
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 7, ExitCode(ConfigInvalid("model_path", "required")))
	assert.Equal(t, 2, ExitCode(MissingMessage("k", "en")))
	assert.Equal(t, 11, ExitCode(OutputFailure(stdErrors.New("x"))))
	assert.Equal(t, 10, ExitCode(stdErrors.New("x")))
}
