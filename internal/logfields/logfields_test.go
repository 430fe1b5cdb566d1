package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpers(t *testing.T) {
	assert.Equal(t, KeyClass, Class("a.B").Key)
	assert.Equal(t, "a.B", Class("a.B").Value.String())
	assert.Equal(t, int64(2), Attempt(2).Value.Int64())
	assert.Equal(t, KeyPath, Path("site/serialized-form.html").Key)
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
	assert.Equal(t, "", Error(nil).Value.String())
}
