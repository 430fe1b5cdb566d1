package visibility

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/serialform/internal/model"
)

type fakeTypes map[*model.Class]bool

func (f fakeTypes) Contains(c *model.Class) bool { return f[c] }

type fakeConfig struct {
	included  fakeTypes
	generated map[*model.Class]bool
	calls     int
}

func (f *fakeConfig) IncludedTypes() TypeSet {
	f.calls++
	return f.included
}

func (f *fakeConfig) IsGeneratedDoc(c *model.Class) bool { return f.generated[c] }

func TestIsVisible_RequiresBothChecks(t *testing.T) {
	both := &model.Class{Name: "p.Both"}
	onlyIncluded := &model.Class{Name: "p.Included"}
	onlyGenerated := &model.Class{Name: "p.Generated"}
	neither := &model.Class{Name: "p.Neither"}

	cfg := &fakeConfig{
		included:  fakeTypes{both: true, onlyIncluded: true},
		generated: map[*model.Class]bool{both: true, onlyGenerated: true},
	}
	o := NewOracle(cfg)

	assert.True(t, o.IsVisible(both))
	assert.False(t, o.IsVisible(onlyIncluded))
	assert.False(t, o.IsVisible(onlyGenerated))
	assert.False(t, o.IsVisible(neither))
	assert.False(t, o.IsVisible(nil))
}

func TestIsVisible_StableAndUncached(t *testing.T) {
	c := &model.Class{Name: "p.C"}
	cfg := &fakeConfig{
		included:  fakeTypes{c: true},
		generated: map[*model.Class]bool{c: true},
	}
	o := NewOracle(cfg)

	for i := 0; i < 3; i++ {
		assert.True(t, o.IsVisible(c))
	}
	assert.Equal(t, 3, cfg.calls)

	cfg.generated[c] = false
	assert.False(t, o.IsVisible(c))
}

func TestSetConfiguration(t *testing.T) {
	src := `
packages:
  - name: p
    classes:
      - {name: p.A, superclass: q.Ext}
      - {name: p.B, generated: false}
      - {name: p.C, included: false}
`
	set, err := model.Load(strings.NewReader(src), 0)
	require.NoError(t, err)
	o := NewOracle(SetConfiguration{Set: set})

	a, _ := set.Lookup("p.A")
	b, _ := set.Lookup("p.B")
	c, _ := set.Lookup("p.C")
	assert.True(t, o.IsVisible(a))
	assert.False(t, o.IsVisible(b))
	assert.False(t, o.IsVisible(c))
	assert.False(t, o.IsVisible(a.Superclass))
	assert.False(t, o.IsVisible(&model.Class{Name: "p.A", Included: true, Generated: true}))
}
