package presets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ThreeLevelsInOrder(t *testing.T) {
	levels, err := Load()
	require.NoError(t, err)
	require.Len(t, levels, 3)

	assert.Equal(t, []string{"beginner", "intermediate", "advanced"},
		[]string{levels[0].ID, levels[1].ID, levels[2].ID})
	assert.Equal(t, "初心者", levels[0].Label)
	for _, lv := range levels {
		assert.NotEmpty(t, lv.Words, lv.ID)
		for _, w := range lv.Words {
			assert.NotEmpty(t, w.Korean, "%s/%s", lv.ID, w.ID)
			assert.NotEmpty(t, w.Japanese, "%s/%s", lv.ID, w.ID)
			assert.False(t, w.IsFavorite)
		}
	}
}

func TestFind(t *testing.T) {
	levels, err := Load()
	require.NoError(t, err)

	lv, ok := Find(levels, "advanced")
	require.True(t, ok)
	assert.Equal(t, "上級", lv.Label)

	_, ok = Find(levels, "expert")
	assert.False(t, ok)
}

func TestParse_RejectsDuplicates(t *testing.T) {
	_, err := parse([]byte(`
[[level]]
id = "a"
  [[level.words]]
  id = "1"
  [[level.words]]
  id = "1"
`))
	assert.Error(t, err)

	_, err = parse([]byte(`
[[level]]
id = "a"
[[level]]
id = "a"
`))
	assert.Error(t, err)
}
