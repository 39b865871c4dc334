package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardTable(t *testing.T) {
	table := StandardTable()
	require.Equal(t, 35, table.Len())

	assert.Equal(t, "1", table.At(0))
	assert.Equal(t, "9", table.At(8))
	assert.Equal(t, "A", table.At(9))
	assert.Equal(t, "Z", table.At(34))
}

func TestKeyboardTable(t *testing.T) {
	table := KeyboardTable()
	require.Equal(t, 35, table.Len())

	assert.Equal(t, "9", table.At(8))
	assert.Equal(t, "Q", table.At(9))
	assert.Equal(t, "P", table.At(18))
	assert.Equal(t, "A", table.At(19))
	assert.Equal(t, "M", table.At(34))
}

func TestTablesCoverSameNamespace(t *testing.T) {
	std, kbd := StandardTable(), KeyboardTable()
	require.Equal(t, std.Len(), kbd.Len())

	for i := 0; i < kbd.Len(); i++ {
		_, ok := std.Locate(kbd.At(i))
		assert.True(t, ok, "keyboard entry %q missing from standard table", kbd.At(i))
	}
}

func TestLocate(t *testing.T) {
	table := StandardTable()

	i, ok := table.Locate("A")
	require.True(t, ok)
	assert.Equal(t, 9, i)

	_, ok = table.Locate("MAIL-2")
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "A", Normalize("  a \n"))
	assert.Equal(t, "", Normalize("   "))
}

func TestParseList(t *testing.T) {
	set := ParseList("1\n b \n\nZ\n")
	assert.Equal(t, map[string]bool{"1": true, "B": true, "Z": true}, set)
}
