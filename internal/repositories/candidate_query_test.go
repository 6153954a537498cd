package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTextField(t *testing.T) {
	for _, f := range TextFields {
		got, ok := ParseTextField(string(f))
		assert.True(t, ok, f)
		assert.Equal(t, f, got)
	}

	for _, name := range []string{"", "id", "password_hash", "date_of_birth", "FIRST_NAME", "first_name;--"} {
		_, ok := ParseTextField(name)
		assert.False(t, ok, name)
	}
}

func TestSortColumn(t *testing.T) {
	col, ok := SortColumn("")
	assert.True(t, ok)
	assert.Equal(t, "created_at", col)

	col, ok = SortColumn("id")
	assert.True(t, ok)
	assert.Equal(t, "created_at", col)

	col, ok = SortColumn("date_of_birth")
	assert.True(t, ok)
	assert.Equal(t, "date_of_birth", col)

	_, ok = SortColumn("uploaded_by_id")
	assert.False(t, ok)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%ann%", containsPattern("ann"))
	assert.Equal(t, `%50\%\_off\\%`, containsPattern(`50%_off\`))
}
