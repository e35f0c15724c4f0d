package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextArray(t *testing.T) {
	assert.Equal(t, []string{}, textArray(nil))
	assert.Equal(t, []string{"a", "b"}, textArray([]string{"a", "b"}))

	empty := []string{}
	assert.Equal(t, empty, textArray(empty))
}

// A digest for a healthy team carries no highlights or concerns. The insert
// must still send empty arrays, not NULL, or the NOT NULL columns reject it.
func TestTextArray_EncodesEmptyArrayNotNull(t *testing.T) {
	m := pgtype.NewMap()

	buf, err := m.Encode(pgtype.TextArrayOID, pgtype.TextFormatCode, []string(nil), nil)
	require.NoError(t, err)
	assert.Nil(t, buf, "nil slice encodes as SQL NULL")

	buf, err = m.Encode(pgtype.TextArrayOID, pgtype.TextFormatCode, textArray(nil), nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(buf))
}
