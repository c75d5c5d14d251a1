package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBind(t *testing.T) {
	query := `UPDATE students SET name = ?, email = ? WHERE id = ?`

	assert.Equal(t, query, bind(SQLite, query))
	assert.Equal(t,
		`UPDATE students SET name = $1, email = $2 WHERE id = $3`,
		bind(PostgreSQL, query),
	)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
	assert.Equal(t, "$1, $2, $3", bind(PostgreSQL, placeholders(3)))
}

func TestQuotedLocations(t *testing.T) {
	assert.Equal(t, "'BUDAPEST', 'MISKOLC', 'WARSAW', 'KRAKOW'", QuotedLocations())
}

func TestConn_ResetAssigned(t *testing.T) {
	var (
		addressID int64
		studentID int64 = 7
	)
	c := &conn{}

	c.assign(&addressID, 3)
	c.assign(&studentID, 11)
	c.assign(&studentID, 12)
	c.assign(&addressID, 3)
	assert.Len(t, c.assigned, 3)

	c.resetAssigned()
	assert.Zero(t, addressID)
	assert.Equal(t, int64(7), studentID)
	assert.Empty(t, c.assigned)
}
