package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesAppDataTable(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='app_data'").Scan(&name)
	require.NoError(t, err, "Querying for app_data table should not produce an error")
	assert.Equal(t, "app_data", name)
}
