package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_Ordered(t *testing.T) {
	files, err := Files()
	require.NoError(t, err)

	assert.Equal(t, []string{"0001_init.sql", "0002_catalog.sql", "0003_bookings.sql"}, files)
}

func TestFiles_DefineQueriedTables(t *testing.T) {
	files, err := Files()
	require.NoError(t, err)

	var all string
	for _, f := range files {
		body, err := fs.ReadFile(f)
		require.NoError(t, err)
		all += string(body)
	}

	for _, table := range []string{
		"users", "car_washes", "boxes", "schedules", "body_types", "car_configurations",
		"user_cars", "car_wash_prices", "car_wash_additions", "bookings",
	} {
		assert.Contains(t, all, "CREATE TABLE IF NOT EXISTS "+table+" (", table)
	}
	assert.Contains(t, all, "UNIQUE (car_wash_id, day_of_week)")
	assert.Contains(t, all, "UNIQUE (car_wash_id, body_type_id)")
}
