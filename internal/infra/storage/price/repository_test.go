package price

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdditionsQuery(t *testing.T) {
	query, args, err := additionsQuery(5, []int64{1, 2}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, car_wash_id, name, price FROM car_wash_additions WHERE car_wash_id = $1 AND id IN ($2,$3) ORDER BY id ASC",
		query)
	assert.Equal(t, []interface{}{int64(5), int64(1), int64(2)}, args)
}
