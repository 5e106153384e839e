package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

func TestCreateQuery_NormalizesEmail(t *testing.T) {
	query, args, err := createQuery(&domain.User{
		Email:        " Operator@Wash.Test ",
		PasswordHash: "hash",
		IsAdmin:      true,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO users (email,password_hash,is_admin) VALUES ($1,$2,$3) RETURNING id", query)
	assert.Equal(t, []interface{}{"operator@wash.test", "hash", true}, args)
}
