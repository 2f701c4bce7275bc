package httperr

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("claim: %w", ErrBusiness("slot_not_available"))

	assert.True(t, IsBusiness(err, "slot_not_available"))
	assert.False(t, IsBusiness(err, "too_soon"))
	assert.Equal(t, "slot_not_available", BusinessCode(err))
	assert.Equal(t, "", BusinessCode(fmt.Errorf("boom")))
}

func TestPostgresCodes(t *testing.T) {
	exclusion := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})
	unique := &pgconn.PgError{Code: "23505"}

	assert.True(t, IsExclusionConflict(exclusion))
	assert.False(t, IsUniqueViolation(exclusion))
	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsExclusionConflict(fmt.Errorf("plain")))
}
