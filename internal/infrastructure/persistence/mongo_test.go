package persistence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskboard/backend/internal/domain/shared"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestSortValue(t *testing.T) {
	assert.Equal(t, 1, sortValue(shared.SortAsc))
	assert.Equal(t, -1, sortValue(shared.SortDesc))
}

func TestTransactionsUnsupported(t *testing.T) {
	t.Run("standalone deployment error", func(t *testing.T) {
		err := errors.New("Transaction numbers are only allowed on a replica set member or mongos")
		assert.True(t, transactionsUnsupported(err))
	})

	t.Run("illegal operation command error", func(t *testing.T) {
		err := mongo.CommandError{Name: "IllegalOperation", Message: "Transaction numbers are only allowed on a replica set"}
		assert.True(t, transactionsUnsupported(err))
	})

	t.Run("other errors are not swallowed", func(t *testing.T) {
		assert.False(t, transactionsUnsupported(errors.New("connection reset")))
		assert.False(t, transactionsUnsupported(mongo.CommandError{Name: "WriteConflict"}))
	})
}
