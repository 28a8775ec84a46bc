package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateUUIDv7(t *testing.T) {
	id := GenerateUUIDv7()
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, uuid.Version(7), id.Version())

	// v7 ids are time ordered, so later ids sort after earlier ones
	other := GenerateUUIDv7()
	assert.NotEqual(t, id, other)
}
