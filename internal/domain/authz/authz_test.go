package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsOwner(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	assert.True(t, IsOwner(alice, alice))
	assert.False(t, IsOwner(alice, bob))
	assert.False(t, IsOwner(uuid.Nil, alice))
}
