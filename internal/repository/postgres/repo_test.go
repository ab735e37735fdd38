package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidID(t *testing.T) {
	assert.True(t, validID("6f1c2f3e-9d7a-4a43-9a51-2a5a0f6b8c11"))
	assert.False(t, validID("42"))
	assert.False(t, validID(""))
}

func TestMigrations_Ordered(t *testing.T) {
	for i, m := range Migrations {
		assert.Equal(t, i+1, m.Version)
		assert.NotEmpty(t, m.Up)
	}
}
