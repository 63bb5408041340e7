package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	m := &Memory{}
	assert.NoError(t, m.WriteAll("a"))
	assert.NoError(t, m.WriteAll("b"))
	assert.Equal(t, "b", m.Text)
	assert.Equal(t, 2, m.Writes)

	m.Err = errors.New("denied")
	assert.EqualError(t, m.WriteAll("c"), "denied")
	assert.Equal(t, "b", m.Text)
}
