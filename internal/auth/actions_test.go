package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAction(t *testing.T) {
	for _, action := range []string{ActionQuery, ActionCreate, ActionUpdate, ActionDelete, ActionWildcard} {
		assert.True(t, ValidateAction(action), action)
	}
	assert.False(t, ValidateAction("read"))
	assert.False(t, ValidateAction(""))
}

func TestValidateObject(t *testing.T) {
	for _, object := range Objects() {
		assert.True(t, ValidateObject(object), object)
	}
	assert.True(t, ValidateObject(ObjectWildcard))
	assert.False(t, ValidateObject("state"))
	assert.False(t, ValidateObject(""))
}

func TestExpandWildcard(t *testing.T) {
	assert.Equal(t, []string{ActionQuery, ActionCreate, ActionUpdate, ActionDelete}, ExpandWildcard(ActionWildcard))
	assert.Equal(t, []string{ActionUpdate}, ExpandWildcard(ActionUpdate))
}
