package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoApproved(t *testing.T) {
	assert.True(t, Info{Status: "approved"}.Approved())
	assert.False(t, Info{Status: "in_process"}.Approved())
	assert.False(t, Info{}.Approved())
}
