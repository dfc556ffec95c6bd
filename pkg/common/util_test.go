package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	_ "shem.pro/energy-telemetry-service/pkg/testing"
)

func TestRoundHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 3.0, Round(2.5, 0))
	assert.Equal(t, -3.0, Round(-2.5, 0))
	assert.Equal(t, 1.3, Round(1.25, 1))
	assert.Equal(t, 0.33, Round(1.0/3.0, 2))
	assert.Equal(t, 575.0, Round(575.0, 2))
}
