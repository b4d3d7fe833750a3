package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt(t *testing.T) {
	for in, want := range map[string]int{
		`1200`:   1200,
		`"800"`:  800,
		`1500.0`: 1500,
		`""`:     0,
		`null`:   0,
	} {
		var n flexInt
		require.NoError(t, json.Unmarshal([]byte(in), &n), in)
		assert.Equal(t, want, int(n), in)
	}

	for _, in := range []string{`150.7`, `1e20`, `-1e20`, `"99999999999"`, `"12.5"`, `"lots"`} {
		var n flexInt
		assert.Error(t, json.Unmarshal([]byte(in), &n), in)
	}
}
