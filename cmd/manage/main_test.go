package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRegistered(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"migrate", "resize-images", "prune-images", "populate-destinations"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	prune, _, err := root.Find([]string{"prune-images"})
	require.NoError(t, err)
	flag := prune.Flags().Lookup("dry-run")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}
