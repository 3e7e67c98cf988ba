package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommand_Flags(t *testing.T) {
	cmd := NewCommand()

	port, err := cmd.Flags().GetInt("port")
	require.NoError(t, err)
	assert.Equal(t, 0, port)
	assert.NotNil(t, cmd.Flags().Lookup("module-root"))
	assert.Nil(t, cmd.Flags().Lookup("commit"))
}

func TestNewCommand_RequiresOutput(t *testing.T) {
	cmd := NewCommand()
	cmd.SetArgs([]string{"site.less"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "output" not set`)
}
