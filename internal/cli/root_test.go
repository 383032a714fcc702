package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "citare", cmd.Use)
	assert.Contains(t, cmd.Long, "CSL")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"cite", "check", "locale"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestCiteCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	citeCmd, _, err := cmd.Find([]string{"cite"})
	require.NoError(t, err)

	outputFlag := citeCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
	assert.Equal(t, "plain", outputFlag.DefValue)

	require.NotNil(t, citeCmd.Flags().Lookup("refs"))
	require.NotNil(t, citeCmd.Flags().Lookup("clusters"))
	require.NotNil(t, citeCmd.Flags().Lookup("bibliography"))
	require.NotNil(t, citeCmd.Flags().Lookup("locale-dir"))
}

func TestLocaleCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	localeCmd, _, err := cmd.Find([]string{"locale"})
	require.NoError(t, err)

	formFlag := localeCmd.Flags().Lookup("form")
	require.NotNil(t, formFlag)
	assert.Equal(t, "long", formFlag.DefValue)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "check", "style.csl"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
