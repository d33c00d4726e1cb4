package commontx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/quickspend/cmd/add"
	"fjacquet/quickspend/cmd/clitest"
	"fjacquet/quickspend/cmd/commontx"
	"fjacquet/quickspend/internal/models"
)

func TestCommonCommand_Metadata(t *testing.T) {
	assert.Equal(t, "common", commontx.Cmd.Use)
	names := make([]string, 0)
	for _, sub := range commontx.Cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"add", "remove", "list", "suggest"}, names)
}

func TestCommonCommand_EntryResolvesLocally(t *testing.T) {
	env := clitest.Setup(t, commontx.Cmd, add.Cmd)

	out, err := env.Run(t, "common", "add", "Coffee", "--category", "food", "--amount", "4.50")
	require.NoError(t, err)
	assert.Equal(t, "Saved common transaction \"coffee\" as debit in Food\n", out)

	out, err = env.Run(t, "add", "coffee")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded coffee -₹4.50 in Food")

	out, err = env.Run(t, "add", "cofee")
	require.NoError(t, err)
	assert.Contains(t, out, "-₹4.50 in Food")
	assert.Equal(t, 0, env.Provider.Calls())

	out, err = env.Run(t, "common", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "coffee")
	assert.Contains(t, out, "₹4.50")

	out, err = env.Run(t, "common", "remove", "COFFEE")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed")

	out, err = env.Run(t, "common", "list")
	require.NoError(t, err)
	assert.Equal(t, "No common transactions.\n", out)
}

func TestCommonCommand_Suggest(t *testing.T) {
	env := clitest.Setup(t, commontx.Cmd, add.Cmd)

	out, err := env.Run(t, "common", "suggest")
	require.NoError(t, err)
	assert.Equal(t, "No suggestions yet.\n", out)

	for i := 0; i < 3; i++ {
		_, err := env.Run(t, "add", "parking 5")
		require.NoError(t, err)
	}
	assert.True(t, env.Logger.HasEntry("INFO", "Frequent transaction detected, consider adding it as a common transaction"))

	out, err = env.Run(t, "common", "suggest")
	require.NoError(t, err)
	assert.Equal(t, "parking (3 times)\n", out)
}

func TestCommonCommand_Errors(t *testing.T) {
	env := clitest.Setup(t, commontx.Cmd)

	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"common", "add", "tea", "--category", "Yachts"}, want: "unknown category"},
		{args: []string{"common", "add", "tea", "--type", "refund"}, want: "must be debit or credit"},
		{args: []string{"common", "add", "tea", "--amount", "lots"}, want: "not a number"},
		{args: []string{"common", "remove", "tea"}, want: "no common transaction"},
	}
	for _, tt := range tests {
		_, err := env.Run(t, tt.args...)
		assert.ErrorContains(t, err, tt.want, tt.args)
	}
	assert.Equal(t, models.MiscellaneousCategoryName, commontx.Cmd.Commands()[0].Flags().Lookup("category").DefValue)
}
