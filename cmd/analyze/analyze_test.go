package analyze_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/quickspend/cmd/analyze"
	"fjacquet/quickspend/cmd/clitest"
	"fjacquet/quickspend/internal/models"
)

func TestAnalyzeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "analyze <description>", analyze.Cmd.Use)
	assert.NotNil(t, analyze.Cmd.Flags().Lookup("format"))
	assert.NotNil(t, analyze.Cmd.Flags().Lookup("refresh"))
}

func TestAnalyzeCommand_DoesNotRecord(t *testing.T) {
	env := clitest.Setup(t, analyze.Cmd)
	env.Provider.Reply = `{"type":"debit","categoryId":2}`

	out, err := env.Run(t, "analyze", "vegetables", "120")
	require.NoError(t, err)
	assert.Contains(t, out, "Description: vegetables")
	assert.Contains(t, out, "Amount:      ₹120.00")
	assert.Contains(t, out, "Category:    Groceries (2)")
	assert.Empty(t, env.Transactions(t))
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	env := clitest.Setup(t, analyze.Cmd)
	env.Provider.Reply = `{"type":"credit","categoryId":12}`

	out, err := env.Run(t, "analyze", "dividend 40", "--format", "json")
	require.NoError(t, err)

	var got models.TransactionAnalysis
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "dividend", got.Description)
	assert.Equal(t, models.TransactionTypeCredit, got.Type)
	assert.Equal(t, 12, got.CategoryID)
	require.NotNil(t, got.Amount)
	assert.InDelta(t, 40.0, *got.Amount, 1e-9)
}

func TestAnalyzeCommand_ProviderFailureFallsBack(t *testing.T) {
	env := clitest.Setup(t, analyze.Cmd)
	env.Provider.Reply = "not json"

	out, err := env.Run(t, "analyze", "mystery 9")
	require.NoError(t, err)
	assert.Contains(t, out, "Category:    Miscellaneous (15)")
}

func TestAnalyzeCommand_UnknownFormat(t *testing.T) {
	env := clitest.Setup(t, analyze.Cmd)

	_, err := env.Run(t, "analyze", "tea", "--format", "xml")
	assert.ErrorContains(t, err, "unsupported format")
}
