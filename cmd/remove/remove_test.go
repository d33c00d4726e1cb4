package remove_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/quickspend/cmd/clitest"
	"fjacquet/quickspend/cmd/remove"
	"fjacquet/quickspend/internal/ledger"
	"fjacquet/quickspend/internal/models"
)

func TestRemoveCommand_Metadata(t *testing.T) {
	assert.Equal(t, "delete <id>", remove.Cmd.Use)
	assert.Contains(t, remove.Cmd.Aliases, "rm")
}

func TestRemoveCommand(t *testing.T) {
	env := clitest.Setup(t, remove.Cmd)
	keep, err := models.NewTransactionBuilder().WithDescription("keep").Build()
	require.NoError(t, err)
	drop, err := models.NewTransactionBuilder().WithDescription("drop").Build()
	require.NoError(t, err)
	env.Seed(t, keep, drop)

	out, err := env.Run(t, "delete", drop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deleted "+drop.ID+"\n", out)

	txs := env.Transactions(t)
	require.Len(t, txs, 1)
	assert.Equal(t, keep.ID, txs[0].ID)

	_, err = env.Run(t, "rm", drop.ID)
	assert.True(t, errors.Is(err, ledger.ErrTransactionNotFound))

	_, err = env.Run(t, "delete")
	assert.Error(t, err)
}
