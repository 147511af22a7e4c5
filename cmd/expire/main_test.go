package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holmes-app/materialgirl/internal/domain"
)

func TestCommands(t *testing.T) {
	cmds, err := commands(false, []string{"rates", "news"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Command{
		{Key: "rates", Action: domain.CommandExpire},
		{Key: "news", Action: domain.CommandExpire},
	}, cmds)

	cmds, err = commands(true, nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.Command{{Action: domain.CommandSweep}}, cmds)

	_, err = commands(false, nil)
	assert.Error(t, err)

	_, err = commands(true, []string{"rates"})
	assert.Error(t, err)
}
