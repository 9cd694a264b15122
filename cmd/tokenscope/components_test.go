package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComponentsCommand(t *testing.T) {
	module := writeModule(t)

	stdout, _, err := executeCommand("components", "-m", module)
	require.NoError(t, err)
	require.Contains(t, stdout, "c_button")
	require.Contains(t, stdout, "c_alert")
}

func TestComponentsCommand_JSON(t *testing.T) {
	module := writeModule(t)

	stdout, _, err := executeCommand("components", "-m", module, "--json")
	require.NoError(t, err)

	var payload struct {
		Count      int `json:"count"`
		Components []struct {
			Key    string `json:"key"`
			Tokens int    `json:"tokens"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	require.Equal(t, 2, payload.Count)
	require.Equal(t, "c_button", payload.Components[0].Key)
	require.Equal(t, 3, payload.Components[0].Tokens)
}

func TestBrowseWatchRequiresLocalModule(t *testing.T) {
	app := &appContext{}
	_, err := startWatch(app)
	require.Error(t, err)
}
