package cli

import (
	"github.com/IvanChernomyrdin/go-todolist/internal/agent/api"
	"github.com/IvanChernomyrdin/go-todolist/internal/agent/config"
	"github.com/IvanChernomyrdin/go-todolist/internal/agent/memory"
	"github.com/spf13/cobra"
)

// для тестов
var (
	NewAPIClient = api.NewClient
	ReadPassword = func(cmd *cobra.Command, fromStdin bool) (string, error) {
		return readPassword(cmd, fromStdin)
	}
	SaveCredentials = config.Save
	SaveTodosState  = memory.SaveToFile
)
