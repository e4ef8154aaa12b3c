package commands

import (
	"github.com/spf13/cobra"

	"github.com/workpost-net/workpost/src/config"
)

var (
	_config = config.NewDefaultConfig()
)

//RootCmd is the root command for workpost
var RootCmd = &cobra.Command{
	Use:              "workpost",
	Short:            "proof-of-work post gossip",
	TraverseChildren: true,
}
