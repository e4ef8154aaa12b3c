package commands

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/workpost-net/workpost/src/chain"
	"github.com/workpost-net/workpost/src/net"
	"github.com/workpost-net/workpost/src/node"
	"github.com/workpost-net/workpost/src/peers"
	"github.com/workpost-net/workpost/src/service"
)

//NewRunCmd returns the command that starts a workpost node
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run [port]",
		Short:   "Run node",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: loadConfig,
		RunE:    runWorkpost,
	}
	AddRunFlags(cmd)
	return cmd
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runWorkpost(cmd *cobra.Command, args []string) error {
	logger := _config.Logger()

	// A bare port argument binds 127.0.0.1:<port>, the short form used on
	// the default local network.
	if len(args) == 1 {
		port, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil {
			return fmt.Errorf("bad port %q: %v", args[0], err)
		}
		_config.BindAddr = fmt.Sprintf("127.0.0.1:%d", port)
	}

	peerStore := peers.NewJSONPeers(_config.DataDir)
	peerList, err := peerStore.Peers()
	if err != nil {
		logger.Error("Cannot read peers:", err)
		return err
	}

	trans, err := net.NewUDPTransport(_config.BindAddr, logger)
	if err != nil {
		logger.Error("Cannot bind UDP socket:", err)
		return err
	}

	n := node.NewNode(_config, peerList, chain.NewInmemStore(), trans)
	if err := n.Init(); err != nil {
		logger.Error("Cannot initialize node:", err)
		return err
	}

	if !_config.NoService {
		serviceServer := service.NewService(_config.ServiceAddr, n, logger)
		go serviceServer.Serve()
	}

	n.Run()

	return nil
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

//AddRunFlags adds flags to the Run command
func AddRunFlags(cmd *cobra.Command) {

	cmd.Flags().String("datadir", _config.DataDir, "Top-level directory for configuration and data")
	cmd.Flags().String("log", _config.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.Flags().String("log-file", _config.LogFile, "Duplicate log output to a file")

	// Network
	cmd.Flags().StringP("listen", "l", _config.BindAddr, "Listen IP:Port for the gossip socket")
	cmd.Flags().Duration("heartbeat", _config.HeartbeatTimeout, "Pause between loop iterations")
	cmd.Flags().Bool("answer-get-tip", _config.AnswerGetTip, "Answer GetTip with the tip post")

	// Service
	cmd.Flags().Bool("no-service", _config.NoService, "Disable the HTTP info service")
	cmd.Flags().StringP("service-listen", "s", _config.ServiceAddr, "Listen IP:Port for the HTTP service")

	// Mining
	cmd.Flags().Bool("mine", _config.Mine, "Mine posts on top of the tip")
	cmd.Flags().Uint64("mine-target", _config.MineTarget, "Local score a mined post must reach")
	cmd.Flags().Uint64("mine-budget", _config.MineBudget, "Attempts per mining round")
}

func loadConfig(cmd *cobra.Command, args []string) error {

	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	_config.Logger().WithFields(logrus.Fields{
		"DataDir":          _config.DataDir,
		"BindAddr":         _config.BindAddr,
		"ServiceAddr":      _config.ServiceAddr,
		"NoService":        _config.NoService,
		"LogLevel":         _config.LogLevel,
		"HeartbeatTimeout": _config.HeartbeatTimeout,
		"AnswerGetTip":     _config.AnswerGetTip,
		"Mine":             _config.Mine,
		"MineTarget":       _config.MineTarget,
		"MineBudget":       _config.MineBudget,
	}).Debug("RUN")

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// Register flags with viper. Include flags from this command and all
	// other persistent flags from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// first unmarshal to read from CLI flags
	if err := viper.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/workpost.toml (.json, .yaml also work)
	viper.SetConfigName("workpost")      // name of config file (without extension)
	viper.AddConfigPath(_config.DataDir) // search root directory

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		_config.Logger().Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		_config.Logger().Debugf("No config file found in: %s", _config.DataDir)
	} else {
		return err
	}

	// second unmarshal to read from config file
	return viper.Unmarshal(_config)
}
