package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/nodeup/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download and install the configured Node.js and npm versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			node, _ := cmd.Flags().GetString("node")
			npm, _ := cmd.Flags().GetString("npm")
			target, _ := cmd.Flags().GetString("target")
			root, _ := cmd.Flags().GetString("download-root")

			return c.app.Run(cmd.Context(), app.RunOptions{
				ConfigPath:   configPath,
				NodeVersion:  node,
				NPMVersion:   npm,
				TargetDir:    target,
				DownloadRoot: root,
			})
		},
	}
	cmd.Flags().String("node", "", "Node.js version to install (e.g. v0.10.26), overrides the config file")
	cmd.Flags().String("npm", "", "npm version to install (e.g. 1.4.3), overrides the config file")
	cmd.Flags().StringP("target", "t", "", "Directory to provision the toolchain under")
	cmd.Flags().String("download-root", "", "Distribution server root URL, for internal mirrors")
	return cmd
}
