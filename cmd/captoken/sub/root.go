// Copyright 2021 The captoken Authors
// This file is part of the captoken library.
//
// The captoken library is free software: you can redistribute it and/or modify
// it under the terms of the MIT Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The captoken library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// MIT Lesser General Public License for more details.
//
// You should have received a copy of the MIT Lesser General Public License
// along with the captoken library. If not, see <https://mit-license.org/>.

package sub

import (
	"fmt"
	"os"

	"captoken"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	rpchost string
	rootCmd = &cobra.Command{
		Use:                   fmt.Sprintf("%s <command> [<options>]", captoken.GetAppName()),
		DisableFlagsInUseLine: true,
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	versionCmd = &cobra.Command{
		Use:                   "version",
		Short:                 fmt.Sprintf("Print the version number of %s", captoken.GetAppName()),
		DisableFlagsInUseLine: true,
		Run: func(cmd *cobra.Command, args []string) {
			showVersion()
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, fmt.Sprintf("%s\n", err))
		os.Exit(1)
	}
}

func showVersion() {
	fmt.Println(captoken.VersionString())
}

func helpTmpl() string {
	return `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}`
}

func usageTmpl() string {
	return `Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}

Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Options:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] -h,--help" for more information about a command.{{end}}
`
}

func initCliSubCommands() {
	tokenflags := tokenCommand.PersistentFlags()
	tokenflags.StringVarP(&rpchost, "host", "", "", "Set rpc api host")
	walletflags := walletCommand.PersistentFlags()
	walletflags.StringVarP(&rpchost, "host", "", "", "Set rpc api host")
}

func init() {
	mFlags := rootCmd.PersistentFlags()
	mFlags.StringVarP(&cfgFile, "config", "C", "", "Set config file")
	rootCmd.SetHelpTemplate(helpTmpl())
	rootCmd.SetUsageTemplate(usageTmpl())
	rootCmd.AddCommand(versionCmd)
	initCliSubCommands()
}
