/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/fedikit/fedikit/cmd/fedikit-server/startcmd"
)

var logger = log.New("fedikit-server")

func main() {
	rootCmd := &cobra.Command{
		Use: "fedikit-server",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	rootCmd.AddCommand(startcmd.GetStartCmd())

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to run FediKit server.", log.WithError(err))
	}
}
