package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crnr/cronrunner/internal/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Display the version, build time, git commit and Go version of crn.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Short())
		fmt.Printf("Build Time: %s\n", version.BuildTime)
		fmt.Printf("Git Commit: %s\n", version.GitCommit)
		fmt.Printf("Go Version: %s\n", version.GoVersion)
	},
}
