package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"
)

const releaseRepo = "blackcoderx/kurl"

var (
	updateCheckOnly bool
	updateYes       bool
)

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "Only check for a newer release, do not install")
	updateCmd.Flags().BoolVarP(&updateYes, "yes", "y", false, "Install without asking for confirmation")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update kurl to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := semver.Parse(version)
		if err != nil {
			return fmt.Errorf("cannot self-update a %q build; install a released binary", version)
		}

		latest, found, err := selfupdate.DetectLatest(releaseRepo)
		if err != nil {
			return fmt.Errorf("checking %s releases: %w", releaseRepo, err)
		}
		if !found || latest.Version.LTE(current) {
			fmt.Printf("kurl %s is up to date\n", version)
			return nil
		}

		fmt.Printf("kurl %s -> %s\n", version, latest.Version)
		if updateCheckOnly {
			return nil
		}

		if !updateYes && !confirm(fmt.Sprintf("Install %s?", latest.Version)) {
			return nil
		}

		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locating the running binary: %w", err)
		}
		if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
			return fmt.Errorf("installing %s: %w", latest.Version, err)
		}
		fmt.Printf("Updated to kurl %s\n", latest.Version)
		return nil
	},
}

func confirm(prompt string) bool {
	fmt.Printf("%s (y/N): ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
