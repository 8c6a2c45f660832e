package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("learnlab", displayVersion(version))
	},
}

// normalizeVersion returns v with a leading "v", or "" when v is not a
// semantic version.
func normalizeVersion(v string) string {
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}

func displayVersion(v string) string {
	sv := normalizeVersion(v)
	if sv == "" {
		return v
	}
	if pre := semver.Prerelease(sv); pre != "" {
		return fmt.Sprintf("%s (pre-release %s)", sv, strings.TrimPrefix(pre, "-"))
	}
	return sv
}

// userAgent identifies the client to the backend, e.g. "learnlab/1.4.0".
func userAgent() string {
	sv := normalizeVersion(version)
	if sv == "" {
		return "learnlab/dev"
	}
	return "learnlab/" + strings.TrimPrefix(semver.Canonical(sv), "v")
}
