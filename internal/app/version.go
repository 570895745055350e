package app

import "strings"

// Build metadata, set with ldflags:
//
//	go build -ldflags "-X github.com/heartmarshall/creatorcompass-backend/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

const shortCommitLen = 7

// BuildVersion renders the version reported by startup logs and /health.
// Unset commit and build time are left out.
func BuildVersion() string {
	var b strings.Builder
	b.WriteString(Version)

	commit := Commit
	if len(commit) > shortCommitLen {
		commit = commit[:shortCommitLen]
	}
	if commit != "" && commit != "unknown" {
		b.WriteString("+" + commit)
	}
	if BuildTime != "" && BuildTime != "unknown" {
		b.WriteString(" (" + BuildTime + ")")
	}
	return b.String()
}
