package handler

import (
	"encoding/json"
	"net/http"
	"os"
	"runtime"
)

// Build identity, stamped by the devtool's build command via -ldflags -X.
// Left at the defaults for plain `go build` and test binaries.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unset"
)

// VersionInfo is the /version response body.
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// HandleVersion reports what build is running, so a deploy can be verified
// with one unauthenticated request.
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(VersionInfo{
			Version:   resolveVersion(),
			GoVersion: runtime.Version(),
			BuildTime: BuildTime,
			GitCommit: GitCommit,
		})
	}
}

// resolveVersion prefers the stamped build version, then the VERSION env
// var (container deploys tag the image that way), then the dev default.
func resolveVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if env := os.Getenv("VERSION"); env != "" {
		return env
	}
	return "dev"
}
