package version

// Set at build time:
//
//	go build -ldflags "-X Canopy/internal/version.Version=1.2.0 -X Canopy/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "0.3.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String is the one-line version banner.
func String() string {
	return "canopy " + Version + " (" + GitCommit + ", built " + BuildTime + ")"
}
