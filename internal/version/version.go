// Package version exposes build metadata injected through -ldflags.
package version

//nolint:gochecknoglobals // Overridden at build time with -ldflags "-X ...".
var (
	// Version is the semantic version of the build.
	Version = "0.1.0"
	// Commit is the VCS revision the binary was built from.
	Commit = "none"
	// BuildTime is the moment the binary was built.
	BuildTime = "unknown"
)

// productName identifies the updater in User-Agent headers.
const productName = "ModpackUpdater"

// Short returns the bare version string.
func Short() string {
	return Version
}

// Full returns the version with the commit and build time.
func Full() string {
	return Version + " (commit " + Commit + ", built " + BuildTime + ")"
}

// Product returns the User-Agent product token, e.g. "ModpackUpdater/0.1.0".
func Product() string {
	return productName + "/" + Version
}
