package version

// Version represents the current version of Commdeck
const Version = "0.3.0"

// BuildVersion returns the version string for display
func BuildVersion() string {
	return "commdeck version " + Version
}

// APIVersion returns just the version number for API responses
func APIVersion() string {
	return Version
}
