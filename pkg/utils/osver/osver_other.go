//go:build !darwin

package osver

// Get returns the zero Version outside macOS.
func Get() Version {
	return Version{}
}
