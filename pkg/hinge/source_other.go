//go:build !darwin

package hinge

// Only macOS exposes a hinge angle sensor.
func openPlatformSource() (Source, error) {
	return nil, ErrUnsupportedPlatform
}
