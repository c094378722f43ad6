//go:build !darwin && !linux
// +build !darwin,!linux

package media

import "context"

// unsupportedProvider stands in on platforms without a scripting bridge. It
// always reports a failed call, so GetInfo returns nil.
type unsupportedProvider struct{}

// NewProvider creates the provider for the current platform. binary is
// ignored here.
func NewProvider(binary string) Provider {
	return unsupportedProvider{}
}

func (unsupportedProvider) FetchRaw(ctx context.Context, app string) (int, string, error) {
	return 1, "", nil
}
