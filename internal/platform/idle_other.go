//go:build !linux && !darwin && !windows

package platform

import "time"

type unsupportedIdleProvider struct{}

func newIdleProvider() IdleProvider {
	return unsupportedIdleProvider{}
}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, ErrIdleUnsupported
}
