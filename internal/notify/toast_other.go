//go:build !windows

package notify

func newModernToast(Options) (Backend, bool) {
	return nil, false
}

func newLegacyToast(Options) (Backend, bool) {
	return nil, false
}
