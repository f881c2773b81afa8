//go:build !windows

package credentials

// No credential store binding on this platform; callers fall back to
// prompting or flags.

func (this *Credentials) ReadFromStore() (supported bool, err error) {
	return false, nil
}

func (this *Credentials) WriteToStore() (supported bool, err error) {
	return false, nil
}
