//go:build !windows

package helpers

// SetHidden is a no-op: there is no hidden attribute outside Windows and the
// reserved folder names cannot be changed to dot-names.
func SetHidden(path string) error {
	return nil
}

func IsHidden(path string) (bool, error) {
	return false, nil
}
