//go:build !unix

package artifact

func isReadOnly(err error) bool { return false }

func isNoSpace(err error) bool { return false }

func isCrossDevice(err error) bool { return false }
