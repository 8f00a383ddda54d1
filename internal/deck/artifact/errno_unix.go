//go:build unix

package artifact

import (
	"errors"
	"syscall"
)

func isReadOnly(err error) bool {
	return errors.Is(err, syscall.EROFS) || errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM)
}

func isNoSpace(err error) bool {
	return errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT)
}

func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}
