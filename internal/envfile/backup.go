package envfile

import (
	"io"
	"os"

	"EnvKit/internal/constants"
)

// Backup copies the env file to a sibling file with the backup suffix
// before a destructive rewrite. Missing source is not an error; there is
// nothing to preserve.
func Backup(file string) error {
	src, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	dst, err := os.OpenFile(file+constants.EnvBackupSuffix, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
