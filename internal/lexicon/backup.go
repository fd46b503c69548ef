package lexicon

import (
	"io"
	"os"
)

// CopyToBackup creates a copy of a file with ".bak" appended to its name,
// overwriting any previous backup. A missing file is not an error.
func CopyToBackup(filename string) error {
	in, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer in.Close()

	out, err := os.Create(filename + ".bak")
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// RenameToBackup renames a file by adding ".bak" to its name, overwriting
// any previous backup. A missing file is not an error.
func RenameToBackup(filename string) error {
	err := os.Rename(filename, filename+".bak")
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
