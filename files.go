package palc

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/palc/cgen"
	"github.com/pkg/errors"
)

func checkDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.Wrapf(ErrOutputDirectoryMissing, "%s: %v", dir, err)
	}

	if !info.IsDir() {
		return errors.Wrapf(ErrOutputDirectoryMissing, "%s: not a directory", dir)
	}

	return nil
}

func checkDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := checkDirectory(dir); err != nil {
			return err
		}
	}
	return nil
}

// Classify a failure to open or decode an input file
func inputError(file string, err error) error {
	if os.IsNotExist(errors.Cause(err)) {
		return errors.Wrapf(ErrInputNotFound, "%s", file)
	}
	return errors.Wrapf(ErrInputUnreadable, "%s: %v", file, err)
}

func stem(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func hashFile(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%X", h.Sum(nil)), nil
}

func (c *Compiler) writeFile(file string, f *cgen.File) error {
	out, err := os.Create(file)
	if err != nil {
		return errors.Wrapf(ErrWriteFailure, "%s: %v", file, err)
	}

	if _, err := f.WriteTo(out); err != nil {
		out.Close()
		return errors.Wrapf(ErrWriteFailure, "%s: %v", file, err)
	}

	if err := out.Close(); err != nil {
		return errors.Wrapf(ErrWriteFailure, "%s: %v", file, err)
	}

	c.logger.Printf("Wrote \"%s\"\n", file)

	return nil
}

// Write the source and then the header, skipping the header if the source
// could not be written
func (c *Compiler) writeFiles(source string, sf *cgen.File, header string, hf *cgen.File) error {
	if err := c.writeFile(source, sf); err != nil {
		return err
	}
	return c.writeFile(header, hf)
}

func (c *Compiler) claim(name, file, sum string) error {
	if c.registry == nil {
		return nil
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	if err := c.registry.Claim(name, abs, sum); err != nil {
		return err
	}
	c.logger.Printf("Claimed \"%s\" for \"%s\" (%s)\n", name, abs, sum)

	return nil
}
