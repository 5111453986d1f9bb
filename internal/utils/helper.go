package utils

import (
	"log/slog"
	"os"
	"strings"
)

// ReadTextFile reads a UTF-8 text file, stripping a leading byte-order
// mark. Scanner frontends frequently emit one, and it would otherwise
// survive into the first recognized word.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

func ExitOnError(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
