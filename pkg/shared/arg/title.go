package arg

import (
	"errors"
	"strings"
)

var ErrNoTitle = errors.New("no title given")

func HandleTitle(args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrNoTitle
	}

	title := strings.TrimSpace(args[0])
	if title == "" {
		return "", ErrNoTitle
	}
	return title, nil
}
