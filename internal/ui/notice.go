package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/five82/tango/internal/remote"
	"github.com/five82/tango/internal/vocab"
)

// notice is the dismissible message bar above the footer.
type notice struct {
	text    string
	isError bool
}

func (n notice) empty() bool { return n.text == "" }

func infoNotice(text string) notice {
	return notice{text: text}
}

func errorNotice(action string, err error) notice {
	return notice{text: action + ": " + describeError(err), isError: true}
}

// describeError turns a request error into a sentence for the notice bar.
// Unclassified failures get a generic message; details go to the log file.
func describeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, vocab.ErrUnauthorized):
		return "not signed in (set token in ~/.config/tango/config.toml)"
	case errors.Is(err, vocab.ErrDuplicateName):
		return "a folder with that name already exists"
	case errors.Is(err, vocab.ErrNotFound):
		return "it no longer exists on the server"
	case errors.Is(err, vocab.ErrInvalidInput):
		var re *remote.Error
		if errors.As(err, &re) && re.Message != "" {
			return re.Message
		}
		return strings.TrimSuffix(err.Error(), ": "+vocab.ErrInvalidInput.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return "the server did not answer in time"
	default:
		return "the server is unavailable, try again"
	}
}
