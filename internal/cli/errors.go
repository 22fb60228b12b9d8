package cli

import (
	"errors"
	"fmt"

	"taskdeck-cli/internal/api"
)

var errNotAuthenticated = errors.New("not logged in; run `taskdeck login` (or `taskdeck signup`)")

// describe rewrites credential rejections into an actionable message and
// leaves everything else alone.
func describe(err error) error {
	if api.IsAuthFailure(err) {
		return fmt.Errorf("session expired or revoked; run `taskdeck login` again")
	}
	return err
}
