package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/trogers1052/stock-journal/internal/auth"
)

// printToken handles `journal token <user-id>`, which mints a bearer token
// for the configured secret. Sign-in lives outside this service.
func printToken(w io.Writer, j auth.JWT, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: journal token <user-id>")
	}
	token, expiresAt, err := j.Issue(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n# expires %s\n", token, expiresAt.Format(time.RFC3339))
	return err
}
