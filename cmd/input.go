package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword is a seam for term.ReadPassword.
var readPassword = term.ReadPassword

// promptPassword reads a password without echo when stdin is a terminal
// and as a plain line otherwise, so scripts can pipe it in.
func promptPassword(cmd *cobra.Command, label string) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), label+": ")

	if in, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(in.Fd())) {
		password, err := readPassword(int(in.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(password), nil
	}

	line, err := readLine(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if line == "" {
		return "", errors.New("password is required")
	}
	return line, nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
