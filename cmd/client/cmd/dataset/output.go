package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"datasets/cmd/client/cmd/types"
)

var (
	okColor   = color.New(color.FgGreen)
	headColor = color.New(color.Bold)
)

func env(cmd *cobra.Command) (*types.Env, error) {
	return types.FromContext(cmd.Context())
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid dataset id %q", arg)
	}
	return id, nil
}

// readPassword prefers --password, then a no-echo prompt on a terminal,
// then one line of piped input.
func readPassword(cmd *cobra.Command, e *types.Env) (string, error) {
	if e.Password != "" {
		return e.Password, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pw), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printMessage writes a server confirmation.
func printMessage(cmd *cobra.Command, e *types.Env, msg string) error {
	if e.JSON {
		return printJSON(cmd.OutOrStdout(), map[string]string{"message": msg})
	}
	_, err := okColor.Fprintln(cmd.OutOrStdout(), msg)
	return err
}
