package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword reads from the terminal without echo; tests replace it.
var readPassword = term.ReadPassword

const promptMarker = "> "

// readLine returns the next line without its line ending. A final line
// that ends at EOF is returned without error.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}

// GetSimpleText shows prompt on its own line, then reads one trimmed answer.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n%s", prompt, promptMarker); err != nil {
		return "", err
	}
	line, err := readLine(reader)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads the operator's password with echo off. Callers wipe
// the returned slice.
func GetPassword(w io.Writer) ([]byte, error) {
	fmt.Fprint(w, "Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	return pw, err
}

// GetMultiline reads lines until a blank one and joins them with '\n'.
// Used for email body templates.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s (finish with an empty line)\n", prompt); err != nil {
		return "", err
	}

	var body []string
	for {
		line, err := readLine(reader)
		if line != "" {
			body = append(body, line)
		}
		if err != nil || line == "" {
			break
		}
	}
	return strings.TrimSpace(strings.Join(body, "\n")), nil
}

// getTextOr is getSimpleText with a fallback for an empty answer.
func getTextOr(reader *bufio.Reader, prompt, fallback string, w io.Writer) (string, error) {
	if fallback != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, fallback)
	}
	s, err := getSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if s == "" {
		return fallback, nil
	}
	return s, nil
}

// parseID parses a positive record id, with or without a leading '#'.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
