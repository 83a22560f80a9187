package main

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

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// getText prints a prompt and reads one trimmed line. A partial line before
// EOF is returned as input.
func getText(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// getPassword reads a password without echo when stdin is a terminal, and as
// a plain line otherwise.
func getPassword(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return getText(reader, w, prompt)
	}
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// choose lists options and reads a 1-based choice. An empty answer keeps def
// when def is one of the options.
func choose(reader *bufio.Reader, w io.Writer, prompt string, options []string, def string) (string, error) {
	for {
		fmt.Fprintln(w, prompt)
		for i, o := range options {
			marker := " "
			if o == def {
				marker = "*"
			}
			fmt.Fprintf(w, " %s%d) %s\n", marker, i+1, o)
		}
		answer, err := getText(reader, w, "Choose a number")
		if err != nil {
			return "", err
		}
		if answer == "" && def != "" {
			return def, nil
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		fmt.Fprintf(w, "Please enter a number between 1 and %d.\n", len(options))
	}
}

// confirm asks a yes/no question. An empty answer yields def.
func confirm(reader *bufio.Reader, w io.Writer, prompt string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	answer, err := getText(reader, w, fmt.Sprintf("%s [%s]", prompt, hint))
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
