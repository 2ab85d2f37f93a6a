package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/opus4tools/opusx/internal/convert"
)

const (
	docTypesPrompt = "Set document types, separate with comma. Press Enter for all. > "
	formatPrompt   = "Choose csv, json or txt > "
)

var promptColor = color.New(color.FgCyan, color.Bold)

func runInteractive(cmd *cobra.Command, args []string) error {
	s := mustLoadSettings()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Please wait.")
	e := mustOpenExtractor(s, args)

	path, err := runPrompt(e, cmd.InOrStdin(), out)
	if err != nil {
		if errors.Is(err, convert.ErrInvalidArgument) {
			exitWithError(ExitError, "No valid file type.")
		}
		exitWithError(exitCodeFor(err), "%v", err)
	}

	fmt.Fprintf(out, "\n%s\n", savedMessage(strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), ".")), path))
	return nil
}

// runPrompt shows the export summary, asks for document types and a format,
// and writes the conversion under a random name. Returns the written path.
func runPrompt(e *convert.Extractor, in io.Reader, out io.Writer) (string, error) {
	r := bufio.NewReader(in)

	fmt.Fprintf(out, "\n%s\n", e)
	fmt.Fprintln(out, "Available document types:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Join(e.DocTypes(), ", "))

	promptColor.Fprint(out, docTypesPrompt)
	typesAnswer, err := readLine(r)
	if err != nil {
		return "", err
	}
	docTypes := convert.SplitDocTypes(typesAnswer)

	promptColor.Fprint(out, formatPrompt)
	formatAnswer, err := readLine(r)
	if err != nil {
		return "", err
	}
	format, err := convert.ParsePromptFormat(formatAnswer)
	if err != nil {
		return "", err
	}

	fmt.Fprintln(out, "\nPlease wait.")
	return e.Convert(format, "", docTypes)
}

// readLine reads one line without its line ending. EOF counts as the end of the line.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
