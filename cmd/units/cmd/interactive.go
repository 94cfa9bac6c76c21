package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/ryantenney/go-units/internal/convert"
	"github.com/ryantenney/go-units/pkg/units"
)

// runInteractive implements the no-argument invocation: a read-convert
// loop prompting for "You have:" then "You want:". It uses a real line
// editor when stdin is a terminal and falls back to a plain
// bufio.Scanner otherwise (piped input, redirected files, CI).
func runInteractive(eng *units.Engine) error {
	if !isTerminal(os.Stdin) {
		return runInteractiveScanner(eng, os.Stdin)
	}
	return runInteractiveLiner(eng)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func runInteractiveLiner(eng *units.Engine) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		have, err := line.Prompt("You have: ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			return err
		}
		have = strings.TrimSpace(have)
		if have == "" {
			continue
		}
		line.AppendHistory(have)

		want, err := line.Prompt("You want: ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			return err
		}
		want = strings.TrimSpace(want)
		line.AppendHistory(want)

		reportConversion(eng, have, want)
	}
}

func runInteractiveScanner(eng *units.Engine, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for {
		fmt.Print("You have: ")
		if !sc.Scan() {
			return sc.Err()
		}
		have := strings.TrimSpace(sc.Text())
		if have == "" {
			continue
		}

		fmt.Print("You want: ")
		if !sc.Scan() {
			return sc.Err()
		}
		want := strings.TrimSpace(sc.Text())

		reportConversion(eng, have, want)
	}
}

// reportConversion prints a conversion result or error without aborting
// the loop, so a bad expression just re-prompts instead of exiting.
func reportConversion(eng *units.Engine, have, want string) {
	if want == "" {
		chain, value, err := eng.Define(have, engineConfig())
		if err != nil {
			fmt.Println(err)
			return
		}
		for _, body := range chain {
			fmt.Printf("\t%s\n", body)
		}
		if value != nil {
			value.Canonicalize()
			fmt.Println(value.String())
		}
		return
	}

	report, err := eng.Convert(have, want, engineConfig())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(convert.Render(report, verbosity(), flagOneLine, outputFormat()))
}
