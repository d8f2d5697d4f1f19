package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"jirafill/planner"
)

// dateInputLayout is the layout accepted by interactive date prompts.
const dateInputLayout = "02.01.2006"

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askDate prompts for a date in dd.mm.yyyy form and re-prompts on invalid
// input. An empty answer picks the default.
func askDate(reader *bufio.Reader, out io.Writer, prompt string, def time.Time) (time.Time, error) {
	for {
		fmt.Fprintf(out, "%s [%s]: ", prompt, def.Format(dateInputLayout))
		answer, err := readLine(reader)
		if err != nil {
			return time.Time{}, fmt.Errorf("reading date failed: %w", err)
		}
		if answer == "" {
			return def, nil
		}
		parsed, err := time.ParseInLocation(dateInputLayout, answer, planner.Zone)
		if err != nil {
			fmt.Fprintln(out, "Invalid date, expected dd.mm.yyyy")
			continue
		}
		return parsed, nil
	}
}

// askHours prompts for a whole number of hours of at least min. An empty
// answer picks the default.
func askHours(reader *bufio.Reader, out io.Writer, prompt string, def float64, min int) (float64, error) {
	for {
		fmt.Fprintf(out, "%s [%g]: ", prompt, def)
		answer, err := readLine(reader)
		if err != nil {
			return 0, fmt.Errorf("reading hours failed: %w", err)
		}
		if answer == "" {
			return def, nil
		}
		value, err := strconv.Atoi(answer)
		if err != nil || value < min {
			fmt.Fprintf(out, "Invalid value, expected a whole number >= %d\n", min)
			continue
		}
		return float64(value), nil
	}
}

// askWeight prompts for a task weight between planner.MinWeight and
// planner.MaxWeight. An empty answer picks weight 1.
func askWeight(reader *bufio.Reader, out io.Writer, issueKey string) (int, error) {
	for {
		fmt.Fprintf(out, "Weight for %s (%d-%d, 0 = exclude) [1]: ", issueKey, planner.MinWeight, planner.MaxWeight)
		answer, err := readLine(reader)
		if err != nil {
			return 0, fmt.Errorf("reading weight failed: %w", err)
		}
		if answer == "" {
			return 1, nil
		}
		value, err := strconv.Atoi(answer)
		if err != nil || value < planner.MinWeight || value > planner.MaxWeight {
			fmt.Fprintf(out, "Invalid weight, expected %d..%d\n", planner.MinWeight, planner.MaxWeight)
			continue
		}
		return value, nil
	}
}

// askYesNo prompts until the answer is y or n. An empty answer picks the
// default.
func askYesNo(reader *bufio.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(out, "%s [%s]: ", prompt, hint)
		answer, err := readLine(reader)
		if err != nil {
			return false, fmt.Errorf("reading answer failed: %w", err)
		}
		switch strings.ToLower(answer) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(out, "Please answer y or n")
	}
}

// maskToken hides all but the edges of a token for display.
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}
