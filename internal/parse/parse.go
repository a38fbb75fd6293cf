// Package parse converts line-oriented text into Beeminder datapoints.
//
// Each input line carries a timestamp, a value, and an optional single-quoted
// comment, for example:
//
//	2023-01-05 10:30:00 12.5 'ran 5k'
//
// The timestamp is naive local wall-clock text and is deliberately read as
// UTC without any timezone conversion. Submitters have relied on that
// behavior since the tool's first release, so it is preserved as-is.
package parse

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/jpdarago/beeminder/internal/model"
)

const timestampLayout = "2006-01-02 15:04:05"

// linePattern matches a timestamp, a non-negative integer or decimal value,
// and an optional single-quoted comment.
var linePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}) ([0-9]+(\.[0-9]+)?)( '([^']+)')?`)

// Datapoints reads r fully and converts every line into a datapoint for the
// given goal, preserving input order. Parsing is all-or-nothing: the first
// line that does not match the expected pattern aborts the batch and the
// error quotes that line.
//
// The generated id combines a fixed tag, the goal, and the parsed timestamp
// so that resubmitting the same line lets the remote service deduplicate it.
func Datapoints(r io.Reader, goal string) ([]model.Datapoint, error) {
	var points []model.Datapoint
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		point, err := parseLine(line, goal)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return points, nil
}

func parseLine(line, goal string) (model.Datapoint, error) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return model.Datapoint{}, fmt.Errorf("invalid line: %s", line)
	}
	ts, err := time.Parse(timestampLayout, m[1])
	if err != nil {
		return model.Datapoint{}, fmt.Errorf("invalid timestamp in line %q: %w", line, err)
	}
	value, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return model.Datapoint{}, fmt.Errorf("invalid value in line %q: %w", line, err)
	}
	return model.Datapoint{
		ID:        fmt.Sprintf("beeminder %s %s", goal, ts.Format(timestampLayout)),
		Timestamp: ts.Unix(),
		Daystamp:  ts.Format("20060102"),
		Value:     value,
		Comment:   m[5],
		UpdatedAt: time.Now().Unix(),
	}, nil
}
