// Package decklist parses free-text deck lists copy-pasted from deck
// building tools into structured card lines.
//
// The expected format is one card per line:
//
//	4 Lightning Bolt (2X2) 117
//	1 Fable of the Mirror-Breaker (NEO) 141 *F*
//	SIDEBOARD
//	2 Abrade (VOW) 139
//
// A standalone SIDEBOARD marker switches subsequent lines to the
// sideboard. Parsing is best-effort: malformed lines become warnings,
// never errors.
package decklist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Board identifies the sub-list a card line belongs to.
type Board string

const (
	BoardMain      Board = "main"
	BoardSideboard Board = "sideboard"
)

// CardLine is one successfully parsed line of a deck list.
type CardLine struct {
	Quantity        int
	Name            string
	SetCode         string
	CollectorNumber string
	Foil            bool
	Board           Board
}

// Result holds the parsed lines and the warnings collected for the
// lines that were skipped.
type Result struct {
	Items    []CardLine
	Warnings []string
}

// Matches: "<qty> <name> (<set>) <collector>" with an optional
// trailing "*F*" foil marker. The name is the shortest run of text
// before the first parenthesized set code.
var linePattern = regexp.MustCompile(
	`^(\d+)\s+(.+?)\s+\(([A-Za-z0-9]{2,10})\)\s+([A-Za-z0-9-]+)(?:\s+\*([A-Za-z])\*)?\s*$`,
)

// lineKind tags the outcome of classifying a single line.
type lineKind int

const (
	lineItem lineKind = iota
	lineSectionSwitch
	lineSkipped
)

type lineOutcome struct {
	kind    lineKind
	item    CardLine
	warning string
}

// Parse splits text into lines and classifies each one. Blank lines
// are dropped silently; every other line either yields a CardLine or a
// warning. Output preserves input order.
func Parse(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Warnings: []string{"Bulk text is empty."}}
	}

	var result Result
	board := BoardMain

	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		outcome := classifyLine(raw, board)
		switch outcome.kind {
		case lineSectionSwitch:
			board = BoardSideboard
		case lineItem:
			result.Items = append(result.Items, outcome.item)
		case lineSkipped:
			result.Warnings = append(result.Warnings, outcome.warning)
		}
	}

	return result
}

func classifyLine(raw string, board Board) lineOutcome {
	upper := strings.ToUpper(raw)
	if upper == "SIDEBOARD" || upper == "SIDEBOARD:" {
		return lineOutcome{kind: lineSectionSwitch}
	}

	match := linePattern.FindStringSubmatch(raw)
	if match == nil {
		return lineOutcome{
			kind:    lineSkipped,
			warning: fmt.Sprintf("Skipped line (invalid format): %q", raw),
		}
	}

	qty, err := strconv.Atoi(match[1])
	if err != nil || qty <= 0 {
		return lineOutcome{
			kind:    lineSkipped,
			warning: fmt.Sprintf("Skipped line (invalid quantity): %q", raw),
		}
	}

	return lineOutcome{
		kind: lineItem,
		item: CardLine{
			Quantity:        qty,
			Name:            strings.TrimSpace(match[2]),
			SetCode:         strings.ToUpper(match[3]),
			CollectorNumber: match[4],
			Foil:            strings.EqualFold(match[5], "F"),
			Board:           board,
		},
	}
}

// Merge collapses structurally identical lines, summing quantities.
// Two lines are the same entry when board, name, set code, collector
// number and foil flag all match (content fields compared
// case-insensitively). The first occurrence of a key determines the
// emitted fields; output keeps first-seen order.
func Merge(items []CardLine) []CardLine {
	merged := make([]CardLine, 0, len(items))
	index := make(map[string]int, len(items))

	for _, item := range items {
		key := mergeKey(item)
		if at, ok := index[key]; ok {
			merged[at].Quantity += item.Quantity
			continue
		}
		index[key] = len(merged)
		merged = append(merged, item)
	}

	return merged
}

func mergeKey(item CardLine) string {
	foil := "nonfoil"
	if item.Foil {
		foil = "foil"
	}
	return strings.Join([]string{
		string(item.Board),
		strings.ToLower(item.Name),
		strings.ToLower(item.SetCode),
		strings.ToLower(item.CollectorNumber),
		foil,
	}, "|")
}
