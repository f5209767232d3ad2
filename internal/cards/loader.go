package cards

import (
	"fmt"
	"os"
	"strings"
)

const (
	// LineBreak is the line ending of uploaded scripts.
	LineBreak = "\r\n"
	// BlockSeparator separates cards: two blank lines.
	BlockSeparator = LineBreak + LineBreak + LineBreak
)

// SplitScript turns an uploaded script into cards. Blocks are separated by
// two blank lines; the first line of a block is the title and the rest,
// rejoined with CRLF, is the content. Bare LF input is accepted too.
// Blocks holding only whitespace are skipped, so pages stay numbered
// 1..n without gaps. Empty input yields no cards.
func SplitScript(raw string) []Card {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return []Card{}
	}

	out := []Card{}
	for _, block := range strings.Split(text, "\n\n\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		out = append(out, Card{
			PageIndex: len(out) + 1,
			Title:     lines[0],
			Content:   strings.Join(lines[1:], LineBreak),
		})
	}
	return out
}

// FormatScript is the inverse of SplitScript.
func FormatScript(cs []Card) string {
	blocks := make([]string, 0, len(cs))
	for _, c := range cs {
		b := c.Title
		if c.Content != "" {
			b += LineBreak + strings.ReplaceAll(strings.ReplaceAll(c.Content, "\r\n", "\n"), "\n", LineBreak)
		}
		blocks = append(blocks, b)
	}
	return strings.Join(blocks, BlockSeparator)
}

// LoadScriptFile reads and splits the script at path.
func LoadScriptFile(path string) ([]Card, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	return SplitScript(string(b)), nil
}
