package pipeline

import (
	"strings"

	"go.jacobcolvin.com/jsonish/fixer"
)

// fenceBlock is one ```lang path\n...\n``` region found by findFences.
type fenceBlock struct {
	lang     string
	path     string
	body     string
	complete bool // false when input ended before a closing fence appeared
}

// findFences scans input for fenced code blocks: a line starting with
// "```", a header line split into a language tag and an optional path on
// the first run of whitespace (spec §4.3, §9 -- a header like "json
// path=foo/bar.json" is a valid tag "json" plus path "path=foo/bar.json",
// not rejected for containing "=" or "/"), then a newline, then a body
// terminated by the next "```" or by end of input. Blocks do not overlap:
// scanning resumes immediately after a found block's close (or at the end
// of input, for an unterminated block).
func findFences(input string) []fenceBlock {
	var blocks []fenceBlock

	i := 0
	for i < len(input) {
		start := strings.Index(input[i:], "```")
		if start < 0 {
			break
		}

		start += i

		if start != 0 && input[start-1] != '\n' {
			i = start + 3
			continue
		}

		afterFence := start + 3

		lineEnd := strings.IndexByte(input[afterFence:], '\n')
		if lineEnd < 0 {
			i = afterFence
			continue
		}

		lineEnd += afterFence

		lang, path := fixer.SplitFenceHeader(input[afterFence:lineEnd])

		bodyStart := lineEnd + 1

		closeIdx := strings.Index(input[bodyStart:], "```")
		if closeIdx < 0 {
			blocks = append(blocks, fenceBlock{
				lang:     lang,
				path:     path,
				body:     input[bodyStart:],
				complete: false,
			})

			break
		}

		closeIdx += bodyStart

		blocks = append(blocks, fenceBlock{
			lang:     lang,
			path:     path,
			body:     input[bodyStart:closeIdx],
			complete: true,
		})

		i = closeIdx + 3
	}

	return blocks
}
