package structure

import (
	"regexp"
	"sort"
	"strconv"
)

var (
	numericToken    = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*$`)
	romanToken      = regexp.MustCompile(`^[IVXLCDMivxlcdm]+$`)
	alphabeticToken = regexp.MustCompile(`^[A-Za-z]+$`)
)

// buildTree nests a line-ordered flat header list by level: each header
// becomes a child of the nearest preceding header with a smaller level.
// Children keep line order, and every child's level is strictly greater
// than its parent's.
func buildTree(flat []*Header) []*Header {
	roots := []*Header{}
	var stack []*Header

	for _, h := range flat {
		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, h)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, h)
		}
		stack = append(stack, h)
	}

	return roots
}

// buildHierarchy aggregates counts, numbering style, and numbering
// consistency over the flat header list.
func buildHierarchy(flat []*Header) Hierarchy {
	counts := make(map[HeaderKind]int)
	maxLevel := 0
	styles := make(map[NumberingStyle]bool)
	numbersByKind := make(map[HeaderKind][]string)

	for _, h := range flat {
		counts[h.Kind]++
		if h.Level > maxLevel {
			maxLevel = h.Level
		}
		if h.Number != "" {
			styles[classifyNumber(h.Number)] = true
			numbersByKind[h.Kind] = append(numbersByKind[h.Kind], h.Number)
		}
	}

	style := NumberingNumeric
	switch len(styles) {
	case 0:
		// No captured numbers at all; numeric is the neutral default.
	case 1:
		for s := range styles {
			style = s
		}
	default:
		style = NumberingMixed
	}

	consistent := true
	for _, numbers := range numbersByKind {
		ints, allNumeric := parseIntegers(numbers)
		if !allNumeric {
			// Roman and alphabetic sequences are accepted unconditionally;
			// only plain integer sequences are gap-checked.
			continue
		}
		if !gapFree(ints) {
			consistent = false
			break
		}
	}

	return Hierarchy{
		MaxLevel:            maxLevel,
		Counts:              counts,
		NumberingStyle:      style,
		ConsistentNumbering: consistent,
	}
}

func classifyNumber(token string) NumberingStyle {
	switch {
	case numericToken.MatchString(token):
		return NumberingNumeric
	case romanToken.MatchString(token):
		return NumberingRoman
	case alphabeticToken.MatchString(token):
		return NumberingAlphabetic
	}
	return NumberingNumeric
}

// parseIntegers converts captured numbers to ints. Dotted numbers like
// "1.2" are not plain integers and exclude the group from gap checking.
func parseIntegers(numbers []string) ([]int, bool) {
	ints := make([]int, 0, len(numbers))
	for _, n := range numbers {
		v, err := strconv.Atoi(n)
		if err != nil {
			return nil, false
		}
		ints = append(ints, v)
	}
	return ints, true
}

// gapFree reports whether the sorted sequence ascends without skipping a
// number. Repeats are tolerated; a jump of more than one is a gap.
func gapFree(ints []int) bool {
	if len(ints) < 2 {
		return true
	}
	sorted := make([]int, len(ints))
	copy(sorted, ints)
	sort.Ints(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i]-sorted[i-1] > 1 {
			return false
		}
	}
	return true
}
