package broker

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/chorddesign/fundmatrix/internal/apperrors"
)

// Position is a single holding row from a broker export.
type Position struct {
	Code      string
	Name      string
	Nav       float64
	Shares    float64
	CostBasis float64
}

var (
	fieldSplitPattern = regexp.MustCompile(`[\t,\s]+`)
	nonDigitPattern   = regexp.MustCompile(`\D`)
)

// ParsePositions decodes pasted broker text, one position per line:
//
//	code name nav shares [cost]
//
// Separators may be tabs, commas, or runs of whitespace. Lines that do not
// yield at least four fields, or whose first field does not reduce to a
// 6-digit fund code, are skipped rather than failing the whole import. The
// cost column is optional and defaults to the reported NAV.
func ParsePositions(text string) ([]Position, error) {
	positions := []Position{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := fieldSplitPattern.Split(line, -1)
		if len(fields) < 4 {
			continue
		}

		code := nonDigitPattern.ReplaceAllString(fields[0], "")
		if len(code) != 6 {
			continue
		}

		nav := parseFloat(fields[2])
		shares := parseFloat(fields[3])
		if nav <= 0 || shares <= 0 {
			continue
		}

		cost := nav
		if len(fields) >= 5 {
			if v := parseFloat(fields[4]); v > 0 {
				cost = v
			}
		}

		positions = append(positions, Position{
			Code:      code,
			Name:      fields[1],
			Nav:       nav,
			Shares:    shares,
			CostBasis: cost,
		})
	}

	if len(positions) == 0 {
		return nil, apperrors.ErrEmptyImport
	}
	return positions, nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
