package broker

import (
	"errors"
	"testing"

	"github.com/chorddesign/fundmatrix/internal/apperrors"
)

func TestParsePositions(t *testing.T) {
	t.Run("parses tab separated export", func(t *testing.T) {
		text := "110011\t易方达优质精选混合\t2.1000\t5000.00\t1.9500\n000961\t天弘沪深300\t1.5000\t2000.00"

		positions, err := ParsePositions(text)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(positions) != 2 {
			t.Fatalf("Expected 2 positions, got %d", len(positions))
		}

		first := positions[0]
		if first.Code != "110011" || first.Name != "易方达优质精选混合" {
			t.Errorf("Unexpected position: %+v", first)
		}
		if first.Nav != 2.1 || first.Shares != 5000 || first.CostBasis != 1.95 {
			t.Errorf("Unexpected numbers: %+v", first)
		}
	})

	t.Run("cost defaults to nav when column absent", func(t *testing.T) {
		positions, err := ParsePositions("000961 天弘沪深300 1.5000 2000.00")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if positions[0].CostBasis != 1.5 {
			t.Errorf("Expected cost to default to nav 1.5, got %v", positions[0].CostBasis)
		}
	})

	t.Run("strips decoration from the code field", func(t *testing.T) {
		positions, err := ParsePositions(`(110011) 易方达优质精选混合 2.1000 5000.00`)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if positions[0].Code != "110011" {
			t.Errorf("Expected code 110011, got %s", positions[0].Code)
		}
	})

	t.Run("skips unparseable lines instead of failing", func(t *testing.T) {
		text := "账户持仓明细\n110011 易方达优质精选混合 2.1000 5000.00\n合计 10500.00"

		positions, err := ParsePositions(text)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(positions))
		}
	})

	t.Run("skips codes that are not six digits", func(t *testing.T) {
		text := "12345 short 1.0 100\n1234567 long 1.0 100\n110011 ok 1.0 100"

		positions, err := ParsePositions(text)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(positions) != 1 || positions[0].Code != "110011" {
			t.Errorf("Expected only the valid code, got %+v", positions)
		}
	})

	t.Run("reports text with no valid lines as empty import", func(t *testing.T) {
		_, err := ParsePositions("nothing useful here\n\n")
		if !errors.Is(err, apperrors.ErrEmptyImport) {
			t.Errorf("Expected ErrEmptyImport, got %v", err)
		}
	})
}
