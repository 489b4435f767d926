package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/drinkkiosk/internal/common"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/models"
	"github.com/shopspring/decimal"
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question until it gets an answer. An empty answer
// means no.
func Confirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	for {
		answer, err := GetSimpleText(reader, prompt+" [y/N]", w)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
		fmt.Fprintln(w, "Please answer yes or no.")
	}
}

// ParseAmount parses a money amount such as "1.5" or "$2.00". Amounts with
// more than two decimal places are rejected rather than rounded.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", common.ErrInvalidAmount, s)
	}
	if !models.IsCents(d) {
		return decimal.Zero, fmt.Errorf("%w: %s has more than two decimal places", common.ErrInvalidAmount, s)
	}
	return d, nil
}
