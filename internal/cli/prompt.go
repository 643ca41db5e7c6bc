package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Confirm asks a yes/no question on the terminal and returns true when
// the answer starts with 'y' or 'Y'. Anything else, including EOF,
// declines.
func Confirm(prompt string) bool {
	fmt.Printf("%s [%s/%s] ", prompt, color.GreenString("y"), color.RedString("N"))

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Println()
		return false
	}
	answer := strings.TrimSpace(line)
	return strings.HasPrefix(strings.ToLower(answer), "y")
}
