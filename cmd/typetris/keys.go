package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typetris/internal/keys"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the supported character-to-key mapping",
	Long: `List every character the typing scripts can produce and the key it
maps to. Frame text must stay within this set; anything else is silently
skipped while typing.`,
	Run: runKeys,
}

func runKeys(cmd *cobra.Command, args []string) {
	chars := []byte{}
	for c := byte('a'); c <= 'z'; c++ {
		chars = append(chars, c)
	}
	for c := byte('0'); c <= '9'; c++ {
		chars = append(chars, c)
	}
	chars = append(chars, ' ', '\n', '.', '-')

	fmt.Println("Supported characters:")
	fmt.Println()
	for _, c := range chars {
		k, ok := keys.CharKey(c)
		if !ok {
			continue
		}
		name := string(c)
		switch c {
		case ' ':
			name = "space"
		case '\n':
			name = "newline"
		}
		fmt.Printf("  %-8s -> %s\n", name, k)
	}
	fmt.Println()
	fmt.Println("Control keys used by scripts: ctrl, shift, backspace, home, end, down")
}
