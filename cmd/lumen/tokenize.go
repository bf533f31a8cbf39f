package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lumen/internal/scanner"
	"lumen/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.lum>",
	Short: "Tokenize a Lumen source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var tokens []token.Token
	s := scanner.New(string(source))
	for {
		tok := s.ScanToken()
		tokens = append(tokens, tok)
		if tok.IsAtEnd() {
			break
		}
	}

	switch format {
	case "pretty":
		return printTokensPretty(os.Stdout, tokens)
	case "json":
		return printTokensJSON(os.Stdout, tokens)
	default:
		return fmt.Errorf("unknown format %q (must be pretty or json)", format)
	}
}

func printTokensPretty(out *os.File, tokens []token.Token) error {
	for _, tok := range tokens {
		if _, err := fmt.Fprintf(out, "%4d %-16s %q\n", tok.Line, tok.Kind.String(), tok.Lexeme); err != nil {
			return err
		}
	}
	return nil
}

type tokenJSON struct {
	Kind   string `json:"kind"`
	Lexeme string `json:"lexeme"`
	Line   int    `json:"line"`
}

func printTokensJSON(out *os.File, tokens []token.Token) error {
	rows := make([]tokenJSON, len(tokens))
	for i, tok := range tokens {
		rows[i] = tokenJSON{Kind: tok.Kind.String(), Lexeme: tok.Lexeme, Line: tok.Line}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
