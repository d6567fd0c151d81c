// Package main: validate and rules commands — load the rule set and report or print it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/theaifiles/site-qa/internal/qa"
)

func cmdValidate() error {
	path := rulesPath(resolvedRoot, resolvedRules)
	if _, err := qa.LoadRules(path); err != nil {
		return fmt.Errorf("rules validation failed: %w", err)
	}
	if path == "" {
		fmt.Println("rules OK (built-in defaults)")
		return nil
	}
	fmt.Printf("rules OK (%s)\n", path)
	return nil
}

func cmdRules() error {
	return writeRules(os.Stdout, rulesPath(resolvedRoot, resolvedRules))
}

func writeRules(w io.Writer, path string) error {
	rules, err := qa.LoadRules(path)
	if err != nil {
		return err
	}
	out, err := rules.Marshal()
	if err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	_, err = w.Write(out)
	return err
}
