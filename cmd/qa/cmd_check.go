// Package main: check command — load the site, run every check, print the report.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/theaifiles/site-qa/internal/qa"
)

func cmdCheck() error {
	return runCheck(os.Stdout, resolvedRoot, resolvedMode, resolvedRules)
}

// runCheck 返回 errChecksFailed 表示报告中有违规；其他错误为致命的加载失败，此时不输出报告。
func runCheck(w io.Writer, root, mode, rulesFile string) error {
	rules, err := qa.LoadRules(rulesPath(root, rulesFile))
	if err != nil {
		return err
	}
	site, err := qa.NewSite(root, mode, rules)
	if err != nil {
		return err
	}
	report, err := qa.Run(site)
	if err != nil {
		return fmt.Errorf("load %s site: %w", site.Name(), err)
	}
	report.Print(w, site.Summary())
	if !report.Passed() {
		return errChecksFailed
	}
	return nil
}
