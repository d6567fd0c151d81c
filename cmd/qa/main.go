// Package main 提供 The AI Files 部署前 QA 的 CLI：校验 stories.json、故事页、首页与共享布局的一致性。
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/soulteary/cli-kit/configutil"
	"github.com/soulteary/cli-kit/flagutil"
	"github.com/theaifiles/site-qa/internal/qa"
)

const rulesFileName = "qa.yaml"

// errChecksFailed 表示校验已完成但存在违规，main 据此以 1 退出且不再额外输出。
var errChecksFailed = errors.New("qa checks failed")

// resolvedRoot、resolvedMode、resolvedRules 由 main 在解析 flag 后设置，供各命令读取。
var resolvedRoot, resolvedMode, resolvedRules string

type command struct {
	name, desc string
	fn         func() error
}

var commands []command

func getCommands() []command {
	if len(commands) == 0 {
		commands = []command{
			{"help", "Show help information", cmdHelp},
			{"check", "Run all QA checks (default)", cmdCheck},
			{"validate", "Check that the rules file loads without error", cmdValidate},
			{"rules", "Print the effective rule set as YAML", cmdRules},
		}
	}
	return commands
}

func cmdHelp() error {
	fmt.Println("The AI Files pre-deploy QA")
	fmt.Println()
	fmt.Printf("Site root: %s\n", resolvedRoot)
	fmt.Println("  可通过 -root/QA_ROOT、-mode/QA_MODE (auto|astro|html)、-rules/QA_RULES 覆盖")
	fmt.Println()
	fmt.Println("Available commands:")
	for _, c := range getCommands() {
		fmt.Printf("  %-10s %s\n", c.name, c.desc)
	}
	return nil
}

// projectRoot 自工作目录向上查找站点根目录，找不到时返回工作目录。
func projectRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return findRoot(wd)
}

// findRoot 逐级向上，返回第一个包含 src/pages 或同时包含 stories/ 与 index.html 的目录。
func findRoot(start string) string {
	dir := start
	for {
		if isDir(filepath.Join(dir, "src", "pages")) {
			return dir
		}
		if isDir(filepath.Join(dir, "stories")) {
			if st, err := os.Stat(filepath.Join(dir, "index.html")); err == nil && !st.IsDir() {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return start
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

// rulesPath 返回显式指定的规则文件；未指定时使用根目录下存在的 qa.yaml。
func rulesPath(root, explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	p := filepath.Join(root, rulesFileName)
	if st, err := os.Stat(p); err == nil && !st.IsDir() {
		return p
	}
	return ""
}

func findCommand(name string) *command {
	list := getCommands()
	for i := range list {
		if list[i].name == name {
			return &list[i]
		}
	}
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	_ = fs.String("root", "", "site root directory")
	_ = fs.String("mode", qa.ModeAuto, "site layout: auto, astro or html")
	_ = fs.String("rules", "", "rules YAML file (default: <root>/qa.yaml when present)")
	return fs
}

// resolveOptions 按 flag > 环境变量 > 默认值 解析根目录、模式与规则文件；fs 须已 Parse。
func resolveOptions(fs *flag.FlagSet) (root, mode, rules string) {
	// -root > QA_ROOT > 自工作目录向上查找
	root = configutil.ResolveString(fs, "root", "QA_ROOT", "", true)
	if root == "" {
		root = projectRoot()
	}
	mode = configutil.ResolveString(fs, "mode", "QA_MODE", qa.ModeAuto, true)
	if flagutil.HasFlag(fs, "rules") {
		rules = strings.TrimSpace(flagutil.GetString(fs, "rules", ""))
	} else {
		rules = strings.TrimSpace(os.Getenv("QA_RULES"))
	}
	return root, mode, rules
}

func main() {
	fs := newFlagSet(os.Args[0])
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	args := fs.Args()
	cmdName := "check"
	if len(args) > 0 {
		cmdName = strings.TrimSpace(args[0])
	}

	resolvedRoot, resolvedMode, resolvedRules = resolveOptions(fs)

	c := findCommand(cmdName)
	if c == nil {
		fmt.Fprintf(os.Stderr, "Unknown command: %q\n", cmdName)
		fmt.Fprintf(os.Stderr, "Run %s help for usage.\n", os.Args[0])
		os.Exit(1)
	}

	if err := c.fn(); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", cmdName, err)
		}
		os.Exit(1)
	}
}
