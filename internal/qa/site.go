package qa

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Mode 名称。
const (
	ModeAuto  = "auto"
	ModeAstro = "astro"
	ModeHTML  = "html"
)

// Site 是一种站点布局下的校验实现：先 Load 读取全部输入（失败即致命），再 Check 累积违规。
type Site interface {
	Name() string
	Load() error
	Check(report *Report)
	// Summary 为通过时摘要行中附加的说明，可为空。
	Summary() string
}

// NewSite 根据 mode 构造站点实现；mode 为 auto 时按 root 下存在的输入选择。
func NewSite(root, mode string, rules *Rules) (Site, error) {
	if rules == nil {
		rules = DefaultRules()
	}
	switch strings.TrimSpace(mode) {
	case ModeAstro:
		return NewAstroSite(root, rules), nil
	case ModeHTML:
		return NewStaticSite(root, rules), nil
	case "", ModeAuto:
		if fileExists(filepath.Join(root, astroDataFile)) {
			return NewAstroSite(root, rules), nil
		}
		if dirExists(filepath.Join(root, staticStoriesDir)) {
			return NewStaticSite(root, rules), nil
		}
		return nil, fmt.Errorf("no site found under %s (expected %s or %s/)", root, astroDataFile, staticStoriesDir)
	default:
		return nil, fmt.Errorf("unknown mode: %s", mode)
	}
}

// Run 加载并校验站点，返回报告。加载失败时不返回部分报告。
func Run(site Site) (*Report, error) {
	if err := site.Load(); err != nil {
		return nil, err
	}
	report := &Report{}
	site.Check(report)
	return report, nil
}

// page 是一个生成页面，slug 来自去掉扩展名的文件名。
type page struct {
	slug    string
	name    string
	content string
}

// loadPages 读取 dir 下所有扩展名为 ext 的文件，按文件名排序。
func loadPages(dir, ext string) ([]page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read pages dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	pages := make([]page, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", name, err)
		}
		pages = append(pages, page{
			slug:    strings.TrimSuffix(name, ext),
			name:    name,
			content: string(data),
		})
	}
	return pages, nil
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return string(data), nil
}

// checkPageBody 执行两种模式共有的页面检查：section 元素与外部链接的 rel 属性。
func checkPageBody(label, content string, rules *Rules, report *Report) {
	if !strings.Contains(content, rules.SectionClass) {
		report.Addf("%s: no element with %s found", label, rules.SectionClass)
	}
	for _, link := range UnsafeExternalLinks(content) {
		report.Addf(`%s: external link missing rel="noopener": %s`, label, Preview(link, rules.PreviewLen))
	}
}

// checkBijection 双向比较记录 slug 与页面 slug；两个切片都须已排序。
func checkBijection(recordSlugs []string, pages []page, noPage, noRecord func(slug string)) {
	inPages := make(map[string]bool, len(pages))
	for _, p := range pages {
		inPages[p.slug] = true
	}
	inRecords := make(map[string]bool, len(recordSlugs))
	for _, s := range recordSlugs {
		inRecords[s] = true
		if !inPages[s] {
			noPage(s)
		}
	}
	for _, p := range pages {
		if !inRecords[p.slug] {
			noRecord(p.slug)
		}
	}
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

func dirExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}
