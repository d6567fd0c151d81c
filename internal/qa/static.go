package qa

import (
	"path/filepath"
	"strings"
)

const (
	staticStoriesDir = "stories"
	staticIndexFile  = "index.html"
)

// StaticSite 校验预渲染的纯 HTML 站点：没有独立的记录源，故事集合由 stories/*.html 文件本身决定。
type StaticSite struct {
	root  string
	rules *Rules

	pages []page
	index string
}

// NewStaticSite 创建以 root 为站点根目录的 StaticSite。
func NewStaticSite(root string, rules *Rules) *StaticSite {
	return &StaticSite{root: root, rules: rules}
}

func (s *StaticSite) Name() string { return ModeHTML }

func (s *StaticSite) Summary() string { return "" }

func (s *StaticSite) Load() error {
	pages, err := loadPages(filepath.Join(s.root, staticStoriesDir), ".html")
	if err != nil {
		return err
	}
	index, err := readText(filepath.Join(s.root, staticIndexFile))
	if err != nil {
		return err
	}
	s.pages, s.index = pages, index
	return nil
}

func (s *StaticSite) Check(report *Report) {
	for _, p := range s.pages {
		s.checkPage(p, report)
	}
	for _, m := range MissingMarkers(s.index, s.rules.IndexFragments) {
		report.Addf("%s: missing — %s", staticIndexFile, m)
	}
	for _, p := range s.pages {
		if !hasStoryLink(s.index, p.slug) {
			report.Addf("%s: no link to %s", staticIndexFile, StoryPath(p.slug))
		}
	}
	report.SetChecked(len(s.pages) + 1)
}

func (s *StaticSite) checkPage(p page, report *Report) {
	label := staticStoriesDir + "/" + p.name
	css := strings.Join(StyleBlocks(p.content), "\n")
	if css == "" {
		report.Addf("%s: no inline <style> block found", label)
	}
	for _, sel := range MissingMarkers(css, s.rules.StyleSelectors) {
		report.Addf("%s: CSS missing — %s", label, sel)
	}
	for _, frag := range MissingMarkers(p.content, s.rules.HTMLFragments) {
		report.Addf("%s: HTML missing — %s", label, frag)
	}
	checkPageBody(label, p.content, s.rules, report)
}
