package qa

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	astroDataFile    = "src/data/stories.json"
	astroStoriesDir  = "src/pages/stories"
	astroIndexFile   = "src/pages/index.astro"
	astroStoryLayout = "src/layouts/StoryLayout.astro"
	astroBaseLayout  = "src/layouts/BaseLayout.astro"
)

// AstroSite 校验 Astro 源码树：stories.json 为权威记录，每个故事页是一个 .astro 文件。
type AstroSite struct {
	root  string
	rules *Rules

	records     []Record
	pages       []page
	index       string
	storyLayout string
	baseLayout  string
}

// NewAstroSite 创建以 root 为站点根目录的 AstroSite。
func NewAstroSite(root string, rules *Rules) *AstroSite {
	return &AstroSite{root: root, rules: rules}
}

func (s *AstroSite) Name() string { return ModeAstro }

func (s *AstroSite) Summary() string { return "stories.json verified" }

func (s *AstroSite) path(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// Load 读取记录、故事页、首页与两个布局文件，任一失败即返回错误。
func (s *AstroSite) Load() error {
	records, err := LoadRecords(s.path(astroDataFile))
	if err != nil {
		return err
	}
	pages, err := loadPages(s.path(astroStoriesDir), ".astro")
	if err != nil {
		return err
	}
	index, err := readText(s.path(astroIndexFile))
	if err != nil {
		return err
	}
	storyLayout, err := readText(s.path(astroStoryLayout))
	if err != nil {
		return err
	}
	baseLayout, err := readText(s.path(astroBaseLayout))
	if err != nil {
		return err
	}
	s.records, s.pages = records, pages
	s.index, s.storyLayout, s.baseLayout = index, storyLayout, baseLayout
	return nil
}

func (s *AstroSite) Check(report *Report) {
	slugs := CheckRecords(s.records, s.rules, report)
	checkBijection(slugs, s.pages,
		func(slug string) {
			report.Addf(`stories.json: slug "%s" has no matching .astro file`, slug)
		},
		func(slug string) {
			report.Addf("%s/%s.astro: no matching entry in stories.json", astroStoriesDir, slug)
		},
	)
	for _, p := range s.pages {
		s.checkPage(p, report)
	}
	s.checkIndex(slugs, report)
	for _, m := range MissingMarkers(s.storyLayout, s.rules.StoryLayout) {
		report.Addf("StoryLayout.astro: missing — %s", m)
	}
	for _, m := range MissingMarkers(s.baseLayout, s.rules.BaseLayout) {
		report.Addf("BaseLayout.astro: missing — %s", m)
	}
	report.SetChecked(len(s.pages) + 1)
}

func (s *AstroSite) checkPage(p page, report *Report) {
	label := "stories/" + p.name
	if !strings.Contains(p.content, s.rules.LayoutImport) {
		report.Addf("%s: missing StoryLayout import", label)
	}
	if !strings.Contains(p.content, s.rules.DataImport) {
		report.Addf("%s: missing stories.json import", label)
	}
	if !strings.Contains(p.content, slugLookup(p.slug)) {
		report.Addf("%s: slug lookup missing or does not match filename", label)
	}
	checkPageBody(label, p.content, s.rules, report)
}

func (s *AstroSite) checkIndex(slugs []string, report *Report) {
	for _, m := range MissingMarkers(s.index, s.rules.IndexMarkers) {
		report.Addf("index.astro: missing — %s", m)
	}
	for _, slug := range slugs {
		if !hasStoryLink(s.index, slug) {
			report.Addf("index.astro: no link to %s", StoryPath(slug))
		}
	}
}

// slugLookup 返回故事页中按 slug 选取记录的表达式。
func slugLookup(slug string) string {
	return fmt.Sprintf("s.slug === '%s'", slug)
}
