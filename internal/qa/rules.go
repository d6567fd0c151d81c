// Package qa 校验 The AI Files 站点的构建产物：stories.json 记录、故事页、首页与共享布局之间的一致性。
package qa

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPreviewLen 为违规链接预览的默认截断长度。
const DefaultPreviewLen = 80

// Rules 是校验器搜索的标记集合，与站点 markup 约定构成兼容契约。
// YAML 文件只覆盖其显式设置的键，其余保持默认。
type Rules struct {
	RequiredFields []string `yaml:"requiredFields"`
	IndexMarkers   []string `yaml:"indexMarkers"`
	StoryLayout    []string `yaml:"storyLayout"`
	BaseLayout     []string `yaml:"baseLayout"`
	StyleSelectors []string `yaml:"styleSelectors"`
	HTMLFragments  []string `yaml:"htmlFragments"`
	IndexFragments []string `yaml:"indexFragments"`
	LayoutImport   string   `yaml:"layoutImport"`
	DataImport     string   `yaml:"dataImport"`
	SectionClass   string   `yaml:"sectionClass"`
	PreviewLen     int      `yaml:"previewLen"`
}

// DefaultRules 返回内置规则集。
func DefaultRules() *Rules {
	return &Rules{
		RequiredFields: []string{
			"slug", "chapter", "volume", "title", "deck",
			"date", "readTime", "emoji", "tags",
			"story", "storyDark", "verifyText", "sources",
		},
		IndexMarkers: []string{"BaseLayout", "beehiiv", "vol-section", "featured"},
		StoryLayout: []string{
			"story-verify", "verify-badge", "sources-block", "sources-list",
			`target="_blank"`, `rel="noopener"`,
		},
		BaseLayout:     []string{`<link rel="icon"`, "/_vercel/insights/script.js"},
		StyleSelectors: []string{".story-verify", ".verify-badge", ".sources-block", ".sources-list"},
		HTMLFragments: []string{
			`class="story-verify"`, `class="verify-badge"`,
			`class="sources-block"`, `class="sources-list"`,
			`target="_blank"`, `rel="noopener"`,
			`<link rel="icon"`, "/_vercel/insights/script.js",
		},
		IndexFragments: []string{"beehiiv", "vol-section", "featured"},
		LayoutImport:   "from '../../layouts/StoryLayout.astro'",
		DataImport:     "from '../../data/stories.json'",
		SectionClass:   `class="section"`,
		PreviewLen:     DefaultPreviewLen,
	}
}

// LoadRules 读取 YAML 规则文件并叠加到默认规则之上。path 为空时直接返回默认规则。
func LoadRules(path string) (*Rules, error) {
	rules := DefaultRules()
	if strings.TrimSpace(path) == "" {
		return rules, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rules %s: %w", path, err)
	}
	return rules, nil
}

// Validate 检查规则集中不允许为空的项。空标记会被任意文本包含，等同于关闭对应检查。
func (r *Rules) Validate() error {
	if len(r.RequiredFields) == 0 {
		return fmt.Errorf("requiredFields must not be empty")
	}
	lists := []struct {
		name  string
		items []string
	}{
		{"requiredFields", r.RequiredFields},
		{"indexMarkers", r.IndexMarkers},
		{"storyLayout", r.StoryLayout},
		{"baseLayout", r.BaseLayout},
		{"styleSelectors", r.StyleSelectors},
		{"htmlFragments", r.HTMLFragments},
		{"indexFragments", r.IndexFragments},
	}
	for _, l := range lists {
		for _, item := range l.items {
			if strings.TrimSpace(item) == "" {
				return fmt.Errorf("%s contains an empty entry", l.name)
			}
		}
	}
	for _, v := range []struct{ name, value string }{
		{"layoutImport", r.LayoutImport},
		{"dataImport", r.DataImport},
		{"sectionClass", r.SectionClass},
	} {
		if strings.TrimSpace(v.value) == "" {
			return fmt.Errorf("%s must not be empty", v.name)
		}
	}
	if r.PreviewLen <= 0 {
		return fmt.Errorf("previewLen must be positive, got %d", r.PreviewLen)
	}
	return nil
}

// Marshal 将规则集编码为 YAML，供 rules 命令输出。
func (r *Rules) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}
