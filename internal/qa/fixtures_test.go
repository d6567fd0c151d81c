package qa

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func fullRecord(slug string) map[string]interface{} {
	return map[string]interface{}{
		"slug":       slug,
		"chapter":    1,
		"volume":     1,
		"title":      "Title " + slug,
		"deck":       "Deck",
		"date":       "2025-01-01",
		"readTime":   "5 min",
		"emoji":      "🤖",
		"tags":       []string{"ai"},
		"story":      "Body",
		"storyDark":  "Dark body",
		"verifyText": "Verified",
		"sources": []map[string]string{
			{"url": "https://example.com/a", "label": "Example"},
		},
	}
}

func astroPage(slug string) string {
	return fmt.Sprintf(`---
import StoryLayout from '../../layouts/StoryLayout.astro';
import stories from '../../data/stories.json';
const story = stories.find((s) => s.slug === '%s');
---
<StoryLayout story={story}>
  <div class="section">
    <p>See <a href="https://example.com/%s" target="_blank" rel="noopener">the source</a>.</p>
  </div>
</StoryLayout>
`, slug, slug)
}

func astroIndex(slugs []string) string {
	var b strings.Builder
	b.WriteString("---\nimport BaseLayout from '../layouts/BaseLayout.astro';\n---\n<BaseLayout>\n")
	b.WriteString(`<script async src="https://embeds.beehiiv.com/attribution.js"></script>` + "\n")
	b.WriteString(`<section class="vol-section"><div class="featured">` + "\n")
	for _, s := range slugs {
		fmt.Fprintf(&b, "<a href=\"/stories/%s\">%s</a>\n", s, s)
	}
	b.WriteString("</div></section>\n</BaseLayout>\n")
	return b.String()
}

const storyLayoutFixture = `<article>
<div class="story-verify"><span class="verify-badge">✓</span></div>
<div class="sources-block"><ol class="sources-list">
{story.sources.map((s) => <li><a href={s.url} target="_blank" rel="noopener">{s.label}</a></li>)}
</ol></div>
</article>
`

const baseLayoutFixture = `<html><head>
<link rel="icon" type="image/svg+xml" href="/favicon.svg" />
<script defer src="/_vercel/insights/script.js"></script>
</head><body><slot /></body></html>
`

// newAstroFixture 在临时目录中构建一个完全合规的 Astro 站点。
func newAstroFixture(t *testing.T, slugs ...string) string {
	t.Helper()
	root := t.TempDir()
	records := make([]map[string]interface{}, 0, len(slugs))
	for _, s := range slugs {
		records = append(records, fullRecord(s))
		writeFile(t, filepath.Join(root, astroStoriesDir, s+".astro"), astroPage(s))
	}
	writeRecords(t, root, records)
	writeFile(t, filepath.Join(root, astroIndexFile), astroIndex(slugs))
	writeFile(t, filepath.Join(root, astroStoryLayout), storyLayoutFixture)
	writeFile(t, filepath.Join(root, astroBaseLayout), baseLayoutFixture)
	return root
}

func writeRecords(t *testing.T, root string, records []map[string]interface{}) {
	t.Helper()
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		t.Fatalf("marshal records: %v", err)
	}
	writeFile(t, filepath.Join(root, astroDataFile), string(data))
}

func staticPage() string {
	return `<!doctype html>
<html><head>
<link rel="icon" href="/favicon.svg">
<style>
  .story-verify { margin: 2rem 0; }
  .verify-badge { color: green; }
  .sources-block { border-top: 1px solid #ccc; }
  .sources-list { list-style: decimal; }
</style>
<script defer src="/_vercel/insights/script.js"></script>
</head><body>
<div class="section"><p>Story body.</p></div>
<div class="story-verify"><span class="verify-badge">✓</span></div>
<div class="sources-block"><ol class="sources-list">
<li><a href="https://example.com" target="_blank" rel="noopener">Example</a></li>
</ol></div>
</body></html>
`
}

// newStaticFixture 在临时目录中构建一个完全合规的纯 HTML 站点。
func newStaticFixture(t *testing.T, slugs ...string) string {
	t.Helper()
	root := t.TempDir()
	var b strings.Builder
	b.WriteString(`<html><body><script src="https://embeds.beehiiv.com/attribution.js"></script>` + "\n")
	b.WriteString(`<section class="vol-section"><div class="featured">` + "\n")
	for _, s := range slugs {
		writeFile(t, filepath.Join(root, staticStoriesDir, s+".html"), staticPage())
		fmt.Fprintf(&b, "<a href=\"/stories/%s\">%s</a>\n", s, s)
	}
	b.WriteString("</div></section></body></html>\n")
	writeFile(t, filepath.Join(root, staticIndexFile), b.String())
	return root
}

func runSite(t *testing.T, site Site) *Report {
	t.Helper()
	report, err := Run(site)
	if err != nil {
		t.Fatalf("run %s: %v", site.Name(), err)
	}
	return report
}
