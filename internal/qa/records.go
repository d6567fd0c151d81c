package qa

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Record 是 stories.json 中的一条故事记录。保留原始键值以区分“缺失”与“为 null”。
type Record map[string]interface{}

// Slug 返回记录的标识；缺失或非字符串时返回 "?"。
func (r Record) Slug() string {
	if s, ok := r["slug"].(string); ok && s != "" {
		return s
	}
	return "?"
}

// LoadRecords 读取并解析 stories.json。文件缺失或无法解析属于致命错误。
func LoadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return ParseRecords(data)
}

// ParseRecords 从内存解析记录数组，与 LoadRecords 结果形态一致。
func ParseRecords(data []byte) ([]Record, error) {
	var out []Record
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}
	return out, nil
}

// CheckRecords 校验每条记录的必填字段与 sources 列表，返回排序去重后的 slug 集合。
func CheckRecords(records []Record, rules *Rules, report *Report) []string {
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		slug := rec.Slug()
		if slug != "?" {
			if seen[slug] {
				report.Addf("stories.json [%s]: duplicate slug", slug)
			}
			seen[slug] = true
		}
		for _, field := range rules.RequiredFields {
			if v, ok := rec[field]; !ok || v == nil {
				report.Addf("stories.json [%s]: missing field — %s", slug, field)
			}
		}
		checkSources(rec, slug, report)
	}
	slugs := make([]string, 0, len(seen))
	for s := range seen {
		slugs = append(slugs, s)
	}
	sort.Strings(slugs)
	return slugs
}

// checkSources 要求 sources 为非空列表，且每项都带 url 与 label。字段缺失由必填检查负责。
func checkSources(rec Record, slug string, report *Report) {
	raw, ok := rec["sources"]
	if !ok || raw == nil {
		return
	}
	list, ok := raw.([]interface{})
	if !ok || len(list) == 0 {
		report.Addf("stories.json [%s]: sources must be a non-empty list", slug)
		return
	}
	for i, item := range list {
		src, _ := item.(map[string]interface{})
		if src == nil || src["url"] == nil || src["label"] == nil {
			report.Addf("stories.json [%s]: source entry %d missing url or label", slug, i+1)
		}
	}
}
