package qa

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// externalLinkRegex 匹配 href 指向 http/https 绝对地址的 <a> 开始标签。
var externalLinkRegex = regexp.MustCompile(`<a\s[^>]*href="https?://[^"]*"[^>]*>`)

// styleBlockRegex 匹配内联 <style> 块，捕获其内容。
var styleBlockRegex = regexp.MustCompile(`(?is)<style[^>]*>(.*?)</style>`)

// ExternalLinks 返回文本中所有指向外部地址的 <a> 开始标签原文。
func ExternalLinks(content string) []string {
	return externalLinkRegex.FindAllString(content, -1)
}

// UnsafeExternalLinks 返回未携带 noopener 或 noreferrer 的外部链接标签。
func UnsafeExternalLinks(content string) []string {
	var out []string
	for _, link := range ExternalLinks(content) {
		if !strings.Contains(link, "noopener") && !strings.Contains(link, "noreferrer") {
			out = append(out, link)
		}
	}
	return out
}

// StyleBlocks 返回文档中所有内联样式块的内容，按出现顺序。
func StyleBlocks(doc string) []string {
	var out []string
	for _, m := range styleBlockRegex.FindAllStringSubmatch(doc, -1) {
		out = append(out, m[1])
	}
	return out
}

// Preview 将 s 截断为至多 n 个字符（按 rune 计），避免截断多字节字符。
func Preview(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// MissingMarkers 返回 markers 中未出现在 content 里的项，保持 markers 原有顺序。
func MissingMarkers(content string, markers []string) []string {
	var out []string
	for _, m := range markers {
		if !strings.Contains(content, m) {
			out = append(out, m)
		}
	}
	return out
}

// StoryPath 返回故事页的站内路径。
func StoryPath(slug string) string {
	return "/stories/" + slug
}

// hasStoryLink 判断首页是否直接链接到 slug 对应的故事页。
func hasStoryLink(index, slug string) bool {
	return strings.Contains(index, `href="`+StoryPath(slug)+`"`)
}
