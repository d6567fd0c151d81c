package qa

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Report 按发现顺序累积违规信息。各检查函数通过指针共享同一个 Report。
type Report struct {
	violations []string
	checked    int
}

// Addf 追加一条违规。
func (r *Report) Addf(format string, args ...interface{}) {
	r.violations = append(r.violations, fmt.Sprintf(format, args...))
}

// Violations 返回违规列表的副本。
func (r *Report) Violations() []string {
	out := make([]string, len(r.violations))
	copy(out, r.violations)
	return out
}

// Len 返回违规条数。
func (r *Report) Len() int {
	return len(r.violations)
}

// Passed 在没有任何违规时为 true。
func (r *Report) Passed() bool {
	return len(r.violations) == 0
}

// SetChecked 记录本次检查的页面数（故事页 + 首页），用于通过时的摘要行。
func (r *Report) SetChecked(n int) {
	r.checked = n
}

// Checked 返回检查过的页面数。
func (r *Report) Checked() int {
	return r.checked
}

var (
	failColor = color.New(color.FgRed, color.Bold)
	passColor = color.New(color.FgGreen)
)

// Print 输出报告。失败时输出问题数与逐条列表，通过时输出一行摘要；summary 附在页面数之后。
func (r *Report) Print(w io.Writer, summary string) {
	if !r.Passed() {
		fmt.Fprintln(w)
		failColor.Fprintf(w, "❌  QA FAILED — %d issue(s) found:\n", r.Len())
		fmt.Fprintln(w)
		for _, v := range r.violations {
			fmt.Fprintf(w, "  • %s\n", v)
		}
		fmt.Fprintln(w)
		return
	}
	if summary != "" {
		passColor.Fprintf(w, "✓  QA passed — %d pages checked, %s, no issues found.\n", r.checked, summary)
		return
	}
	passColor.Fprintf(w, "✓  QA passed — %d pages checked, no issues found.\n", r.checked)
}
