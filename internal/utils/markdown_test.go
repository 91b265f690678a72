package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	out := string(RenderMarkdown("**加粗** 和 `代码`"))
	if !strings.Contains(out, "<strong>加粗</strong>") {
		t.Errorf("Expected bold rendered, got %q", out)
	}
	if !strings.Contains(out, "<code>代码</code>") {
		t.Errorf("Expected inline code rendered, got %q", out)
	}
}

func TestRenderMarkdownStripsScript(t *testing.T) {
	out := string(RenderMarkdown("你好 <script>alert(1)</script>"))
	if strings.Contains(out, "<script>") {
		t.Errorf("Expected script stripped, got %q", out)
	}
}
