package utils

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	commentMD = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	commentPolicy = bluemonday.UGCPolicy()
)

func init() {
	// 评论里的外链统一新窗口打开并去除 referrer
	commentPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	commentPolicy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown 把评论的 Markdown 原文渲染为净化后的 HTML
func RenderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := commentMD.Convert([]byte(source), &buf); err != nil {
		// 渲染失败时退回纯文本净化
		return template.HTML(commentPolicy.Sanitize(source))
	}
	return template.HTML(commentPolicy.SanitizeBytes(buf.Bytes()))
}
