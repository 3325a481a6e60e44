package issues

import (
	"strings"
	"testing"

	"issuebot/model"
)

func TestRenderBody_BodyOnly(t *testing.T) {
	d := &model.IssueDraft{Body: "just text"}
	if got := renderBody(d); got != "just text" {
		t.Errorf("unexpected body: %q", got)
	}
}

func TestRenderBody_ImageSectionInOrder(t *testing.T) {
	d := &model.IssueDraft{
		Body: "it crashes",
		Attachments: []model.Attachment{
			{URL: "https://cdn.example/one.png"},
			{URL: "https://cdn.example/two.png"},
		},
	}
	got := renderBody(d)

	if !strings.HasPrefix(got, "it crashes\n\n### Bilder:") {
		t.Errorf("unexpected rendering: %q", got)
	}
	one := strings.Index(got, "![Bild](https://cdn.example/one.png)")
	two := strings.Index(got, "![Bild](https://cdn.example/two.png)")
	if one < 0 || two < 0 || one > two {
		t.Errorf("expected image references in accumulation order, got %q", got)
	}
}

func TestRenderBody_AttachmentsWithoutBody(t *testing.T) {
	d := &model.IssueDraft{
		Attachments: []model.Attachment{{URL: "https://cdn.example/one.png"}},
	}
	got := renderBody(d)
	if !strings.Contains(got, "### Bilder:") || !strings.Contains(got, "![Bild](https://cdn.example/one.png)") {
		t.Errorf("unexpected rendering: %q", got)
	}
}
