package prompt

import (
	"strings"
	"testing"

	"github.com/tbellam/AssistGo/internal/domain/chatModel"
)

func TestBuild_SectionOrder(t *testing.T) {
	passages := []chatModel.RetrievedPassage{
		{Text: "passage one", SourceTag: chatModel.SourceLocalKnowledge},
		{Text: "passage two", SourceTag: chatModel.SourceExternalVector},
	}

	p := Build("en", passages, "File: a.txt\nType: document/txt\nSize: 5 bytes\nalpha",
		"user: earlier question\nassistant: earlier answer", "what is alpha?", 1)

	sections := []string{
		"You are a helpful multilingual assistant. You MUST respond in English (en).",
		"Supported response languages:",
		"Context:",
		"passage one\n---\npassage two",
		"Uploaded file content:",
		"The user has attached 1 file(s) in this session.",
		"Previous conversation:",
		"User question: what is alpha?",
		"Instructions:",
		"General guidelines:",
		"Respond in English (en).",
	}

	last := -1
	for _, section := range sections {
		idx := strings.Index(p, section)
		if idx == -1 {
			t.Fatalf("prompt is missing section %q\n%s", section, p)
		}
		if idx < last {
			t.Errorf("section %q appears out of order", section)
		}
		last = idx
	}
}

func TestBuild_Sentinels(t *testing.T) {
	p := Build("en", nil, "", "", "anything", 0)

	if !strings.Contains(p, "Context:\n"+NoContextSentinel) {
		t.Error("empty retrieval did not produce the no-context sentinel")
	}
	if strings.Contains(p, "Uploaded file content:") {
		t.Error("file section present without file context")
	}
	if strings.Contains(p, "attached") {
		t.Error("file-count notice present without files")
	}
	if strings.Contains(p, "Previous conversation:") {
		t.Error("history section present without history")
	}
}

func TestBuild_HistorySentinelSuppressesSection(t *testing.T) {
	p := Build("en", nil, "", NoHistorySentinel, "anything", 0)
	if strings.Contains(p, "Previous conversation:") {
		t.Error("sentinel history text still produced the history section")
	}
}

func TestBuild_UnknownLanguageEchoesCode(t *testing.T) {
	p := Build("xx", nil, "", "", "anything", 0)

	// English template content, but the requested code in the directives
	if !strings.Contains(p, "You MUST respond in English (xx).") {
		t.Errorf("opening directive wrong:\n%s", p)
	}
	if !strings.Contains(p, "Respond in English (xx).") {
		t.Errorf("closing directive wrong:\n%s", p)
	}
	if !strings.Contains(p, "Answer naturally and completely in English.") {
		t.Error("unknown code did not fall back to English instructions")
	}
}

func TestBuild_SupportedLanguage(t *testing.T) {
	p := Build("es", nil, "", "", "hola", 0)
	if !strings.Contains(p, "You MUST respond in Spanish (es).") {
		t.Errorf("spanish directive missing:\n%s", p)
	}
	if !strings.Contains(p, "Responde de forma natural y completa en español.") {
		t.Error("spanish instruction block missing")
	}
}

func TestBuild_KeywordTriggeredBlocks(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantImage    bool
		wantDocument bool
	}{
		{"Image_Keyword", "what's in this photo", true, false},
		{"Document_Keyword", "summarize the pdf", false, true},
		{"Both", "is the image in the document", true, true},
		{"Neither", "what's the capital of France", false, false},
		{"Substring_Does_Not_Trigger", "imagination and pageantry", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build("en", nil, "", "", tt.query, 0)
			pack := languages["en"]
			if got := strings.Contains(p, pack.Image); got != tt.wantImage {
				t.Errorf("image block present=%v, want %v", got, tt.wantImage)
			}
			if got := strings.Contains(p, pack.Document); got != tt.wantDocument {
				t.Errorf("document block present=%v, want %v", got, tt.wantDocument)
			}
		})
	}
}

func TestFormatHistory(t *testing.T) {
	if got := FormatHistory(nil, 6); got != NoHistorySentinel {
		t.Errorf("empty history got %q, want sentinel", got)
	}

	turns := []chatModel.ConversationTurn{
		{Role: chatModel.RoleUser, Content: "one"},
		{Role: chatModel.RoleAssistant, Content: "two"},
		{Role: chatModel.RoleUser, Content: "three"},
	}

	got := FormatHistory(turns, 6)
	want := "user: one\nassistant: two\nuser: three"
	if got != want {
		t.Errorf("FormatHistory got %q, want %q", got, want)
	}

	// only the most recent turns survive the limit
	got = FormatHistory(turns, 2)
	want = "assistant: two\nuser: three"
	if got != want {
		t.Errorf("FormatHistory limited got %q, want %q", got, want)
	}
}

func TestFallbackText(t *testing.T) {
	if got := FallbackText("es"); !strings.Contains(got, "Lo siento") {
		t.Errorf("spanish fallback got %q", got)
	}
	// unknown codes fall back to the English canned answer
	if got := FallbackText("xx"); got != languages["en"].Fallback {
		t.Errorf("unknown-code fallback got %q", got)
	}
}
