package intent

import (
	"strings"
	"unicode"

	"github.com/tbellam/AssistGo/internal/rag/prompt"
)

const (
	FileUpload       = "file_upload"
	ImageAnalysis    = "image_analysis"
	DocumentAnalysis = "document_analysis"
	Search           = "search"
	Analysis         = "analysis"
	Calculate        = "calculate"
	Translate        = "translate"
	Greeting         = "greeting"
	Help             = "help"
	General          = "general"
)

type rule struct {
	intent   string
	keywords []string
}

// rules are checked in order, first match wins. Greeting keywords cover
// every supported response language.
var rules = []rule{
	{FileUpload, []string{"upload", "file", "attach", "attachment"}},
	{ImageAnalysis, []string{"image", "photo", "picture", "png", "jpg", "jpeg"}},
	{DocumentAnalysis, []string{"document", "pdf", "docx", "page"}},
	{Search, []string{"search", "find", "lookup", "locate"}},
	{Analysis, []string{"analyze", "analyse", "analysis", "explain", "summarize", "summary"}},
	{Calculate, []string{"calculate", "compute", "convert", "math"}},
	{Translate, []string{"translate", "translation"}},
	{Greeting, prompt.GreetingWords()},
	{Help, []string{"help", "assist", "support"}},
}

// Classify maps a query to an intent, language-agnostically.
func Classify(query string) string {
	words := make(map[string]bool)
	for _, w := range tokenizeAll(query) {
		words[w] = true
	}
	for _, r := range rules {
		for _, k := range r.keywords {
			if words[k] {
				return r.intent
			}
		}
	}
	return General
}

// tokenizeAll keeps every word - greeting words like "hi" are shorter than
// the lexical-search minimum.
func tokenizeAll(query string) []string {
	return strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
