package fileproc

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tbellam/AssistGo/internal/adapter/utils"
	"github.com/tbellam/AssistGo/internal/domain/chatModel"
	"github.com/tbellam/AssistGo/pkg/logger_i"
)

var logger = logger_i.NewLogger("FileProcessor")

// Process turns an uploaded file on disk into a FileContext: classify the
// mime class from the extension, extract text where we know how, record the
// size. The FileContext is created exactly once here; the session owns it
// afterwards.
func Process(path string, originalName string) (chatModel.FileContext, error) {
	info, err := os.Stat(path)
	if err != nil {
		return chatModel.FileContext{}, err
	}

	mimeClass, subtype := classify(originalName)

	fc := chatModel.FileContext{
		Id:          utils.GetNewUUID(),
		Filename:    originalName,
		MimeClass:   mimeClass,
		MimeSubtype: subtype,
		SizeBytes:   info.Size(),
		CreatedAt:   time.Now(),
	}

	if mimeClass == chatModel.MimeDocument {
		text, err := extractText(path, subtype)
		if err != nil {
			// An unreadable document still attaches; it just has no text
			// to retrieve against.
			logger.Warn("text extraction failed", "file", originalName, "error", err)
		}
		fc.ExtractedText = text
	}

	return fc, nil
}

func classify(filename string) (chatModel.MimeClass, string) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch ext {
	case "png", "jpg", "jpeg", "gif", "webp", "bmp":
		return chatModel.MimeImage, ext
	case "pdf", "docx", "odt", "rtf", "txt", "md", "csv":
		return chatModel.MimeDocument, ext
	default:
		return chatModel.MimeUnknown, ext
	}
}
