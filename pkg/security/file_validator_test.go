package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDocument(t *testing.T) {
	pdf := append([]byte("%PDF-1.4\n"), make([]byte, 64)...)

	res := ValidateDocument("Resume.PDF", pdf)
	assert.True(t, res.Valid, res.Error)
	assert.Equal(t, ".pdf", res.Extension)
	assert.Equal(t, MIMEPDF, res.MIMEType)

	res = ValidateDocument("resume", pdf)
	assert.False(t, res.Valid)
	assert.Equal(t, "file has no extension", res.Error)

	res = ValidateDocument("photo.png", pdf)
	assert.False(t, res.Valid)

	res = ValidateDocument("resume.docx", pdf)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "does not match")

	res = ValidateDocument("resume.pdf", []byte("%P"))
	assert.False(t, res.Valid)
}

func TestValidateFileExtension(t *testing.T) {
	assert.NoError(t, ValidateFileExtension("letter.docx"))
	assert.Error(t, ValidateFileExtension("letter.txt"))
	assert.Error(t, ValidateFileExtension("letter"))
}

func TestMIMEForFilename(t *testing.T) {
	assert.Equal(t, MIMEDOC, MIMEForFilename("old.doc", nil))
	assert.Equal(t, "text/plain; charset=utf-8", MIMEForFilename("notes.txt", []byte("hello")))
}

func TestUploadLimiter_NoRedisFailsOpen(t *testing.T) {
	l := NewUploadLimiter(nil, 0, 0)
	res, err := l.AllowUpload(t.Context(), "1.2.3.4", "job")
	assert.True(t, res.Allowed)
	assert.Zero(t, res.RetryAfter)
	assert.ErrorIs(t, err, ErrLimiterUnavailable)
	assert.NoError(t, l.Release(t.Context(), res))
}
