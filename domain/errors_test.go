package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "error without cause",
			err:      NewValidationError("subject id required"),
			expected: "[INVALID_INPUT] subject id required",
		},
		{
			name:     "error with cause",
			err:      NewOutputError("failed to write report", errors.New("disk full")),
			expected: "[OUTPUT_ERROR] failed to write report: disk full",
		},
		{
			name:     "file not found",
			err:      NewFileNotFoundError("/data/sub-01_T1w.nii.gz", nil),
			expected: "[FILE_NOT_FOUND] file not found: /data/sub-01_T1w.nii.gz",
		},
		{
			name:     "unsupported format",
			err:      NewUnsupportedFormatError("csv"),
			expected: "[UNSUPPORTED_FORMAT] unsupported format: csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewToolError("melodic failed", cause)

	assert.ErrorIs(t, err, cause)

	var domainErr DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, ErrCodeToolError, domainErr.Code)
}

func TestSeries_Primary(t *testing.T) {
	assert.Equal(t, "", Series{}.Primary())
	assert.Equal(t, "a.nii.gz", Series{"a.nii.gz"}.Primary())
	assert.Equal(t, "echo1.nii.gz", Series{"echo1.nii.gz", "echo2.nii.gz"}.Primary())
}

func TestRenderedSegment_GenerateSegment(t *testing.T) {
	segment, err := RenderedSegment("<ul><li>ok</li></ul>").GenerateSegment()
	assert.NoError(t, err)
	assert.Equal(t, "<ul><li>ok</li></ul>", segment)
}
