package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuroprep/nireport/domain"
)

func TestAboutSummary_EmbedsVersionAndCommand(t *testing.T) {
	svc := NewAboutSummaryService(testLogger())

	resp, err := svc.Summarize(context.Background(), domain.AboutSummaryRequest{
		Version: "25.1.0",
		Command: "nireport subject --bids-dir /data/bids",
	})
	require.NoError(t, err)

	assert.Equal(t, "25.1.0", resp.Version)
	assert.Contains(t, resp.Segment, "Pipeline version: 25.1.0")
	assert.Contains(t, resp.Segment, "<code>nireport subject --bids-dir /data/bids</code>")
}

func TestAboutSummary_TimestampFormat(t *testing.T) {
	svc := NewAboutSummaryService(testLogger())

	resp, err := svc.Summarize(context.Background(), domain.AboutSummaryRequest{
		Version: "dev",
		Command: "nireport about",
	})
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} [+-]\d{4}$`)
	assert.Regexp(t, pattern, resp.Date)
	assert.Contains(t, resp.Segment, "Date preprocessed: "+resp.Date)
}

func TestAboutSummary_FixedClock(t *testing.T) {
	svc := NewAboutSummaryService(testLogger())
	svc.now = func() time.Time {
		return time.Date(2026, 8, 25, 13, 37, 42, 0, time.UTC)
	}

	resp, err := svc.Summarize(context.Background(), domain.AboutSummaryRequest{
		Version: "1.0.0",
		Command: "nireport about",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-08-25 13:37:42 +0000", resp.Date)
}

func TestAboutSummary_CommandEmbeddedVerbatim(t *testing.T) {
	svc := NewAboutSummaryService(testLogger())

	// Shell metacharacters must survive byte for byte, not as entities
	command := `fmriprep /data /out participant --fs-license "$HOME/lic" 2>&1`
	resp, err := svc.Summarize(context.Background(), domain.AboutSummaryRequest{
		Version: "dev",
		Command: command,
	})
	require.NoError(t, err)

	assert.Contains(t, resp.Segment, "<code>"+command+"</code>")
	assert.NotContains(t, resp.Segment, "&amp;")
	assert.NotContains(t, resp.Segment, "&gt;")
}
