package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuroprep/nireport/domain"
)

func testLogger() *charmlog.Logger {
	return charmlog.New(io.Discard)
}

func TestSubjectSummary_CountsAndID(t *testing.T) {
	svc := NewSubjectSummaryService(testLogger())

	resp, err := svc.Summarize(context.Background(), domain.SubjectSummaryRequest{
		SubjectID: "01",
		T1w:       []string{"sub-01_run-1_T1w.nii.gz", "sub-01_run-2_T1w.nii.gz"},
		T2w:       []string{"sub-01_T2w.nii.gz"},
		Bold: []domain.Series{
			{"sub-01_task-rest_run-1_bold.nii.gz"},
			{"sub-01_task-rest_run-2_bold.nii.gz"},
		},
		StdSpaces:  []string{"MNI152NLin2009cAsym", "fsaverage5"},
		NstdSpaces: []string{"T1w"},
	})
	require.NoError(t, err)

	assert.Equal(t, "01", resp.SubjectID)
	assert.Equal(t, 2, resp.NumT1w)
	assert.Equal(t, 1, resp.NumT2w)
	assert.Equal(t, 2, resp.NumBold)
	assert.Equal(t, domain.FreeSurferNotRun, resp.FreeSurfer)

	assert.Contains(t, resp.Segment, "Subject ID: 01")
	assert.Contains(t, resp.Segment, "Structural images: 2 T1-weighted (+ 1 T2-weighted)")
	assert.Contains(t, resp.Segment, "Functional series: 2")
	assert.Contains(t, resp.Segment, "Standard output spaces: MNI152NLin2009cAsym, fsaverage5")
	assert.Contains(t, resp.Segment, "Non-standard output spaces: T1w")
	assert.Contains(t, resp.Segment, "FreeSurfer reconstruction: Not run")
}

func TestSubjectSummary_TaskRunCounts(t *testing.T) {
	svc := NewSubjectSummaryService(testLogger())

	resp, err := svc.Summarize(context.Background(), domain.SubjectSummaryRequest{
		SubjectID: "01",
		Bold: []domain.Series{
			{"sub-01_task-rest_run-1_bold.nii.gz"},
			{"sub-01_task-rest_run-2_bold.nii.gz"},
		},
	})
	require.NoError(t, err)

	require.Equal(t, []domain.TaskCount{{Task: "rest", Runs: 2}}, resp.Tasks)
	assert.Contains(t, resp.Segment, "rest (2 runs)")
}

func TestSubjectSummary_SingularRun(t *testing.T) {
	svc := NewSubjectSummaryService(testLogger())

	resp, err := svc.Summarize(context.Background(), domain.SubjectSummaryRequest{
		SubjectID: "01",
		Bold:      []domain.Series{{"sub-01_task-motor_bold.nii.gz"}},
	})
	require.NoError(t, err)

	assert.Contains(t, resp.Segment, "motor (1 run)")
	assert.NotContains(t, resp.Segment, "motor (1 runs)")
}

func TestSubjectSummary_NoTasksOmitsList(t *testing.T) {
	svc := NewSubjectSummaryService(testLogger())

	resp, err := svc.Summarize(context.Background(), domain.SubjectSummaryRequest{SubjectID: "01"})
	require.NoError(t, err)

	assert.Empty(t, resp.Tasks)
	assert.NotContains(t, resp.Segment, "Task:")
	assert.Equal(t, 0, resp.NumBold)
}

func TestSubjectSummary_SplitRunsUseFirstFile(t *testing.T) {
	svc := NewSubjectSummaryService(testLogger())

	resp, err := svc.Summarize(context.Background(), domain.SubjectSummaryRequest{
		SubjectID: "01",
		Bold: []domain.Series{
			{"sub-01_task-rest_run-1_part-1_bold.nii.gz", "sub-01_task-rest_run-1_part-2_bold.nii.gz"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.NumBold)
	assert.Equal(t, []domain.TaskCount{{Task: "rest", Runs: 1}}, resp.Tasks)
}

func TestSubjectSummary_BadSeriesNameIsFatal(t *testing.T) {
	svc := NewSubjectSummaryService(testLogger())

	_, err := svc.Summarize(context.Background(), domain.SubjectSummaryRequest{
		SubjectID: "01",
		Bold:      []domain.Series{{"functional_scan.nii.gz"}},
	})
	assert.Error(t, err)
}

func TestSubjectSummary_EmptySeriesEntry(t *testing.T) {
	svc := NewSubjectSummaryService(testLogger())

	_, err := svc.Summarize(context.Background(), domain.SubjectSummaryRequest{
		SubjectID: "01",
		Bold:      []domain.Series{{}},
	})
	assert.Error(t, err)
}

func TestSubjectSummary_FreeSurferStates(t *testing.T) {
	svc := NewSubjectSummaryService(testLogger())

	subjectsDir := t.TempDir()

	// No pre-existing subject directory: the wrapper would run recon-all
	resp, err := svc.Summarize(context.Background(), domain.SubjectSummaryRequest{
		SubjectID:   "01",
		SubjectsDir: subjectsDir,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FreeSurferRunByPipeline, resp.FreeSurfer)

	// Pre-existing directory: the wrapper would no-op
	require.NoError(t, os.Mkdir(filepath.Join(subjectsDir, "sub-01"), 0o755))
	resp, err = svc.Summarize(context.Background(), domain.SubjectSummaryRequest{
		SubjectID:   "01",
		SubjectsDir: subjectsDir,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FreeSurferPreExisting, resp.FreeSurfer)
}

func TestSubjectSegment_Idempotent(t *testing.T) {
	resp := &domain.SubjectSummaryResponse{
		SubjectID:  "99",
		NumT1w:     1,
		NumBold:    1,
		Tasks:      []domain.TaskCount{{Task: "rest", Runs: 1}},
		StdSpaces:  []string{"MNI152NLin6Asym"},
		FreeSurfer: domain.FreeSurferNotRun,
	}

	first, err := SubjectSegment{Response: resp}.GenerateSegment()
	require.NoError(t, err)
	second, err := SubjectSegment{Response: resp}.GenerateSegment()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
