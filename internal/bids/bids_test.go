package bids

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuroprep/nireport/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected Entities
	}{
		{
			name: "full entity set",
			path: "sub-01_ses-pre_task-rest_acq-highres_rec-mc_run-1_bold.nii.gz",
			expected: Entities{
				Subject:        "01",
				Session:        "pre",
				Task:           "rest",
				Acquisition:    "highres",
				Reconstruction: "mc",
				Run:            "1",
			},
		},
		{
			name:     "task only",
			path:     "sub-01_task-motor_bold.nii.gz",
			expected: Entities{Subject: "01", Task: "motor"},
		},
		{
			name:     "with directory prefix",
			path:     "/data/bids/sub-02/func/sub-02_task-rest_run-2_bold.nii.gz",
			expected: Entities{Subject: "02", Task: "rest", Run: "2"},
		},
		{
			name:     "structural without task",
			path:     "sub-01_T1w.nii.gz",
			expected: Entities{Subject: "01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ents, err := Parse(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ents)
		})
	}
}

func TestParse_NotBIDS(t *testing.T) {
	_, err := Parse("functional_scan_01.nii.gz")
	require.Error(t, err)

	var domainErr domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeParseError, domainErr.Code)
}

func TestTaskOf_MissingTask(t *testing.T) {
	_, err := TaskOf("sub-01_bold.nii.gz")
	assert.Error(t, err)
}

func TestCountTasks(t *testing.T) {
	tests := []struct {
		name     string
		series   []string
		expected []domain.TaskCount
	}{
		{
			name: "two rest runs",
			series: []string{
				"sub-01_task-rest_run-1_bold.nii.gz",
				"sub-01_task-rest_run-2_bold.nii.gz",
			},
			expected: []domain.TaskCount{{Task: "rest", Runs: 2}},
		},
		{
			name:     "single motor run",
			series:   []string{"sub-01_task-motor_bold.nii.gz"},
			expected: []domain.TaskCount{{Task: "motor", Runs: 1}},
		},
		{
			name: "mixed tasks sorted lexicographically",
			series: []string{
				"sub-01_task-rest_run-1_bold.nii.gz",
				"sub-01_task-motor_run-1_bold.nii.gz",
				"sub-01_task-rest_run-2_bold.nii.gz",
			},
			expected: []domain.TaskCount{
				{Task: "motor", Runs: 1},
				{Task: "rest", Runs: 2},
			},
		},
		{
			name:     "empty input",
			series:   nil,
			expected: []domain.TaskCount{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := CountTasks(tt.series)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tasks)
		})
	}
}

func TestCountTasks_ParseFailureIsFatal(t *testing.T) {
	_, err := CountTasks([]string{
		"sub-01_task-rest_run-1_bold.nii.gz",
		"not_a_bids_name.nii.gz",
	})
	assert.Error(t, err)
}

func TestSubjects(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"sub-02", "sub-01", "derivatives", "sub-10"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0o755))
	}
	// Stray file with a sub- prefix must not be picked up
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub-03.json"), []byte("{}"), 0o644))

	subjects, err := Subjects(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"01", "02", "10"}, subjects)
}

func TestCollectSubjectFiles(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"sub-01/anat/sub-01_T1w.nii.gz",
		"sub-01/anat/sub-01_T2w.nii.gz",
		"sub-01/func/sub-01_task-rest_run-1_bold.nii.gz",
		"sub-01/func/sub-01_task-rest_run-2_bold.nii.gz",
		"sub-02/ses-pre/func/sub-02_ses-pre_task-motor_bold.nii.gz",
	}
	for _, f := range files {
		path := filepath.Join(dir, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("nifti"), 0o644))
	}

	got, err := CollectSubjectFiles(dir, "01")
	require.NoError(t, err)
	assert.Len(t, got.T1w, 1)
	assert.Len(t, got.T2w, 1)
	assert.Len(t, got.Bold, 2)

	// Session layout is matched through the ** component
	got2, err := CollectSubjectFiles(dir, "02")
	require.NoError(t, err)
	assert.Empty(t, got2.T1w)
	assert.Len(t, got2.Bold, 1)
}
