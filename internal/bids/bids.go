// Package bids parses BIDS entity names and discovers imaging files in a
// BIDS dataset layout.
package bids

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/neuroprep/nireport/domain"
)

// nameRegexp matches the leading entities of a BIDS filename. Only the
// entities this module consumes are captured.
var nameRegexp = regexp.MustCompile(
	`^(.*/)?` +
		`(?P<subject_id>sub-[a-zA-Z0-9]+)` +
		`(_(?P<session_id>ses-[a-zA-Z0-9]+))?` +
		`(_(?P<task_id>task-[a-zA-Z0-9]+))?` +
		`(_(?P<acq_id>acq-[a-zA-Z0-9]+))?` +
		`(_(?P<rec_id>rec-[a-zA-Z0-9]+))?` +
		`(_(?P<run_id>run-[a-zA-Z0-9]+))?`,
)

// Entities holds the decoded BIDS entities of one filename. Values carry the
// entity prefix stripped (task-rest -> "rest"); absent entities are empty.
type Entities struct {
	Subject        string
	Session        string
	Task           string
	Acquisition    string
	Reconstruction string
	Run            string
}

// Parse decodes the BIDS entities of path. The path must start with a
// sub-<label> entity after any directory prefix.
func Parse(path string) (Entities, error) {
	m := nameRegexp.FindStringSubmatch(filepath.ToSlash(path))
	if m == nil {
		return Entities{}, domain.NewParseError(path, nil)
	}

	get := func(group string) string {
		idx := nameRegexp.SubexpIndex(group)
		if idx < 0 || m[idx] == "" {
			return ""
		}
		// Strip the "<entity>-" prefix
		_, value, _ := strings.Cut(m[idx], "-")
		return value
	}

	return Entities{
		Subject:        get("subject_id"),
		Session:        get("session_id"),
		Task:           get("task_id"),
		Acquisition:    get("acq_id"),
		Reconstruction: get("rec_id"),
		Run:            get("run_id"),
	}, nil
}

// TaskOf returns the task label of a functional series filename. A name
// without a recognizable task entity is a fatal parse error; there is no
// best-effort fallback.
func TaskOf(path string) (string, error) {
	ents, err := Parse(path)
	if err != nil {
		return "", err
	}
	if ents.Task == "" {
		return "", domain.NewParseError(path, nil)
	}
	return ents.Task, nil
}

// CountTasks counts runs per task label over a set of functional series,
// reported in lexicographic task order.
func CountTasks(series []string) ([]domain.TaskCount, error) {
	counts := make(map[string]int, len(series))
	for _, s := range series {
		task, err := TaskOf(s)
		if err != nil {
			return nil, err
		}
		counts[task]++
	}

	tasks := make([]domain.TaskCount, 0, len(counts))
	for task, runs := range counts {
		tasks = append(tasks, domain.TaskCount{Task: task, Runs: runs})
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Task < tasks[j].Task })
	return tasks, nil
}

// Subjects lists the subject labels (without the sub- prefix) present in a
// BIDS dataset root, in sorted order.
func Subjects(bidsDir string) ([]string, error) {
	entries, err := os.ReadDir(bidsDir)
	if err != nil {
		return nil, domain.NewFileNotFoundError(bidsDir, err)
	}

	var subjects []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), "sub-") {
			subjects = append(subjects, strings.TrimPrefix(entry.Name(), "sub-"))
		}
	}
	sort.Strings(subjects)
	return subjects, nil
}

// Glob patterns for per-subject file discovery, relative to the dataset root.
const (
	t1wPattern  = "sub-%s/**/anat/*_T1w.nii*"
	t2wPattern  = "sub-%s/**/anat/*_T2w.nii*"
	boldPattern = "sub-%s/**/func/*_bold.nii*"
)

// SubjectFiles holds the imaging files discovered for one subject
type SubjectFiles struct {
	T1w  []string
	T2w  []string
	Bold []string
}

// CollectSubjectFiles globs the structural and functional images of one
// subject under a BIDS dataset root. Session-less layouts are matched too:
// the ** component may match zero directories.
func CollectSubjectFiles(bidsDir, subject string) (*SubjectFiles, error) {
	files := &SubjectFiles{}

	for _, target := range []struct {
		pattern string
		dest    *[]string
	}{
		{t1wPattern, &files.T1w},
		{t2wPattern, &files.T2w},
		{boldPattern, &files.Bold},
	} {
		pattern := filepath.Join(bidsDir, sprintfSubject(target.pattern, subject))
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, domain.NewInvalidInputError("invalid glob pattern: "+pattern, err)
		}
		sort.Strings(matches)
		*target.dest = matches
	}

	return files, nil
}

func sprintfSubject(pattern, subject string) string {
	return strings.ReplaceAll(pattern, "%s", subject)
}
