package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/neuroprep/nireport/domain"
)

// ReconAll models the FreeSurfer recon-all wrapper just far enough to tell
// whether it would execute a real command or no-op. It is never executed by
// this module; only its command line is inspected.
type ReconAll struct {
	SubjectsDir string
	SubjectID   string
	T1Files     []string
	Flags       []string
}

// Cmdline returns the command the wrapper would run. When the subject
// directory already holds a reconstruction the wrapper degrades to an echo
// no-op, which is the signal consumed by ClassifyReconStatus.
func (r ReconAll) Cmdline() string {
	if r.preExisting() {
		return fmt.Sprintf("echo recon-all: nothing to do for subject %s", r.SubjectID)
	}

	parts := []string{"recon-all", "-autorecon-all"}
	for _, t1 := range r.T1Files {
		parts = append(parts, "-i", t1)
	}
	parts = append(parts, "-subjid", r.SubjectID, "-sd", r.SubjectsDir)
	parts = append(parts, r.Flags...)
	return strings.Join(parts, " ")
}

// preExisting reports whether the subject directory already exists inside
// the subjects directory.
func (r ReconAll) preExisting() bool {
	if r.SubjectsDir == "" || r.SubjectID == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(r.SubjectsDir, r.SubjectID))
	return err == nil && info.IsDir()
}

// ClassifyReconStatus classifies surface reconstruction into exactly three
// states by probing the recon wrapper's command line.
func ClassifyReconStatus(subjectsDir, subjectID string, t1w []string) domain.FreeSurferStatus {
	if subjectsDir == "" {
		return domain.FreeSurferNotRun
	}

	recon := ReconAll{
		SubjectsDir: subjectsDir,
		SubjectID:   "sub-" + subjectID,
		T1Files:     t1w,
		Flags:       []string{"-noskullstrip"},
	}
	if strings.HasPrefix(recon.Cmdline(), "echo") {
		return domain.FreeSurferPreExisting
	}
	return domain.FreeSurferRunByPipeline
}
