package dice

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julian/jobbider/internal/adapter"
	"github.com/julian/jobbider/internal/types"
)

// priorUploadState is what the replace/upload probe found on the apply form.
type priorUploadState int

const (
	// priorCleared means a previously attached file was found and removed.
	priorCleared priorUploadState = iota
	// priorNone means the form offers a fresh upload control.
	priorNone
	// priorAmbiguous means neither control is present. Dice renders the apply
	// form this way for listings the account already applied to, but also
	// during partial page loads, so a heuristic decides what it means.
	priorAmbiguous
)

// apply takes one scored job through the quick-apply flow. Any missing
// required control abandons the attempt; the caller records the outcome and
// moves to the next job.
func (a *Adapter) apply(b adapter.Browser, job *types.JobRecord) adapter.ApplyResult {
	resume, err := filepath.Abs(a.cfg.ResumePath)
	if err == nil {
		_, err = os.Stat(resume)
	}
	if a.cfg.ResumePath == "" || err != nil {
		return abandoned(fmt.Sprintf("resume file %q not readable", a.cfg.ResumePath))
	}

	if err := b.Navigate(job.URL); err != nil {
		return abandoned(fmt.Sprintf("opening listing: %v", err))
	}
	b.Snapshot("job_detail_page")

	applyCtl, ok := b.Resolve(applyChain, 5*time.Second, false)
	if !ok {
		b.Snapshot("apply_error")
		return abandoned("no apply control on listing")
	}
	if !b.ClickWhenReady(applyCtl, 5*time.Second) {
		b.Snapshot("apply_error")
		return abandoned("apply control not clickable")
	}
	b.Snapshot("apply_form_opened")

	if a.resolvePriorUpload(b) == priorAmbiguous {
		if a.cfg.AssumeAppliedWhenNoUpload {
			return adapter.ApplyResult{Status: adapter.AlreadyApplied, Reason: "apply form offers no upload control"}
		}
		return abandoned("apply form offers no upload control")
	}

	fileInput, ok := b.Resolve(fileInputChain, 5*time.Second, false)
	if !ok {
		b.Snapshot("upload_error")
		return abandoned("no file input on apply form")
	}
	if err := b.Upload(fileInput, resume); err != nil {
		b.Snapshot("upload_error")
		return abandoned(fmt.Sprintf("attaching resume: %v", err))
	}
	a.debugf("resume attached: %s", resume)

	uploadCtl, ok := b.Resolve(uploadConfirmChain, 5*time.Second, false)
	if !ok {
		b.Snapshot("upload_error")
		return abandoned("no upload confirmation control")
	}
	if !b.ClickWhenReady(uploadCtl, 5*time.Second) {
		b.Snapshot("upload_error")
		return abandoned("upload confirmation not clickable")
	}
	b.Snapshot("resume_uploaded")

	// Single-step forms skip straight to submit.
	if next, ok := b.Resolve(nextChain, 5*time.Second, true); ok {
		if b.ClickWhenReady(next, 5*time.Second) {
			b.Snapshot("after_next")
		}
	}

	submit, ok := b.Resolve(submitChain, 5*time.Second, false)
	if !ok {
		b.Snapshot("no_submit_button")
		return abandoned("no submit control on apply form")
	}
	if !b.ClickWhenReady(submit, 10*time.Second) {
		b.Snapshot("submit_error")
		return abandoned("submit control not clickable")
	}
	b.Snapshot("application_submitted")

	// The flow sometimes opens the confirmation in a second tab.
	b.CloseSecondaryPages()

	return adapter.ApplyResult{Status: adapter.Applied}
}

// resolvePriorUpload probes the freshly opened apply form. A replace control
// means a file from an earlier attempt is attached; clicking it clears the
// slot so the fresh resume can go in.
func (a *Adapter) resolvePriorUpload(b adapter.Browser) priorUploadState {
	if replaceCtl, ok := b.Resolve(replaceChain, 2*time.Second, true); ok {
		if b.ClickWhenReady(replaceCtl, 5*time.Second) {
			a.debugf("cleared previously attached file")
			return priorCleared
		}
	}
	if b.WaitFor(uploadProbe, 2*time.Second, true) {
		return priorNone
	}
	return priorAmbiguous
}

func abandoned(reason string) adapter.ApplyResult {
	return adapter.ApplyResult{Status: adapter.Abandoned, Reason: reason}
}
