// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// JobState is the lifecycle state of a [SearchJob].
type JobState string

const (
	JobSubmitted JobState = "submitted"
	JobPolling   JobState = "polling"
	JobDone      JobState = "done"
	JobTimedOut  JobState = "timed_out"
	JobFailed    JobState = "failed"
)

// SearchJob is the transient state of one asynchronous index search. It is
// created on submission, polled until it reaches a terminal state and then
// discarded.
type SearchJob struct {
	Query string
	SID   string

	State         JobState
	Done          bool
	ResultCount   int
	DispatchState string
	Polls         int
}

// Terminal reports whether the job will not change state anymore.
func (j SearchJob) Terminal() bool {
	switch j.State {
	case JobDone, JobTimedOut, JobFailed:
		return true
	}
	return false
}

// JobStatus is the subset of the job status document the poller reads.
type JobStatus struct {
	Entry []struct {
		Content struct {
			IsDone        bool   `json:"isDone"`
			IsFailed      bool   `json:"isFailed"`
			DispatchState string `json:"dispatchState"`
			ResultCount   int    `json:"resultCount"`
		} `json:"content"`
	} `json:"entry"`
}
