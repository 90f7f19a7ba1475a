package report

import (
	"time"

	"launchpad/pkg/mulearn"
	"launchpad/pkg/render"
)

type summaryEntry struct {
	CandidateName string
	Status        string
	InterviewDate string
	InterviewTime string
}

type summaryCounts struct {
	Pending   int
	Interview int
	Hired     int
	Rejected  int
}

type summaryData struct {
	JobTitle    string
	GeneratedAt string
	Entries     []summaryEntry
	Counts      summaryCounts
}

// HireSummary renders a plain-text recap of one job's hire requests.
func HireSummary(jobID string, requests []mulearn.HireRequest, now func() time.Time) (string, error) {
	if now == nil {
		now = time.Now
	}

	data := summaryData{GeneratedAt: now().UTC().Format(time.RFC3339)}
	for _, req := range requests {
		if jobID != "" && req.Job.ID != jobID {
			continue
		}
		if data.JobTitle == "" {
			data.JobTitle = req.Job.Title
		}

		entry := summaryEntry{
			CandidateName: req.Student.FullName,
			Status:        req.Status,
		}
		if req.Interview != nil {
			entry.InterviewDate = req.Interview.Date
			entry.InterviewTime = req.Interview.Time
		}
		data.Entries = append(data.Entries, entry)

		switch req.Status {
		case mulearn.ApplicationInvited, mulearn.ApplicationApplied:
			data.Counts.Pending++
		case mulearn.ApplicationInterviewScheduled:
			data.Counts.Interview++
		case mulearn.ApplicationAccepted:
			data.Counts.Hired++
		case "rejected":
			data.Counts.Rejected++
		}
	}

	engine, err := render.New()
	if err != nil {
		return "", err
	}
	return engine.Render("hire_summary", data)
}
