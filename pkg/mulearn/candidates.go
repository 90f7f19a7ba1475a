package mulearn

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// ListEligibleCandidates fetches the candidates eligible for the given job.
// When the upstream answers with its "no matching tasks" sentinel instead of
// an empty list, the listing is returned empty with Sentinel carrying the
// message rather than as an error.
func (c *Client) ListEligibleCandidates(ctx context.Context, token, jobID string) (EligibleCandidates, error) {
	if jobID == "" {
		return EligibleCandidates{}, errors.New("mulearn: job id is required")
	}

	var out EligibleCandidates
	err := c.get(ctx, "/launchpad/list-launchpad-students/"+jobID+"/", token, nil, &out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			if msg := firstMessage(apiErr); isNoMatchSentinel(msg) {
				return EligibleCandidates{Sentinel: msg}, nil
			}
		}
		return EligibleCandidates{}, err
	}
	return out, nil
}

func firstMessage(e *APIError) string {
	if len(e.Messages) == 0 {
		return ""
	}
	return e.Messages[0]
}

func isNoMatchSentinel(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "no matching task")
}

// SendInvitations invites the given students to a job. The upstream confirms
// with no payload beyond the envelope.
func (c *Client) SendInvitations(ctx context.Context, token, jobID string, studentIDs []string) error {
	if jobID == "" {
		return errors.New("mulearn: job id is required")
	}
	if len(studentIDs) == 0 {
		return errors.New("mulearn: at least one student id is required")
	}
	return c.post(ctx, "/launchpad/send-job-invitations/", token, map[string]any{
		"job_id":      jobID,
		"student_ids": studentIDs,
	}, nil)
}

// ScheduleInterview records interview details against an application.
func (c *Client) ScheduleInterview(ctx context.Context, token string, details InterviewDetails) error {
	if details.ApplicationID == "" {
		return errors.New("mulearn: application id is required")
	}
	return c.post(ctx, "/launchpad/schedule-interview/", token, details, nil)
}

// Decision is the final call on an application.
type Decision string

const (
	DecisionAccepted Decision = "accepted"
	DecisionRejected Decision = "rejected"
)

// DecideApplication accepts or rejects a candidate's application.
func (c *Client) DecideApplication(ctx context.Context, token, applicationID string, decision Decision) error {
	if applicationID == "" {
		return errors.New("mulearn: application id is required")
	}
	if decision != DecisionAccepted && decision != DecisionRejected {
		return errors.New("mulearn: decision must be accepted or rejected")
	}
	return c.post(ctx, "/launchpad/hire-candidate/", token, map[string]string{
		"application_id": applicationID,
		"decision":       string(decision),
	}, nil)
}

// ListHireRequests returns the company's hire requests, optionally filtered
// by status.
func (c *Client) ListHireRequests(ctx context.Context, token, statusFilter string) ([]HireRequest, error) {
	var out struct {
		Data struct {
			HireRequests []HireRequest `json:"hire_requests"`
		} `json:"data"`
	}

	var query url.Values
	if statusFilter != "" {
		query = url.Values{"status": {statusFilter}}
	}
	if err := c.get(ctx, "/launchpad/hire-requests/", token, query, &out); err != nil {
		return nil, err
	}
	return out.Data.HireRequests, nil
}
