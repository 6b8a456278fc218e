package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ReportStatus represents the approval state of a daily report
type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "DRAFT"
	ReportStatusSubmitted ReportStatus = "SUBMITTED"
	ReportStatusApproved  ReportStatus = "APPROVED"
	ReportStatusRejected  ReportStatus = "REJECTED"
)

func (s ReportStatus) String() string {
	return string(s)
}

func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusDraft, ReportStatusSubmitted, ReportStatusApproved, ReportStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the workflow allows moving from s to next.
// Drafts and rejected reports may be (re)submitted; only submitted reports are reviewed.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	switch next {
	case ReportStatusSubmitted:
		return s == ReportStatusDraft || s == ReportStatusRejected
	case ReportStatusApproved, ReportStatusRejected:
		return s == ReportStatusSubmitted
	}
	return false
}

func (s ReportStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *ReportStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = ReportStatus(str)
	return nil
}

func (s ReportStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *ReportStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ReportStatusDraft
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = ReportStatus(v)
	case []byte:
		*s = ReportStatus(string(v))
	}
	return nil
}
