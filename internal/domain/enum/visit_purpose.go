package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// VisitPurpose represents why a store was visited
type VisitPurpose string

const (
	VisitPurposeRegular     VisitPurpose = "REGULAR"
	VisitPurposeNewBusiness VisitPurpose = "NEW_BUSINESS"
	VisitPurposeComplaint   VisitPurpose = "COMPLAINT"
	VisitPurposeProposal    VisitPurpose = "PROPOSAL"
	VisitPurposeOther       VisitPurpose = "OTHER"
)

func (p VisitPurpose) String() string {
	return string(p)
}

func (p VisitPurpose) IsValid() bool {
	switch p {
	case VisitPurposeRegular, VisitPurposeNewBusiness, VisitPurposeComplaint,
		VisitPurposeProposal, VisitPurposeOther:
		return true
	}
	return false
}

func (p VisitPurpose) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

func (p *VisitPurpose) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*p = VisitPurpose(str)
	return nil
}

func (p VisitPurpose) Value() (driver.Value, error) {
	return string(p), nil
}

func (p *VisitPurpose) Scan(value interface{}) error {
	if value == nil {
		*p = VisitPurposeRegular
		return nil
	}
	switch v := value.(type) {
	case string:
		*p = VisitPurpose(v)
	case []byte:
		*p = VisitPurpose(string(v))
	}
	return nil
}
