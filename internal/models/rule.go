package models

import "time"

// Rule maps a vendor pattern to a category. Rules are evaluated by priority
// (higher first); ties are broken by RuleID ascending so categorization stays
// deterministic for any rule file ordering.
type Rule struct {
	RuleID         string `csv:"RuleID"`
	Priority       int    `csv:"Priority"`
	VendorPattern  string `csv:"VendorPattern"`
	Category       string `csv:"Category"`
	Explanation    string `csv:"Explanation"`
	OverrideRuleID string `csv:"OverrideRuleID"`
	IsCustom       YesNo  `csv:"IsCustom"`
	CreatedDate    Date   `csv:"CreatedDate"`
}

// YesNo serializes a boolean as the literal "Yes"/"No" used by the rule and
// category store files.
type YesNo bool

// MarshalCSV implements the gocsv field marshaller.
func (y YesNo) MarshalCSV() (string, error) {
	if y {
		return "Yes", nil
	}
	return "No", nil
}

// UnmarshalCSV implements the gocsv field unmarshaller. Anything other than
// "Yes" (case-insensitive) is treated as No, matching how the files have been
// hand-edited in the past.
func (y *YesNo) UnmarshalCSV(s string) error {
	switch s {
	case "Yes", "yes", "YES", "Y", "y", "true", "True":
		*y = true
	default:
		*y = false
	}
	return nil
}

// Date is a calendar date stored as YYYY-MM-DD in the CSV files.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate truncates t to a calendar date.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// MarshalCSV implements the gocsv field marshaller.
func (d Date) MarshalCSV() (string, error) {
	if d.IsZero() {
		return "", nil
	}
	return d.Format(dateLayout), nil
}

// UnmarshalCSV implements the gocsv field unmarshaller. An empty or
// unparseable value yields the zero date rather than failing the whole row.
func (d *Date) UnmarshalCSV(s string) error {
	if s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		*d = Date{}
		return nil
	}
	*d = Date{t}
	return nil
}
