package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexString accepts a JSON string, number or boolean. Models regularly answer
// `"Score": 7` where a string was asked for.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexString(strconv.FormatBool(b))
		return nil
	}
	return fmt.Errorf("cannot use %s as string", data)
}

// AssessmentItem is the verdict on a single criterion
type AssessmentItem struct {
	Criterium   string     `json:"Criterium" validate:"required"`
	Score       FlexString `json:"Score" validate:"required"`
	Toelichting string     `json:"Toelichting" validate:"required"`
}

// Assessment maps criterion numbers ("1", "2", …) to their verdicts
type Assessment map[string]AssessmentItem

// ApplicationSummary describes a subsidy application. Unknown values are
// "Onbekend", never empty.
type ApplicationSummary struct {
	Aanvrager      string     `json:"Aanvrager" validate:"required"`
	DatumAanvraag  string     `json:"Datum_aanvraag" validate:"required"`
	DatumEvenement string     `json:"Datum_evenement" validate:"required"`
	Bedrag         FlexString `json:"Bedrag" validate:"required"`
	Samenvatting   string     `json:"Samenvatting" validate:"required"`
}

// AssessmentReport is the final verdict combining assessment and summary
type AssessmentReport struct {
	Samenvatting string     `json:"Samenvatting" validate:"required"`
	Eindoordeel  string     `json:"Eindoordeel" validate:"required"`
	Bedrag       FlexString `json:"Bedrag" validate:"required"`
}

// CompleteAssessment bundles the three subsidy assessment steps
type CompleteAssessment struct {
	Assessment Assessment         `json:"assessment"`
	Summary    ApplicationSummary `json:"summary"`
	Report     AssessmentReport   `json:"report"`
}
