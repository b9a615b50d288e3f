package apexapi

import (
	"encoding/json"
	"fmt"

	"apexscore/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// applicantSchema pins the shape the dashboard depends on. The upstream API
// sends more fields than this; only what the risk engine and views read is
// enforced here.
const applicantSchema = `{
	"type": "object",
	"required": ["id", "email", "apex_score", "risk_level", "device_fingerprint", "tfd", "bsi"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"email": {"type": "string", "minLength": 3},
		"apex_score": {"type": "number", "minimum": 0, "maximum": 100},
		"risk_level": {"type": "string", "enum": ["Low", "Medium", "High"]},
		"sim_registration": {"type": "string"},
		"device_fingerprint": {
			"type": "object",
			"required": ["is_rooted", "vpn_detected"],
			"properties": {
				"is_rooted": {"type": "boolean"},
				"vpn_detected": {"type": "boolean"}
			}
		},
		"bank_accounts": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"status": {"type": "string"}
				}
			}
		},
		"tfd": {
			"type": "object",
			"required": ["outstanding_debt", "loan_history"],
			"properties": {
				"outstanding_debt": {"type": "number"},
				"loan_history": {"type": "array"}
			}
		},
		"bsi": {
			"type": "object",
			"required": ["location_consistency", "device_stability", "sim_changes"],
			"properties": {
				"location_consistency": {"type": "number"},
				"device_stability": {"type": "number"},
				"sim_changes": {"type": "number"},
				"ip_region_match": {"type": "number"},
				"travel_frequency": {"type": "number"}
			}
		}
	}
}`

var compiledApplicantSchema = gojsonschema.NewStringLoader(applicantSchema)

// decodeApplicant validates the raw payload against the applicant schema and
// unmarshals it. Validation failures surface as upstream errors: the record
// is broken at the source, not by the caller.
func decodeApplicant(body []byte) (*models.Applicant, error) {
	result, err := gojsonschema.Validate(compiledApplicantSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed applicant response: %v", ErrUpstream, err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%w: applicant payload failed validation: %s", ErrUpstream, result.Errors()[0])
	}

	var applicant models.Applicant
	if err := json.Unmarshal(body, &applicant); err != nil {
		return nil, fmt.Errorf("%w: decoding applicant: %v", ErrUpstream, err)
	}
	return &applicant, nil
}
