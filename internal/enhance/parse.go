package enhance

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/jonathan/resume-wizard/internal/llm"
	"github.com/jonathan/resume-wizard/internal/schemas"
	"github.com/jonathan/resume-wizard/internal/types"
)

// ParseError indicates the response did not contain a usable JSON object.
// It is a soft failure: callers fall back to the unenhanced snapshot.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "failed to parse enhancement response: " + e.Reason
}

// experiencePayload tolerates the enhancement service's historical field
// names (jobTitle/description) alongside the canonical ones.
type experiencePayload struct {
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	JobTitle         string   `json:"jobTitle"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Responsibilities string   `json:"responsibilities"`
	Description      string   `json:"description"`
	Skills           []string `json:"skills"`
	Achievements     []string `json:"achievements"`
}

func (p *experiencePayload) canonical() types.WorkExperienceItem {
	item := types.WorkExperienceItem{
		Company:          p.Company,
		Position:         p.Position,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		Responsibilities: p.Responsibilities,
		Skills:           p.Skills,
		Achievements:     p.Achievements,
	}
	if item.Position == "" {
		item.Position = p.JobTitle
	}
	if item.Responsibilities == "" {
		item.Responsibilities = p.Description
	}
	return item
}

// ParseResponse strips code fences from a raw enhancement response, decodes
// the contained JSON object, and schema-validates each recognized top-level
// field. Unrecognized or mistyped fields are dropped rather than trusted. A
// response with no usable object, or none of the recognized fields, is a
// ParseError.
func ParseResponse(raw string) (*types.EnhancedResume, error) {
	cleaned := llm.CleanJSONBlock(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	enh := &types.EnhancedResume{}
	for name, fragment := range fields {
		if err := schemas.ValidateField(name, fragment); err != nil {
			log.Printf("[ENHANCE] dropping response field %q: %v", name, err)
			continue
		}
		if err := decodeField(enh, name, fragment); err != nil {
			log.Printf("[ENHANCE] dropping undecodable field %q: %v", name, err)
		}
	}

	if enh.Empty() {
		return nil, &ParseError{Reason: "no recognized fields in response"}
	}
	return enh, nil
}

// decodeField fills one validated fragment into the partial update.
func decodeField(enh *types.EnhancedResume, name string, fragment json.RawMessage) error {
	switch name {
	case "personalInfo":
		return json.Unmarshal(fragment, &enh.PersonalInfo)
	case "jobTitle":
		return json.Unmarshal(fragment, &enh.JobTitle)
	case "careerSummary":
		return json.Unmarshal(fragment, &enh.CareerSummary)
	case "skills":
		return json.Unmarshal(fragment, &enh.Skills)
	case "workExperience":
		var payloads []experiencePayload
		if err := json.Unmarshal(fragment, &payloads); err != nil {
			return err
		}
		enh.WorkExperience = make([]types.WorkExperienceItem, len(payloads))
		for i := range payloads {
			enh.WorkExperience[i] = payloads[i].canonical()
		}
		return nil
	case "education":
		return json.Unmarshal(fragment, &enh.Education)
	case "certifications":
		return json.Unmarshal(fragment, &enh.Certifications)
	default:
		return fmt.Errorf("no decoder for field %q", name)
	}
}
