package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/rileyhilliard/genui/internal/errors"
)

// Step is one entry of a delta script. Exactly one of Delta, Reset or
// Submit is meaningful; a plain JSON string in the script is a delta.
type Step struct {
	Delta  string
	Reset  bool
	Submit *Submit
}

// Submit fills and submits a form once the deltas before it have been
// ingested.
type Submit struct {
	// Form is the form's child-index path from the document root.
	Form   []int             `json:"form"`
	Button string            `json:"button"`
	Values map[string]string `json:"values"`
}

// Script is a parsed delta script.
//
//	{
//	  // comments and trailing commas are allowed
//	  "description": "scenario E",
//	  "steps": [
//	    "{\"id\":\"form\",\"children\":[",
//	    {"reset": true},
//	    {"submit": {"button": "submit", "values": {"q": "hello"}}},
//	  ],
//	}
//
// A bare array of steps is accepted too.
type Script struct {
	Description string `json:"description"`
	Steps       []Step `json:"steps"`
}

// UnmarshalJSON accepts a string delta or a reset/submit object.
func (s *Step) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		*s = Step{}
		return json.Unmarshal(data, &s.Delta)
	}

	var obj struct {
		Delta  *string `json:"delta"`
		Reset  bool    `json:"reset"`
		Submit *Submit `json:"submit"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	set := 0
	*s = Step{Reset: obj.Reset, Submit: obj.Submit}
	if obj.Delta != nil {
		s.Delta = *obj.Delta
		set++
	}
	if obj.Reset {
		set++
	}
	if obj.Submit != nil {
		if obj.Submit.Button == "" {
			return fmt.Errorf("submit step needs a button")
		}
		set++
	}
	if set != 1 {
		return fmt.Errorf("step must have exactly one of delta, reset or submit")
	}
	return nil
}

// ParseScript strips JSONC comments and trailing commas from data and
// decodes the script.
func ParseScript(data []byte) (*Script, error) {
	stripped := bytes.TrimSpace(jsonc.ToJSON(data))

	var script Script
	var err error
	if len(stripped) > 0 && stripped[0] == '[' {
		err = json.Unmarshal(stripped, &script.Steps)
	} else {
		err = json.Unmarshal(stripped, &script)
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStream,
			"Failed to parse delta script",
			"A script is a JSON array of steps, or an object with a \"steps\" array.")
	}
	return &script, nil
}

// ReadScript reads and parses a script file.
func ReadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStream,
			fmt.Sprintf("Failed to read script %s", path),
			"Check the path and permissions.")
	}
	return ParseScript(data)
}
