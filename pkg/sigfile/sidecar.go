// SPDX-License-Identifier: MPL-2.0

package sigfile

import (
	_ "embed"
	"os"

	"paralaunch/pkg/cueutil"
	"paralaunch/pkg/paramfile"

	"cuelang.org/go/cue"
)

//go:embed sigfile_schema.cue
var sigfileSchema string

// SidecarSuffix is appended to a target path to locate its signature sidecar.
const SidecarSuffix = ".sig.cue"

type (
	// SidecarProvider discovers signatures from a CUE sidecar file placed
	// next to the target (<script>.sig.cue).
	SidecarProvider struct{}

	sidecarDoc struct {
		Description string         `json:"description"`
		Params      []sidecarParam `json:"params"`
	}

	sidecarParam struct {
		Name        string       `json:"name"`
		Type        TypeCategory `json:"type"`
		Required    bool         `json:"required"`
		Description string       `json:"description"`
	}
)

// NewSidecarProvider creates a sidecar signature provider.
func NewSidecarProvider() *SidecarProvider {
	return &SidecarProvider{}
}

// Name returns the provider name.
func (p *SidecarProvider) Name() string {
	return "sidecar"
}

// SidecarPath returns the sidecar location for the given target.
func SidecarPath(targetPath string) string {
	return targetPath + SidecarSuffix
}

// Supports reports whether a sidecar file exists for the target.
func (p *SidecarProvider) Supports(targetPath string) bool {
	info, err := os.Stat(SidecarPath(targetPath))
	return err == nil && !info.IsDir()
}

// Inspect parses the sidecar through the shared schema flow and extracts the
// ordered signature plus declared defaults.
func (p *SidecarProvider) Inspect(targetPath string) (*Inspection, error) {
	sidecarPath := SidecarPath(targetPath)

	data, err := os.ReadFile(sidecarPath)
	if err != nil {
		return nil, &TargetShapeError{Path: targetPath, Cause: err}
	}

	result, err := cueutil.ParseAndDecode[sidecarDoc](
		sigfileSchema,
		data,
		"#Signature",
		cueutil.WithFilename(sidecarPath),
	)
	if err != nil {
		return nil, &TargetShapeError{Path: targetPath, Cause: err}
	}

	params := make([]Param, 0, len(result.Value.Params))
	for _, sp := range result.Value.Params {
		params = append(params, Param{
			Name:        sp.Name,
			Type:        sp.Type,
			Required:    sp.Required,
			Description: sp.Description,
		})
	}

	sig, err := NewSignature(targetPath, params)
	if err != nil {
		return nil, &TargetShapeError{Path: targetPath, Cause: err}
	}

	defaults, err := p.extractDefaults(result.Unified, sig)
	if err != nil {
		return nil, &TargetShapeError{Path: targetPath, Cause: err}
	}

	return &Inspection{Signature: sig, Defaults: defaults}, nil
}

// extractDefaults walks the unified CUE value rather than the decoded Go
// struct: a default may take any shape, so it has no stable Go field to
// decode into.
func (p *SidecarProvider) extractDefaults(unified cue.Value, sig Signature) (DefaultValues, error) {
	defaults := make(DefaultValues)

	paramsValue := unified.LookupPath(cue.ParsePath("params"))
	if paramsValue.Err() != nil {
		return defaults, nil
	}

	iter, err := paramsValue.List()
	if err != nil {
		return defaults, nil
	}

	for iter.Next() {
		elem := iter.Value()

		nameValue := elem.LookupPath(cue.ParsePath("name"))
		name, nameErr := nameValue.String()
		if nameErr != nil {
			continue
		}
		if !sig.Has(name) {
			// Reserved or otherwise excluded parameter; its default is
			// excluded with it.
			continue
		}

		defValue := elem.LookupPath(cue.ParsePath("default"))
		if !defValue.Exists() {
			continue
		}

		decoded, decodeErr := paramfile.FromCUE(defValue)
		if decodeErr != nil {
			return nil, decodeErr
		}
		defaults[name] = decoded
	}

	return defaults, nil
}
