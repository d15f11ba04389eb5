// SPDX-License-Identifier: MPL-2.0

// Package diagnostic composes the failure record written beside a run's
// artifacts. Build is pure and total: it consumes whatever fragments the
// failure path managed to assemble, and missing fragments never fail it.
package diagnostic

import (
	"encoding/json"
	"time"

	"paralaunch/internal/bind"
	"paralaunch/pkg/sigfile"
)

type (
	// ParamInfo describes one declared parameter in the record.
	ParamInfo struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Required bool   `json:"required"`
	}

	// BoundArg pairs a parameter name with its resolved argv rendering.
	BoundArg struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}

	// Record is the diagnostic artifact content. Field order matches the
	// JSON layout on disk.
	Record struct {
		Timestamp         string      `json:"timestamp"`
		RunID             string      `json:"runId"`
		ScriptIdentity    string      `json:"scriptIdentity"`
		ScriptPath        string      `json:"scriptPath"`
		ParameterFilePath string      `json:"parameterFilePath"`
		ErrorMessage      string      `json:"errorMessage"`
		Parameters        []ParamInfo `json:"parameters"`
		ArgumentVector    []BoundArg  `json:"argumentVector"`
	}

	// Input carries the fragments available at failure time. Any field may
	// be zero: a parse failure has no signature yet, a discovery failure has
	// no vector, and so on.
	Input struct {
		RunID             string
		ScriptIdentity    string
		ScriptPath        string
		ParameterFilePath string
		Err               error
		Signature         *sigfile.Signature
		Vector            bind.Vector
	}
)

// Build composes a diagnostic record from whatever is available. Absent
// fragments become empty fields; Build itself cannot fail.
func Build(in Input) Record {
	rec := Record{
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		RunID:             in.RunID,
		ScriptIdentity:    in.ScriptIdentity,
		ScriptPath:        in.ScriptPath,
		ParameterFilePath: in.ParameterFilePath,
	}

	if in.Err != nil {
		rec.ErrorMessage = in.Err.Error()
	}

	if in.Signature != nil {
		params := in.Signature.Params()
		rec.Parameters = make([]ParamInfo, 0, len(params))
		for _, p := range params {
			rec.Parameters = append(rec.Parameters, ParamInfo{
				Name:     p.Name,
				Type:     string(p.GetType()),
				Required: p.Required,
			})
		}
	}

	if len(in.Vector) > 0 {
		rec.ArgumentVector = make([]BoundArg, 0, len(in.Vector))
		for _, arg := range in.Vector {
			rec.ArgumentVector = append(rec.ArgumentVector, BoundArg{
				Name:  arg.Param.Name,
				Value: arg.Value.EncodeArg(),
			})
		}
	}

	return rec
}

// MarshalIndent renders the record as the on-disk JSON document.
func (r Record) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
