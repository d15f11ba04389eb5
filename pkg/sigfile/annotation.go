// SPDX-License-Identifier: MPL-2.0

package sigfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"paralaunch/pkg/paramfile"
)

// annotationMarker introduces a parameter declaration in a script header.
// Grammar, one declaration per line:
//
//	# @param <name> [scalar|list|map|struct] [required] [default=<value>]
//
// The header ends at the first line that is neither blank, a comment, nor
// the shebang. Declaration order is the positional calling convention.
const annotationMarker = "@param"

// annotationExtensions lists the script extensions the annotation provider
// accepts when no sidecar is present.
var annotationExtensions = map[string]struct{}{
	".sh":   {},
	".bash": {},
}

// AnnotationProvider discovers signatures from `# @param` annotation lines
// in a shell script's comment header.
type AnnotationProvider struct{}

// NewAnnotationProvider creates a header-annotation signature provider.
func NewAnnotationProvider() *AnnotationProvider {
	return &AnnotationProvider{}
}

// Name returns the provider name.
func (p *AnnotationProvider) Name() string {
	return "annotation"
}

// Supports reports whether the target has a recognized script extension.
func (p *AnnotationProvider) Supports(targetPath string) bool {
	_, ok := annotationExtensions[strings.ToLower(filepath.Ext(targetPath))]
	return ok
}

// Inspect scans the script header for @param annotations. A script with no
// annotations has a valid, empty signature.
func (p *AnnotationProvider) Inspect(targetPath string) (*Inspection, error) {
	f, err := os.Open(targetPath)
	if err != nil {
		return nil, &TargetNotFoundError{Path: targetPath, Cause: err}
	}
	defer func() { _ = f.Close() }() // Read-only handle; close error non-critical

	var params []Param
	defaults := make(DefaultValues)

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#!") {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			// End of the comment header; declarations below this point
			// belong to the script body, not the contract.
			break
		}

		rest := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if !strings.HasPrefix(rest, annotationMarker) {
			continue
		}
		rest = strings.TrimSpace(strings.TrimPrefix(rest, annotationMarker))

		param, def, hasDefault, parseErr := parseAnnotation(rest)
		if parseErr != nil {
			return nil, &TargetShapeError{
				Path:  targetPath,
				Cause: fmt.Errorf("line %d: %w", lineNum, parseErr),
			}
		}

		params = append(params, param)
		if hasDefault && !IsReservedName(param.Name) {
			defaults[param.Name] = def
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &TargetShapeError{Path: targetPath, Cause: err}
	}

	sig, err := NewSignature(targetPath, params)
	if err != nil {
		return nil, &TargetShapeError{Path: targetPath, Cause: err}
	}

	return &Inspection{Signature: sig, Defaults: defaults}, nil
}

// parseAnnotation parses the portion of an annotation line after "@param".
func parseAnnotation(decl string) (Param, paramfile.Value, bool, error) {
	if decl == "" {
		return Param{}, paramfile.Absent(), false, fmt.Errorf("@param declaration is empty")
	}

	// The default clause runs to end of line so values may contain spaces;
	// it must therefore come last in the declaration.
	var (
		def        paramfile.Value
		hasDefault bool
	)
	if head, raw, found := strings.Cut(decl, "default="); found {
		decl = strings.TrimSpace(head)
		def = paramfile.Scalar(unquoteDefault(strings.TrimSpace(raw)))
		hasDefault = true
	}
	if decl == "" {
		return Param{}, paramfile.Absent(), false, fmt.Errorf("@param declaration has no name")
	}

	tokens := strings.Fields(decl)
	param := Param{Name: tokens[0]}

	for _, tok := range tokens[1:] {
		switch {
		case tok == "required":
			param.Required = true
		default:
			tc := TypeCategory(tok)
			if isValid, errs := tc.IsValid(); !isValid {
				return Param{}, paramfile.Absent(), false, errs[0]
			}
			if param.Type != "" {
				return Param{}, paramfile.Absent(), false,
					fmt.Errorf("parameter %q declares more than one type", param.Name)
			}
			param.Type = tc
		}
	}

	return param, def, hasDefault, nil
}

// unquoteDefault strips a matching pair of single or double quotes so
// defaults may contain spaces escaped at the shell-comment level.
func unquoteDefault(raw string) string {
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}
