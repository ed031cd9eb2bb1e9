package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"sigs.k8s.io/yaml"

	"github.com/refig/refig/internal/record"
)

// DiffRecords compares two metadata records with dyff. It returns the
// rendered report and whether any difference was found. An identical pair
// yields an empty report.
func DiffRecords(fromName string, from record.Record, toName string, to record.Record, useColor bool) (string, bool, error) {
	fromInput, err := recordInput(fromName, from)
	if err != nil {
		return "", false, fmt.Errorf("parsing %s: %w", fromName, err)
	}
	toInput, err := recordInput(toName, to)
	if err != nil {
		return "", false, fmt.Errorf("parsing %s: %w", toName, err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return "", false, fmt.Errorf("comparing metadata: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", false, nil
	}

	out, err := renderDyffReport(report, useColor)
	if err != nil {
		return "", true, err
	}
	return out, true, nil
}

// recordInput serializes rec to YAML through its JSON form so values keep
// their JSON types, and loads it as a dyff input.
func recordInput(name string, rec record.Record) (ytbx.InputFile, error) {
	data, err := yaml.Marshal(map[string]any(rec))
	if err != nil {
		return ytbx.InputFile{}, err
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(&buf); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	// Trailing whitespace on report lines is noise.
	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
