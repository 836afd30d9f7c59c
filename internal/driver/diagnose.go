package driver

import (
	"tileman/internal/deser"
	"tileman/internal/diag"
)

// codeFor maps a deserialization failure onto its diagnostic code.
func codeFor(kind deser.Kind) diag.Code {
	switch kind {
	case deser.RegexMatchFailed:
		return diag.DesRegexMatchFailed
	case deser.ContentsNotParsed:
		return diag.DesContentsNotParsed
	case deser.DataConvertFailed:
		return diag.DesDataConvertFailed
	case deser.TypeMismatch:
		return diag.DesTypeMismatch
	case deser.InvalidValue:
		return diag.DesInvalidValue
	case deser.NoCategory:
		return diag.DesNoCategory
	case deser.MissingValue:
		return diag.DesMissingValue
	case deser.Unimplemented:
		return diag.DesUnimplemented
	case deser.IOError:
		return diag.IOLoadFileError
	case deser.MissingFile:
		return diag.IOMissingFile
	}
	return diag.UnknownCode
}

// ReportErroredLines converts one document's error log into error
// diagnostics located at path.
func ReportErroredLines(r diag.Reporter, path string, lines []deser.ErroredLine) {
	for _, el := range lines {
		code, msg := diag.UnknownCode, "unknown error"
		if el.Err != nil {
			code, msg = codeFor(el.Err.Kind), el.Err.Error()
		}
		b := diag.ReportError(r, code, diag.Location{Path: path, Line: el.LineNo}, msg)
		if el.LineNo > 0 {
			b.WithText(el.Line)
		}
		b.Emit()
	}
}

// Diagnostics builds the sorted diagnostic bag of a load result.
func (r *Result) Diagnostics(maxDiagnostics int) *diag.Bag {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}

	ReportErroredLines(reporter, r.Target.InitPath, r.Init.ErroredLines)
	for i := range r.Subfolders {
		sc := &r.Subfolders[i]
		ReportErroredLines(reporter, sc.InitPath, sc.ErroredLines)
		if !sc.Failed && len(sc.Category.Tiles) == 0 {
			diag.ReportWarning(reporter, diag.SubEmptyCategory, diag.Location{Path: sc.Path},
				"subfolder "+sc.Name+" contributes no tiles").Emit()
		}
	}
	bag.Sort()
	return bag
}

// ErroredLineCount counts errored lines over the root and every subfolder.
func (r *Result) ErroredLineCount() int {
	n := len(r.Init.ErroredLines)
	for i := range r.Subfolders {
		n += len(r.Subfolders[i].ErroredLines)
	}
	return n
}
