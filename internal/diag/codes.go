package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Строки документа: по одному коду на вид ошибки десериализации
	DesInfo              Code = 1000
	DesRegexMatchFailed  Code = 1001
	DesContentsNotParsed Code = 1002
	DesDataConvertFailed Code = 1003
	DesTypeMismatch      Code = 1004
	DesInvalidValue      Code = 1005
	DesNoCategory        Code = 1006
	DesMissingValue      Code = 1007
	DesUnimplemented     Code = 1008

	// Подпапки
	SubInfo          Code = 2000
	SubNoInit        Code = 2001
	SubNoColor       Code = 2002
	SubEmptyCategory Code = 2003

	IOLoadFileError Code = 4001
	IOMissingFile   Code = 4002
	IOCacheError    Code = 4003

	ProjInfo            Code = 5000
	ProjBadManifest     Code = 5001
	ProjMissingRootInit Code = 5002

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:          "Unknown error",
		DesInfo:              "Document information",
		DesRegexMatchFailed:  "Line does not match the expected shape",
		DesContentsNotParsed: "Line contents could not be parsed",
		DesDataConvertFailed: "Value conversion failed",
		DesTypeMismatch:      "Property has the wrong value type",
		DesInvalidValue:      "Property value is not allowed",
		DesNoCategory:        "Tile has no category",
		DesMissingValue:      "Required value is missing",
		DesUnimplemented:     "Feature not implemented",
		SubInfo:              "Subfolder information",
		SubNoInit:            "Subfolder has no init document",
		SubNoColor:           "Subfolder has no colour document",
		SubEmptyCategory:     "Subfolder category has no tiles",
		IOLoadFileError:      "I/O load file error",
		IOMissingFile:        "Missing file",
		IOCacheError:         "Disk cache error",
		ProjInfo:             "Project information",
		ProjBadManifest:      "Invalid tileman.toml",
		ProjMissingRootInit:  "Root init document not found",
		ObsInfo:              "Observability information",
		ObsTimings:           "Load timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DES%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SUB%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// MarshalText renders the stable ID, e.g. "DES1004".
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.ID()), nil
}
