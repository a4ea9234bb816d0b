package exceltable

import (
	"errors"

	"github.com/xuri/excelize/v2"
)

// ErrEmptySheet is returned for a sheet without any
// non-empty cell. Read and ReadLocalFile skip such sheets.
var ErrEmptySheet = errors.New("empty sheet")

// ErrSheetNotExist is returned for a sheet name
// that is not part of the workbook.
type ErrSheetNotExist = excelize.ErrSheetNotExist
