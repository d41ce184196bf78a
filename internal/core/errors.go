package core

import "fmt"

// MissingFileError reports that an input workbook is absent at the
// expected path. The message is user-facing and names the path.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("No se encontró el archivo: %s", e.Path)
}

// MissingColumnError reports that a required logical column could not be
// resolved in a sheet. Field is the stable logical name ("fecha",
// "precio", "contratista", "mes", "costo real", "costo plan"); Message
// is the user-facing text naming the expected column.
type MissingColumnError struct {
	Field   string
	Message string
}

func (e *MissingColumnError) Error() string {
	return e.Message
}
