package hardware

import "fmt"

// ErrOpenFile represents an error when opening a hardware file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error { return e.Err }

// ErrFileExists is returned when a dump would clobber an existing file
// and overwriting was not requested.
type ErrFileExists struct {
	Filename string
}

func (e *ErrFileExists) Error() string {
	return fmt.Sprintf("file %q already exists, not overwriting", e.Filename)
}

// ErrDecode represents an error while decoding a hardware file.
type ErrDecode struct {
	Filename string
	Err      error
}

func (e *ErrDecode) Error() string {
	return fmt.Sprintf("error decoding hardware file %q: %v", e.Filename, e.Err)
}

func (e *ErrDecode) Unwrap() error { return e.Err }

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}
