package joy

import "os"

// FileHandle is the FILE variant: a borrowed OS file handle, never closed
// by value drop. Grounded on port.go's Port
// interface, generalized from a channel-backed port to an OS file for
// synchronous file primitives (see DESIGN.md's dropped-constructs
// section: the channel Port itself is not carried forward).
type FileHandle struct {
	f      *os.File
	name   string
	closed bool
	eof    bool
	err    bool
}

func NewFileHandle(f *os.File, name string) *FileHandle {
	return &FileHandle{f: f, name: name}
}

func (fh *FileHandle) Kind() Kind        { return KindFile }
func (fh *FileHandle) Copy() Value       { return fh }
func (fh *FileHandle) DeepCopy() Value   { return fh }
func (fh *FileHandle) Equal(v Value) bool {
	o, ok := v.(*FileHandle)
	return ok && fh == o
}
func (fh *FileHandle) String() string { return "<file:" + fh.name + ">" }

func (fh *FileHandle) Close() error {
	if fh.closed || fh.f == nil {
		return nil
	}
	fh.closed = true
	return fh.f.Close()
}

// File, Name, Closed, Eof, Err and the Set* variants are exported so
// github.com/shakfu/joy/primitives can drive file I/O (fread/fwrite/
// fgetch/feof/ferror/...) without this package knowing any primitive
// names.

func (fh *FileHandle) File() *os.File { return fh.f }
func (fh *FileHandle) Name() string   { return fh.name }
func (fh *FileHandle) Closed() bool   { return fh.closed }
func (fh *FileHandle) Eof() bool      { return fh.eof }
func (fh *FileHandle) Err() bool      { return fh.err }
func (fh *FileHandle) SetEof(v bool)  { fh.eof = v }
func (fh *FileHandle) SetErr(v bool)  { fh.err = v }
