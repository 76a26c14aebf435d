package primitives

import (
	"io"
	"os"

	"github.com/shakfu/joy"
)

// FileCommands implements the FILE-stream primitives,
// grounded on commands/io.go's Puts/Gets shape and the Python source's
// fopen/fclose/fread/fwrite family (evaluator.py), generalized to Joy's
// borrowed FileHandle (DESIGN.md, "Dropped teacher constructs": gelo's
// channel Port is not carried forward). fopen pushes a closed/nil
// FileHandle on failure rather than raising, matching the Python
// source's own sentinel-on-error convention.
var FileCommands = map[string]joy.Primitive{
	"stdin":  func(ctx *joy.Context) error { ctx.Push(stdFile(ctx.Stdin, "stdin")); return nil },
	"stdout": func(ctx *joy.Context) error { ctx.Push(stdFile(ctx.Stdout, "stdout")); return nil },
	"stderr": func(ctx *joy.Context) error { ctx.Push(stdFile(ctx.Stderr, "stderr")); return nil },

	"fopen": func(ctx *joy.Context) error { // P M -> S
		if err := ctx.Need("fopen", 2); err != nil {
			return err
		}
		mode, err := ctx.PopString("fopen")
		if err != nil {
			return err
		}
		path, err := ctx.PopString("fopen")
		if err != nil {
			return err
		}
		f, oerr := openMode(string(path.Bytes()), string(mode.Bytes()))
		if oerr != nil {
			ctx.Push(joy.NewFileHandle(nil, string(path.Bytes())))
			return nil
		}
		ctx.Push(joy.NewFileHandle(f, string(path.Bytes())))
		return nil
	},

	"fclose": func(ctx *joy.Context) error { // S ->
		if err := ctx.Need("fclose", 1); err != nil {
			return err
		}
		f, err := ctx.PopFile("fclose")
		if err != nil {
			return err
		}
		if f.Name() == "stdin" || f.Name() == "stdout" || f.Name() == "stderr" {
			return nil
		}
		return f.Close()
	},

	"fread": func(ctx *joy.Context) error { // S I -> S L
		if err := ctx.Need("fread", 2); err != nil {
			return err
		}
		n, err := ctx.PopInt("fread")
		if err != nil {
			return err
		}
		f, err := ctx.PopFile("fread")
		if err != nil {
			return err
		}
		buf := make([]byte, n)
		read, rerr := io.ReadFull(f.File(), buf)
		if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
			f.SetEof(true)
		} else if rerr != nil {
			f.SetErr(true)
		}
		elems := make([]joy.Value, read)
		for i := 0; i < read; i++ {
			elems[i] = joy.Int64(buf[i])
		}
		ctx.Push(f)
		ctx.Push(joy.NewList(elems...))
		return nil
	},

	"fwrite": func(ctx *joy.Context) error { // S L -> S
		if err := ctx.Need("fwrite", 2); err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("fwrite")
		if err != nil {
			return err
		}
		f, err := ctx.PopFile("fwrite")
		if err != nil {
			return err
		}
		elems, _ := aggregateElements(agg)
		data := make([]byte, 0, len(elems))
		for _, e := range elems {
			b, err := charByte(e, "fwrite")
			if err != nil {
				return err
			}
			data = append(data, b)
		}
		if _, werr := f.File().Write(data); werr != nil {
			f.SetErr(true)
		}
		ctx.Push(f)
		return nil
	},

	"fflush": func(ctx *joy.Context) error { // S -> S
		if err := ctx.Need("fflush", 1); err != nil {
			return err
		}
		f, err := ctx.PopFile("fflush")
		if err != nil {
			return err
		}
		ctx.Push(f)
		return f.File().Sync()
	},

	"feof": func(ctx *joy.Context) error { // S -> S B
		if err := ctx.Need("feof", 1); err != nil {
			return err
		}
		f, err := ctx.PopFile("feof")
		if err != nil {
			return err
		}
		ctx.Push(f)
		ctx.Push(joy.Bool(f.Eof()))
		return nil
	},

	"ferror": func(ctx *joy.Context) error { // S -> S B
		if err := ctx.Need("ferror", 1); err != nil {
			return err
		}
		f, err := ctx.PopFile("ferror")
		if err != nil {
			return err
		}
		ctx.Push(f)
		ctx.Push(joy.Bool(f.Err()))
		return nil
	},

	"ftell": func(ctx *joy.Context) error { // S -> S I
		if err := ctx.Need("ftell", 1); err != nil {
			return err
		}
		f, err := ctx.PopFile("ftell")
		if err != nil {
			return err
		}
		ctx.Push(f)
		pos, serr := f.File().Seek(0, io.SeekCurrent)
		if serr != nil {
			ctx.Push(joy.Int64(0))
			return nil
		}
		ctx.Push(joy.Int64(pos))
		return nil
	},

	"fseek": func(ctx *joy.Context) error { // S I W -> S
		if err := ctx.Need("fseek", 3); err != nil {
			return err
		}
		whence, err := ctx.PopInt("fseek")
		if err != nil {
			return err
		}
		pos, err := ctx.PopInt("fseek")
		if err != nil {
			return err
		}
		f, err := ctx.PopFile("fseek")
		if err != nil {
			return err
		}
		ctx.Push(f)
		_, serr := f.File().Seek(int64(pos), int(whence))
		if serr != nil {
			f.SetErr(true)
		}
		return nil
	},

	"fputch": func(ctx *joy.Context) error { // S C -> S
		if err := ctx.Need("fputch", 2); err != nil {
			return err
		}
		ch := ctx.Pop()
		f, err := ctx.PopFile("fputch")
		if err != nil {
			return err
		}
		b, cerr := charByte(ch, "fputch")
		if cerr != nil {
			return cerr
		}
		ctx.Push(f)
		if _, werr := f.File().Write([]byte{b}); werr != nil {
			f.SetErr(true)
		}
		return nil
	},

	"fgetch": func(ctx *joy.Context) error { // S -> S C
		if err := ctx.Need("fgetch", 1); err != nil {
			return err
		}
		f, err := ctx.PopFile("fgetch")
		if err != nil {
			return err
		}
		ctx.Push(f)
		buf := make([]byte, 1)
		n, rerr := f.File().Read(buf)
		if n == 0 || rerr != nil {
			if rerr == io.EOF {
				f.SetEof(true)
			} else if rerr != nil {
				f.SetErr(true)
			}
			ctx.Push(joy.Int64(-1))
			return nil
		}
		ctx.Push(joy.Char(buf[0]))
		return nil
	},

	"fputchars": func(ctx *joy.Context) error { // S A -> S
		if err := ctx.Need("fputchars", 2); err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("fputchars")
		if err != nil {
			return err
		}
		f, err := ctx.PopFile("fputchars")
		if err != nil {
			return err
		}
		elems, _ := aggregateElements(agg)
		data := make([]byte, 0, len(elems))
		for _, e := range elems {
			b, err := charByte(e, "fputchars")
			if err != nil {
				return err
			}
			data = append(data, b)
		}
		ctx.Push(f)
		if _, werr := f.File().Write(data); werr != nil {
			f.SetErr(true)
		}
		return nil
	},

	"fputstring": func(ctx *joy.Context) error { // S Str -> S
		if err := ctx.Need("fputstring", 2); err != nil {
			return err
		}
		s, err := ctx.PopString("fputstring")
		if err != nil {
			return err
		}
		f, err := ctx.PopFile("fputstring")
		if err != nil {
			return err
		}
		ctx.Push(f)
		if _, werr := f.File().Write(s.Bytes()); werr != nil {
			f.SetErr(true)
		}
		return nil
	},

	"fput": func(ctx *joy.Context) error { // S X -> S
		if err := ctx.Need("fput", 2); err != nil {
			return err
		}
		v := ctx.Pop()
		f, err := ctx.PopFile("fput")
		if err != nil {
			return err
		}
		ctx.Push(f)
		if _, werr := f.File().Write([]byte(v.String())); werr != nil {
			f.SetErr(true)
		}
		return nil
	},

	"fgets": func(ctx *joy.Context) error { // S -> S Str
		if err := ctx.Need("fgets", 1); err != nil {
			return err
		}
		f, err := ctx.PopFile("fgets")
		if err != nil {
			return err
		}
		ctx.Push(f)
		line, rerr := readLine(f.File())
		if rerr != nil {
			f.SetEof(true)
			ctx.Push(joy.NewStrBytes(nil))
			return nil
		}
		ctx.Push(joy.NewStrBytes(line))
		return nil
	},

	"fremove": func(ctx *joy.Context) error { // Str -> B
		if err := ctx.Need("fremove", 1); err != nil {
			return err
		}
		path, err := ctx.PopString("fremove")
		if err != nil {
			return err
		}
		ctx.Push(joy.Bool(os.Remove(string(path.Bytes())) == nil))
		return nil
	},

	"frename": func(ctx *joy.Context) error { // Str Str -> B
		if err := ctx.Need("frename", 2); err != nil {
			return err
		}
		newName, err := ctx.PopString("frename")
		if err != nil {
			return err
		}
		oldName, err := ctx.PopString("frename")
		if err != nil {
			return err
		}
		ctx.Push(joy.Bool(os.Rename(string(oldName.Bytes()), string(newName.Bytes())) == nil))
		return nil
	},
}

// stdFile wraps one of the context's configured streams as a FILE value.
// Only *os.File-backed streams are wrapped; a non-file Stdout/Stderr/
// Stdin (e.g. an in-memory buffer under test) yields a FileHandle with
// a nil file.
func stdFile(w interface{}, name string) *joy.FileHandle {
	if f, ok := w.(*os.File); ok {
		return joy.NewFileHandle(f, name)
	}
	return joy.NewFileHandle(nil, name)
}

func openMode(path, mode string) (*os.File, error) {
	flag := os.O_RDONLY
	switch mode {
	case "r", "rb":
		flag = os.O_RDONLY
	case "w", "wb":
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case "a", "ab":
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case "r+", "rb+", "r+b":
		flag = os.O_RDWR
	case "w+", "wb+", "w+b":
		flag = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	case "a+", "ab+", "a+b":
		flag = os.O_RDWR | os.O_CREATE | os.O_APPEND
	default:
		flag = os.O_RDONLY
	}
	return os.OpenFile(path, flag, 0644)
}
