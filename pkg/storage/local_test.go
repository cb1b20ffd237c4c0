package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Hafiz-shamnad/TicsLab/pkg/proto"
	"github.com/matryer/is"
)

func TestPutOpenDelete(t *testing.T) {
	is := is.New(t)
	st := NewLocalStorage(t.TempDir())

	n, err := st.Put(1, "a.txt.v1", strings.NewReader("hello"))
	is.NoErr(err)
	is.Equal(n, int64(5))

	ok, err := st.Exists(1, "a.txt.v1")
	is.NoErr(err)
	is.True(ok)

	info, err := st.Stat(1, "a.txt.v1")
	is.NoErr(err)
	is.Equal(info.Size(), int64(5))

	obj, err := st.Open(1, "a.txt.v1")
	is.NoErr(err)
	data, err := io.ReadAll(obj)
	is.NoErr(err)
	is.NoErr(obj.Close())
	is.Equal(string(data), "hello")

	// overwrite leaves no temp files behind
	_, err = st.Put(1, "a.txt.v1", strings.NewReader("bye"))
	is.NoErr(err)
	entries, err := os.ReadDir(st.RepoRoot(1))
	is.NoErr(err)
	is.Equal(len(entries), 1)

	is.NoErr(st.Delete(1, "a.txt.v1"))
	ok, err = st.Exists(1, "a.txt.v1")
	is.NoErr(err)
	is.True(!ok)

	err = st.Delete(1, "a.txt.v1")
	is.True(errors.Is(err, fs.ErrNotExist))

	_, err = st.Open(1, "a.txt.v1")
	is.True(errors.Is(err, fs.ErrNotExist))
}

func TestPutRejectsEscape(t *testing.T) {
	is := is.New(t)
	root := t.TempDir()
	st := NewLocalStorage(filepath.Join(root, "store"))

	_, err := st.Put(1, "../../outside", strings.NewReader("x"))
	is.True(errors.Is(err, proto.ErrPathEscape))

	_, err = os.Stat(filepath.Join(root, "outside"))
	is.True(errors.Is(err, fs.ErrNotExist))
}
