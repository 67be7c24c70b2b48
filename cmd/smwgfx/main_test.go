package main

import (
	"io/ioutil"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func run(t *testing.T, args ...string) (int, error) {
	code := 0
	exiter, writer := cli.OsExiter, cli.ErrWriter
	cli.OsExiter = func(c int) { code = c }
	cli.ErrWriter = ioutil.Discard
	t.Cleanup(func() { cli.OsExiter, cli.ErrWriter = exiter, writer })

	app := newApp(os.TempDir())
	app.Writer = ioutil.Discard
	err := app.Run(append([]string{"smwgfx", "--db="}, args...))
	return code, err
}

func TestScale(t *testing.T) {
	dir, err := ioutil.TempDir("", "smwgfx")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	file := filepath.Join(dir, "gfx.bin")
	b := make([]byte, 16*4)
	rand.New(rand.NewSource(1)).Read(b)
	require.NoError(t, ioutil.WriteFile(file, b, 0666))
	png := filepath.Join(dir, "gfx.png")

	code, err := run(t, "decode", "--scale", "0", file, "2")
	assert.Error(t, err)
	assert.Equal(t, 1, code)
	_, err = os.Stat(png)
	assert.True(t, os.IsNotExist(err))

	code, err = run(t, "decode", "--scale", "-2", file, "2")
	assert.Error(t, err)
	assert.Equal(t, 1, code)

	code, err = run(t, "decode", "--scale", "2", file, "2")
	require.NoError(t, err)
	assert.Zero(t, code)
	_, err = os.Stat(png)
	assert.NoError(t, err)

	// verify has no scale flag
	code, err = run(t, "verify", file, "2")
	assert.NoError(t, err)
	assert.Zero(t, code)
}

func TestBadFormat(t *testing.T) {
	code, err := run(t, "verify", os.TempDir(), "5")
	assert.Error(t, err)
	assert.Equal(t, 1, code)
}
