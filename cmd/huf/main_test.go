package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("HUF_DATABASE_URL", "")
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCompressDecompress(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "poem.txt")
	content := []byte("roses are red, violets are blue")
	require.NoError(t, os.WriteFile(in, content, 0o644))

	code, out, _ := runCLI(t, "-c", in)
	require.Equal(t, exitOK, code)
	require.Contains(t, out, "poem.huf")

	code, _, _ = runCLI(t, "-d", filepath.Join(dir, "poem.huf"))
	require.Equal(t, exitOK, code)
	got, err := os.ReadFile(filepath.Join(dir, "poemDecompressed.txt"))
	require.NoError(t, err)
	require.Equal(t, content, got)

	code, _, _ = runCLI(t, "-d", filepath.Join(dir, "poem.huf"), filepath.Join(dir, "copy"))
	require.Equal(t, exitOK, code)
	got, err = os.ReadFile(filepath.Join(dir, "copy.txt"))
	require.NoError(t, err)
	require.Equal(t, content, got)
}

func TestSingleSymbolFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "z.txt")
	require.NoError(t, os.WriteFile(in, []byte("zzzz"), 0o644))

	code, _, _ := runCLI(t, "-c", in, filepath.Join(dir, "zz"))
	require.Equal(t, exitOK, code)
	code, _, _ = runCLI(t, "-d", filepath.Join(dir, "zz.huf"), filepath.Join(dir, "back"))
	require.Equal(t, exitOK, code)

	got, err := os.ReadFile(filepath.Join(dir, "back.txt"))
	require.NoError(t, err)
	require.Equal(t, "zzzz", string(got))
}

func TestExitCodes(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(plain, []byte("just text"), 0o644))
	packed := filepath.Join(dir, "packed.txt")
	require.NoError(t, os.WriteFile(packed, []byte("hufalready"), 0o644))
	broken := filepath.Join(dir, "broken.huf")
	require.NoError(t, os.WriteFile(broken, []byte("huftxt 1 5 a10"), 0o644))

	cases := []struct {
		name string
		args []string
		want int
	}{
		{"no args", nil, exitMissingCommand},
		{"unknown flag", []string{"-x", plain}, exitUnrecognizedCommand},
		{"positional only", []string{plain}, exitUnrecognizedCommand},
		{"both commands", []string{"-c", "-d", plain}, exitUnrecognizedCommand},
		{"missing file arg", []string{"-c"}, exitMissingFile},
		{"flag as out name", []string{"-d", plain, "-c"}, exitUnrecognizedCommand},
		{"too many args", []string{"-c", plain, "x", "y"}, exitUnrecognizedCommand},
		{"input not found", []string{"-c", filepath.Join(dir, "nope.txt")}, exitInputNotFound},
		{"already compressed", []string{"-c", packed}, exitAlreadyCompressed},
		{"not compressed", []string{"-d", plain}, exitNotCompressed},
		{"truncated payload", []string{"-d", broken}, exitUnexpectedEnd},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tc.args...)
			require.Equal(t, tc.want, code)
			if tc.want != exitOK {
				require.NotEmpty(t, stderr)
			}
		})
	}
}

func TestUnreachableDatabaseFallsBackToMemory(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(in, []byte("history is optional"), 0o644))

	t.Setenv("HUF_DATABASE_URL", "postgres://u:p@127.0.0.1:1/db")
	var stdout, stderr bytes.Buffer
	code := run([]string{"-c", in}, &stdout, &stderr)
	require.Equal(t, exitOK, code)
	require.FileExists(t, filepath.Join(dir, "note.huf"))
	require.Contains(t, stdout.String(), "note.huf")
}

func TestFlagAfterFileIsRejected(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(in, []byte("aaab"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	code, _, stderr := runCLI(t, "-c", "a.txt", "-v")
	require.Equal(t, exitUnrecognizedCommand, code)
	require.NotEmpty(t, stderr)
	require.NoFileExists(t, filepath.Join(dir, "-v.huf"))
	require.NoFileExists(t, filepath.Join(dir, "a.huf"))
}
