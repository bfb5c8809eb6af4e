// Command huf compresses and decompresses single files with Huffman coding.
//
//	huf -c <path> [outName]       writes <outName>.huf or <stem>.huf
//	huf -d <path>.huf [outName]   writes <outName>.<ext> or <stem>Decompressed.<ext>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"huf_go/internal/config"
	"huf_go/internal/model"
	"huf_go/internal/repo"
	"huf_go/internal/service"
	"huf_go/pkg/huf"
	"huf_go/pkg/huffman"
	"huf_go/pkg/logger"
)

const (
	exitOK = iota
	exitIO
	exitUnrecognizedCommand
	exitAlreadyCompressed
	exitMissingFile
	exitMissingCommand
	exitNotCompressed
	exitInputNotFound
	exitUnexpectedEnd
)

var (
	errMissingCommand      = errors.New("no command given, use -c or -d")
	errMissingFile         = errors.New("no input file given")
	errUnrecognizedCommand = errors.New("unrecognized command, use -c or -d")
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fset := flag.NewFlagSet("huf", flag.ContinueOnError)
	fset.SetOutput(stderr)
	compress := fset.Bool("c", false, "compress <path> [outName]")
	decompress := fset.Bool("d", false, "decompress <path>.huf [outName]")
	verbose := fset.Bool("v", false, "debug logging")

	if len(args) == 0 {
		return fail(stderr, errMissingCommand)
	}
	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return fail(stderr, errUnrecognizedCommand)
	}
	if *compress == *decompress {
		if !*compress && fset.NArg() == 0 {
			return fail(stderr, errMissingCommand)
		}
		return fail(stderr, errUnrecognizedCommand)
	}
	if fset.NArg() == 0 {
		return fail(stderr, errMissingFile)
	}
	if fset.NArg() > 2 {
		return fail(stderr, errUnrecognizedCommand)
	}
	in, outName := fset.Arg(0), fset.Arg(1)
	// 플래그는 파일 인자보다 앞에 와야 해요
	if strings.HasPrefix(in, "-") || strings.HasPrefix(outName, "-") {
		return fail(stderr, errUnrecognizedCommand)
	}

	cfg := config.Load()
	level := "warn"
	if *verbose {
		level = "debug"
	}
	logg := logger.New(level)

	ctx := context.Background()
	runRepo, closeRepo, err := repo.New(ctx, cfg.DatabaseURL)
	if err != nil {
		// 이력 DB에 연결할 수 없으면 메모리 저장소로 계속 진행
		logg.Errorf("run history unavailable, using memory: %v", err)
		runRepo, closeRepo = repo.NewRunRepoInMemory(), func() {}
	}
	defer closeRepo()
	svc := service.NewCompressorService(runRepo, logg)

	var r *model.Run
	if *compress {
		r, err = svc.CompressFile(ctx, in, outName)
	} else {
		r, err = svc.DecompressFile(ctx, in, outName)
	}
	if err != nil {
		return fail(stderr, err)
	}

	logg.Debugf("run %s: %d symbols, ratio %.3f", r.ID, r.Symbols, r.Ratio())
	if *compress {
		fmt.Fprintf(stdout, "compressed %s -> %s (%d -> %d bytes)\n", r.Input, r.Output, r.InputBytes, r.OutputBytes)
	} else {
		fmt.Fprintf(stdout, "decompressed %s -> %s (%d bytes)\n", r.Input, r.Output, r.OutputBytes)
	}
	return exitOK
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "huf: %v\n", err)
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errMissingCommand):
		return exitMissingCommand
	case errors.Is(err, errMissingFile):
		return exitMissingFile
	case errors.Is(err, errUnrecognizedCommand):
		return exitUnrecognizedCommand
	case errors.Is(err, huf.ErrAlreadyCompressed):
		return exitAlreadyCompressed
	case errors.Is(err, huf.ErrNotCompressed), errors.Is(err, huf.ErrFormat):
		return exitNotCompressed
	case errors.Is(err, huffman.ErrUnexpectedEndOfStream):
		return exitUnexpectedEnd
	case errors.Is(err, fs.ErrNotExist):
		return exitInputNotFound
	default:
		return exitIO
	}
}
