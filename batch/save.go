package batch

import (
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// savePNG writes the remapped buffer as a PNG at dest.
func savePNG(img image.Image, dest string) error {
	enc := png.Encoder{
		CompressionLevel: png.BestCompression,
		BufferPool:       pngPool,
	}
	return saveAtomic(dest, func(w io.Writer) error {
		return enc.Encode(w, img)
	})
}

// saveGIF writes a recolored (possibly animated) GIF at dest.
func saveGIF(g *gif.GIF, dest string) error {
	return saveAtomic(dest, func(w io.Writer) error {
		return gif.EncodeAll(w, g)
	})
}

// saveAtomic encodes into a temporary file next to dest and renames it into
// place, so a crashed or failed job never leaves a half-written output.
func saveAtomic(dest string, encode func(io.Writer) error) (err error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create output folder %q: %w", dir, err)
	}

	outFile, err := os.CreateTemp(dir, filepath.Base(dest)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", dest, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination for %q: %w", dest, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination for %q: %w", dest, defErr)
		}

		if !canRename || err != nil {
			os.Remove(outFile.Name())
			return
		}
		if defErr := os.Rename(outFile.Name(), dest); defErr != nil {
			err = fmt.Errorf("could not rename destination file %q: %w", dest, defErr)
		}
	}()

	if err = encode(outFile); err != nil {
		return fmt.Errorf("could not encode %q: %w", dest, err)
	}

	canRename = true
	return err
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
