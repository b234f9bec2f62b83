package upload

import (
	"image"
	"io"

	"github.com/disintegration/imaging"

	// Registers the WebP decoder. JPEG, PNG, GIF, TIFF, and BMP come with imaging.
	_ "golang.org/x/image/webp"
)

// avatarSize is the forced output dimension. Both width and height are set,
// so the input aspect ratio is not preserved.
const avatarSize = 500

// avatarContentType is the format avatars are re-encoded to.
const avatarContentType = "image/jpeg"

const avatarJPEGQuality = 80

func decodeImage(r io.Reader) (image.Image, error) {
	return imaging.Decode(r)
}

func resizeAvatar(img image.Image) image.Image {
	return imaging.Resize(img, avatarSize, avatarSize, imaging.Lanczos)
}

// encodeAvatar re-encodes the image as JPEG through a pipe, so the store
// write consumes encoded bytes as they are produced instead of the whole
// encoded image being buffered first. A slow write backpressures the encoder.
//
// The caller must close the returned reader once the write finishes; a
// consumer that stops reading early would otherwise leave the encoder
// goroutine blocked on the pipe.
func encodeAvatar(img image.Image) *io.PipeReader {
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(imaging.Encode(pw, img, imaging.JPEG, imaging.JPEGQuality(avatarJPEGQuality)))
	}()
	return pr
}
