package thet

import "github.com/klauspost/compress/zstd"

// Reusable zstd coders; both are safe for concurrent EncodeAll/DecodeAll use.
var (
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
)

// CompressZStandard compresses src, appending to dst. If you have a buffer to
// use, you can pass it to prevent allocation; if nil is passed, a new buffer
// is allocated and returned.
func CompressZStandard(dst, src []byte) []byte {
	return zstdEncoder.EncodeAll(src, dst[:0])
}

// DecompressZStandard decompresses src, appending to dst. As with
// CompressZStandard, dst may be nil.
func DecompressZStandard(dst, src []byte) ([]byte, error) {
	return zstdDecoder.DecodeAll(src, dst[:0])
}
