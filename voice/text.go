// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voice

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
)

// SampleText is the passage users read aloud while recording.
const SampleText = "《静夜思》是唐代诗人李白所作、流传最广泛的一首五言乐府诗，全文为：窗前明月光，疑是地上霜，举头望明月，低头思故乡"

// Prompt is shown while recording.
const Prompt = "请有感情地朗读提示文本"

// FormatElapsed renders seconds as mm:ss.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func isClosedErr(err error) bool {
	return err == nil ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, fs.ErrClosed) ||
		errors.Is(err, net.ErrClosed)
}
